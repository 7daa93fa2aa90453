package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/request-sim/request-sim/sim"
)

// Column positions of the request CSV format. The engine never sees these;
// they are mapped to named Record fields here.
const (
	colArrivalTime    = 0
	colLabel          = 1
	colProcessingTime = 2
	minColumns        = 3
)

// Record is one row of a request CSV file.
type Record struct {
	ArrivalTime    int64  // tick at which the request arrives
	Label          string // free-form second column, carried but not simulated
	ProcessingTime int64  // ticks of service required
}

// ReadRecords parses request rows from r in file order. Every row must have
// at least three columns, and the arrival and processing columns must hold
// non-negative integers. Rows are not sorted or checked for time order.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (Record, error) {
	if len(row) < minColumns {
		return Record{}, fmt.Errorf("row has %d columns, expected at least %d", len(row), minColumns)
	}
	arrival, err := parseTicks(row[colArrivalTime], "arrival time", colArrivalTime)
	if err != nil {
		return Record{}, err
	}
	processing, err := parseTicks(row[colProcessingTime], "processing time", colProcessingTime)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ArrivalTime:    arrival,
		Label:          row[colLabel],
		ProcessingTime: processing,
	}, nil
}

func parseTicks(field, name string, col int) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, fmt.Errorf("column %d: invalid %s %q: %w", col+1, name, field, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("column %d: %s must be >= 0, got %d", col+1, name, v)
	}
	return v, nil
}

// LoadRecords reads request rows from the CSV file at path.
func LoadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening request file: %w", err)
	}
	defer func() { _ = file.Close() }()

	records, err := ReadRecords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("loaded %d request records from %s", len(records), path)
	return records, nil
}

// ToRequests converts records into simulation requests, numbering them by
// position.
func ToRequests(records []Record) []sim.Request {
	requests := make([]sim.Request, len(records))
	for i, rec := range records {
		requests[i] = sim.NewRequest(i, rec.ArrivalTime, rec.ProcessingTime)
	}
	return requests
}

// LoadRequests reads the CSV file at path and returns its requests in file order.
func LoadRequests(path string) ([]sim.Request, error) {
	records, err := LoadRecords(path)
	if err != nil {
		return nil, err
	}
	return ToRequests(records), nil
}

// WriteRecords writes records to w in the request CSV format, without a header row.
func WriteRecords(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	for i, rec := range records {
		row := []string{
			strconv.FormatInt(rec.ArrivalTime, 10),
			rec.Label,
			strconv.FormatInt(rec.ProcessingTime, 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportRecords writes records to the CSV file at path.
func ExportRecords(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating request file: %w", err)
	}
	if err := WriteRecords(file, records); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing request file: %w", err)
	}
	return nil
}
