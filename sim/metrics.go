// Tracks wait-time statistics for a simulation run and formats the report.

package sim

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/markphelps/optional"
	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates the wait of every dispatched request.
// Wait is dispatch tick minus arrival tick and may be negative when a
// request is dispatched before its arrival tick.
type Metrics struct {
	TotalWait   int64          // Sum of waits over dispatched requests
	NumRequests int            // Number of dispatched requests
	MaxWait     optional.Int64 // Largest wait seen; absent until something is dispatched
	Waits       []int64        // Per-request waits in dispatch order
}

// Record accounts for one dispatched request.
func (m *Metrics) Record(wait int64) {
	m.TotalWait += wait
	m.NumRequests++
	if cur, err := m.MaxWait.Get(); err != nil || wait > cur {
		m.MaxWait = optional.NewInt64(wait)
	}
	m.Waits = append(m.Waits, wait)
}

// Merge folds other into m.
func (m *Metrics) Merge(other Metrics) {
	m.TotalWait += other.TotalWait
	m.NumRequests += other.NumRequests
	if w, err := other.MaxWait.Get(); err == nil {
		if cur, err := m.MaxWait.Get(); err != nil || w > cur {
			m.MaxWait = optional.NewInt64(w)
		}
	}
	m.Waits = append(m.Waits, other.Waits...)
}

// AverageWait returns TotalWait / NumRequests, or 0 if nothing was dispatched.
func (m Metrics) AverageWait() float64 {
	if m.NumRequests == 0 {
		return 0
	}
	return float64(m.TotalWait) / float64(m.NumRequests)
}

// WaitDistribution summarizes the spread of per-request waits.
type WaitDistribution struct {
	Mean   float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
}

// Distribution computes mean, standard deviation and empirical quantiles of
// the recorded waits. All fields are zero when nothing was dispatched.
func (m Metrics) Distribution() WaitDistribution {
	if len(m.Waits) == 0 {
		return WaitDistribution{}
	}
	xs := make([]float64, len(m.Waits))
	for i, w := range m.Waits {
		xs[i] = float64(w)
	}
	sort.Float64s(xs)

	d := WaitDistribution{
		Mean: stat.Mean(xs, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, xs, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, xs, nil),
		P99:  stat.Quantile(0.99, stat.Empirical, xs, nil),
	}
	// unbiased estimator is NaN for a single sample
	if len(xs) > 1 {
		d.StdDev = stat.StdDev(xs, nil)
	}
	if math.IsNaN(d.StdDev) {
		d.StdDev = 0
	}
	return d
}

// Result is the outcome of one simulation run.
type Result struct {
	SingleServer bool // produced by SingleServerSimulator
	NumServers   int
	Ticks        int64     // Loop iterations executed (final clock value)
	Metrics      Metrics   // Aggregate over all servers
	PerServer    []Metrics // Indexed by server
}

// AverageWait returns the aggregate average wait across all servers.
func (r *Result) AverageWait() float64 {
	return r.Metrics.AverageWait()
}

// OneServerReport formats the report line of a single-server run.
func OneServerReport(averageWait float64) string {
	return fmt.Sprintf("Average Wait Time with One Server: %.2f seconds", averageWait)
}

// ManyServersReport formats the report line of a multi-server run.
func ManyServersReport(numServers int, averageWait float64) string {
	return fmt.Sprintf("Average Wait Time with %d Servers: %.2f seconds", numServers, averageWait)
}

// Print writes the one-line report for the run.
func (r *Result) Print(w io.Writer) {
	line := ManyServersReport(r.NumServers, r.AverageWait())
	if r.SingleServer {
		line = OneServerReport(r.AverageWait())
	}
	_, _ = fmt.Fprintln(w, line)
}

// PrintSummary writes the extended statistics: ticks, wait distribution and
// per-server averages.
func (r *Result) PrintSummary(w io.Writer) {
	d := r.Metrics.Distribution()
	_, _ = fmt.Fprintln(w, "=== Simulation Summary ===")
	_, _ = fmt.Fprintf(w, "Servers              : %d\n", r.NumServers)
	_, _ = fmt.Fprintf(w, "Dispatched Requests  : %d\n", r.Metrics.NumRequests)
	_, _ = fmt.Fprintf(w, "Total Ticks          : %d\n", r.Ticks)
	if r.Metrics.NumRequests > 0 {
		_, _ = fmt.Fprintf(w, "Average Wait         : %.2f ticks\n", d.Mean)
		_, _ = fmt.Fprintf(w, "Wait StdDev          : %.2f ticks\n", d.StdDev)
		_, _ = fmt.Fprintf(w, "Wait P50/P90/P99     : %.2f / %.2f / %.2f ticks\n", d.P50, d.P90, d.P99)
		_, _ = fmt.Fprintf(w, "Max Wait             : %d ticks\n", r.Metrics.MaxWait.OrElse(0))
	}
	if len(r.PerServer) > 1 {
		for i, m := range r.PerServer {
			_, _ = fmt.Fprintf(w, "Server %-3d           : %d requests, average wait %.2f ticks\n", i, m.NumRequests, m.AverageWait())
		}
	}
}
