package workload

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// GeneratorConfig parameterizes a synthetic request workload.
type GeneratorConfig struct {
	Count          int     // number of requests to generate (must be > 0)
	Rate           float64 // mean arrivals per tick (must be > 0)
	ProcessingMean float64 // mean processing ticks (must be >= 1)
	Seed           uint64
}

// Validate checks that the generator can produce a finite workload.
func (c GeneratorConfig) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("count must be > 0, got %d", c.Count)
	}
	if c.Rate <= 0 || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return fmt.Errorf("rate must be a finite value > 0, got %v", c.Rate)
	}
	if c.ProcessingMean < 1 || math.IsNaN(c.ProcessingMean) || math.IsInf(c.ProcessingMean, 0) {
		return fmt.Errorf("processing mean must be a finite value >= 1, got %v", c.ProcessingMean)
	}
	return nil
}

// Generate creates a time-ordered workload. The number of arrivals in each
// tick is Poisson(Rate); processing times are exponential with the given
// mean, rounded up to at least one tick. Deterministic for a given config.
func Generate(cfg GeneratorConfig) ([]Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}

	arrivals := distuv.Poisson{Lambda: cfg.Rate, Src: rand.NewPCG(cfg.Seed, 1)}
	service := distuv.Exponential{Rate: 1 / cfg.ProcessingMean, Src: rand.NewPCG(cfg.Seed, 2)}

	records := make([]Record, 0, cfg.Count)
	for tick := int64(0); len(records) < cfg.Count; tick++ {
		n := int(arrivals.Rand())
		for i := 0; i < n && len(records) < cfg.Count; i++ {
			records = append(records, Record{
				ArrivalTime:    tick,
				Label:          fmt.Sprintf("request_%d", len(records)),
				ProcessingTime: max(1, int64(math.Ceil(service.Rand()))),
			})
		}
	}
	return records, nil
}
