package trace

// ServerSummary aggregates the dispatches of a single server.
type ServerSummary struct {
	Dispatched int     `yaml:"dispatched"`
	MeanWait   float64 `yaml:"mean_wait"`
	MaxWait    int64   `yaml:"max_wait"`
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAssignments int                   `yaml:"total_assignments"`
	TotalDispatches  int                   `yaml:"total_dispatches"`
	LastDispatch     int64                 `yaml:"last_dispatch_tick"`
	BacklogSizes     map[int]int           `yaml:"backlog_sizes"` // backlog index → requests assigned
	Servers          map[int]ServerSummary `yaml:"servers"`       // server index → dispatch stats
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		BacklogSizes: make(map[int]int),
		Servers:      make(map[int]ServerSummary),
	}
	if st == nil {
		return summary
	}

	summary.TotalAssignments = len(st.Assignments)
	for _, a := range st.Assignments {
		summary.BacklogSizes[a.Backlog]++
	}

	summary.TotalDispatches = len(st.Dispatches)
	totals := make(map[int]int64)
	for _, d := range st.Dispatches {
		s := summary.Servers[d.Server]
		if s.Dispatched == 0 || d.Wait > s.MaxWait {
			s.MaxWait = d.Wait
		}
		s.Dispatched++
		summary.Servers[d.Server] = s
		totals[d.Server] += d.Wait
		if d.Clock > summary.LastDispatch {
			summary.LastDispatch = d.Clock
		}
	}
	for id, s := range summary.Servers {
		s.MeanWait = float64(totals[id]) / float64(s.Dispatched)
		summary.Servers[id] = s
	}

	return summary
}
