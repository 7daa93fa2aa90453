// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/request-sim/request-sim/sim/trace"
)

// ErrInvalidServerCount is returned when a simulator is asked for fewer than one server.
var ErrInvalidServerCount = errors.New("number of servers must be at least 1")

// station pairs a server with the backlog that feeds it.
type station struct {
	server  *Server
	backlog *Backlog
	metrics Metrics
}

// Option configures a simulator.
type Option func(*engine)

// WithTrace records assignment and dispatch decisions into st.
// A nil trace or one at TraceLevelNone records nothing.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(e *engine) {
		e.trace = st
	}
}

// engine holds the clock and stations of one run. Both simulators drive it;
// they differ only in how many stations exist and how requests are loaded.
type engine struct {
	Clock    int64
	stations []*station
	trace    *trace.SimulationTrace
	done     bool
}

func newEngine(numServers int, opts []Option) *engine {
	e := &engine{stations: make([]*station, numServers)}
	for i := range e.stations {
		e.stations[i] = &station{server: NewServer(), backlog: NewBacklog()}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// active reports whether any backlog still holds requests or any server is busy.
func (e *engine) active() bool {
	for _, st := range e.stations {
		if !st.backlog.Empty() || st.server.Busy() {
			return true
		}
	}
	return false
}

// step runs one tick of the loop: advance the clock, then for each station
// in index order dispatch to an idle server and tick it.
func (e *engine) step() {
	e.Clock++
	for i, st := range e.stations {
		if !st.server.Busy() {
			if req, ok := st.backlog.Dequeue(); ok {
				wait := req.WaitAt(e.Clock)
				st.metrics.Record(wait)
				st.server.StartNext(req)
				logrus.Debugf("[tick %07d] server %d dispatch request %d (wait=%d, remaining backlog=%d)",
					e.Clock, i, req.ID, wait, st.backlog.Len())
				if e.trace.Enabled() {
					e.trace.RecordDispatch(trace.DispatchRecord{
						RequestID: req.ID,
						Clock:     e.Clock,
						Server:    i,
						Wait:      wait,
					})
				}
			}
		}
		st.server.Tick()
	}
}

// run drives the loop to quiescence and collects the result. Calling run a
// second time returns the same result without ticking again.
func (e *engine) run() *Result {
	if !e.done {
		logrus.Infof("[tick %07d] Simulation started with %d server(s)", e.Clock, len(e.stations))
		for e.active() {
			e.step()
		}
		e.done = true
		logrus.Infof("[tick %07d] Simulation ended", e.Clock)
	}

	res := &Result{
		NumServers: len(e.stations),
		Ticks:      e.Clock,
		PerServer:  make([]Metrics, len(e.stations)),
	}
	for i, st := range e.stations {
		res.PerServer[i] = st.metrics
		res.Metrics.Merge(st.metrics)
	}
	return res
}

// SingleServerSimulator drives one Server against one FIFO backlog.
type SingleServerSimulator struct {
	e *engine
}

// NewSingleServerSimulator loads requests into the backlog in the order given.
// The order is not checked against arrival times.
func NewSingleServerSimulator(requests []Request, opts ...Option) *SingleServerSimulator {
	e := newEngine(1, opts)
	for _, req := range requests {
		e.stations[0].backlog.Enqueue(req)
	}
	return &SingleServerSimulator{e: e}
}

// Clock returns the current simulated tick.
func (s *SingleServerSimulator) Clock() int64 {
	return s.e.Clock
}

// Run executes the tick loop until the backlog is empty and the server idle.
func (s *SingleServerSimulator) Run() *Result {
	res := s.e.run()
	res.SingleServer = true
	return res
}

// MultiServerSimulator drives N independent servers in lockstep under one
// clock. Each server has its own backlog, filled round-robin at load time.
type MultiServerSimulator struct {
	e *engine
}

// NewMultiServerSimulator partitions requests over numServers backlogs using
// RoundRobin, preserving input order within each backlog.
func NewMultiServerSimulator(requests []Request, numServers int, opts ...Option) (*MultiServerSimulator, error) {
	return NewMultiServerSimulatorWithPolicy(requests, numServers, &RoundRobin{}, opts...)
}

// NewMultiServerSimulatorWithPolicy is NewMultiServerSimulator with an
// explicit load-time assignment policy.
func NewMultiServerSimulatorWithPolicy(requests []Request, numServers int, policy AssignmentPolicy, opts ...Option) (*MultiServerSimulator, error) {
	if numServers <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidServerCount, numServers)
	}
	if policy == nil {
		panic("NewMultiServerSimulatorWithPolicy: policy must not be nil")
	}
	e := newEngine(numServers, opts)
	for _, req := range requests {
		decision := policy.Assign(req, numServers)
		idx := decision.Backlog
		if idx < 0 || idx >= numServers {
			return nil, fmt.Errorf("assignment policy placed request %d on backlog %d, want [0, %d)", req.ID, idx, numServers)
		}
		e.stations[idx].backlog.Enqueue(req)
		if e.trace.Enabled() {
			e.trace.RecordAssignment(trace.AssignmentRecord{
				RequestID: req.ID,
				Backlog:   idx,
				Reason:    decision.Reason,
			})
		}
	}
	return &MultiServerSimulator{e: e}, nil
}

// NumServers returns the size of the server pool.
func (s *MultiServerSimulator) NumServers() int {
	return len(s.e.stations)
}

// BacklogLen returns the number of requests still waiting for server i.
func (s *MultiServerSimulator) BacklogLen(i int) int {
	return s.e.stations[i].backlog.Len()
}

// Clock returns the current simulated tick.
func (s *MultiServerSimulator) Clock() int64 {
	return s.e.Clock
}

// Run executes the tick loop until every backlog is empty and every server idle.
func (s *MultiServerSimulator) Run() *Result {
	return s.e.run()
}

// SimulateOneServer runs the single-server simulation, writes the report
// line to w and returns the average wait.
func SimulateOneServer(w io.Writer, requests []Request) float64 {
	res := NewSingleServerSimulator(requests).Run()
	res.Print(w)
	return res.AverageWait()
}

// SimulateManyServers runs the multi-server simulation, writes the report
// line to w and returns the average wait.
func SimulateManyServers(w io.Writer, requests []Request, numServers int) (float64, error) {
	s, err := NewMultiServerSimulator(requests, numServers)
	if err != nil {
		return 0, err
	}
	res := s.Run()
	res.Print(w)
	return res.AverageWait(), nil
}
