package sim

import "fmt"

// AssignmentDecision encapsulates the load-time placement of a request.
type AssignmentDecision struct {
	Backlog int    // Backlog index in [0, numBacklogs)
	Reason  string // Human-readable explanation
}

// AssignmentPolicy decides, at load time, which backlog a request joins.
// Assignments are final: a request never moves to another backlog.
type AssignmentPolicy interface {
	Assign(req Request, numBacklogs int) AssignmentDecision
}

// RoundRobin assigns requests to backlogs by their position in the input:
// the k-th request it sees goes to backlog k mod N. It ignores backlog
// depth, so one backlog may starve while another is still full.
type RoundRobin struct {
	counter int
}

// Assign implements AssignmentPolicy for RoundRobin.
func (rr *RoundRobin) Assign(req Request, numBacklogs int) AssignmentDecision {
	if numBacklogs <= 0 {
		panic(fmt.Sprintf("RoundRobin.Assign: numBacklogs must be > 0, got %d", numBacklogs))
	}
	target := rr.counter % numBacklogs
	rr.counter++
	return AssignmentDecision{
		Backlog: target,
		Reason:  fmt.Sprintf("round-robin[%d]", rr.counter-1),
	}
}
