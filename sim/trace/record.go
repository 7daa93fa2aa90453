// Package trace provides decision-trace recording for request-sim runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// AssignmentRecord captures one load-time decision placing a request in a backlog.
type AssignmentRecord struct {
	RequestID int
	Backlog   int
	Reason    string
}

// DispatchRecord captures a request leaving its backlog for a server.
type DispatchRecord struct {
	RequestID int
	Clock     int64 // tick at which the dispatch happened
	Server    int
	Wait      int64 // Clock - arrival time
}
