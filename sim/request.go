// Defines the Request value that models an individual request in the simulation.

package sim

import "fmt"

// Request is a single unit of work: when it arrives and how many ticks of
// service it needs. Requests are passed by value and never mutated once built.
type Request struct {
	ID             int   // Position of the request in the input sequence
	ArrivalTime    int64 // Tick at which the request arrives
	ProcessingTime int64 // Ticks of service the request needs (0 completes on the first tick)
}

// NewRequest builds a Request from its arrival and processing times.
func NewRequest(id int, arrivalTime, processingTime int64) Request {
	return Request{
		ID:             id,
		ArrivalTime:    arrivalTime,
		ProcessingTime: processingTime,
	}
}

// WaitAt returns how long the request has waited if dispatched at clock.
func (r Request) WaitAt(clock int64) int64 {
	return clock - r.ArrivalTime
}

// This method returns a human-readable string representation of a Request.
func (r Request) String() string {
	return fmt.Sprintf("Request: (ID: %d, ArrivalTime: %d, ProcessingTime: %d)", r.ID, r.ArrivalTime, r.ProcessingTime)
}
