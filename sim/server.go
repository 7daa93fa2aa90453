package sim

import "fmt"

// Server holds at most one in-flight request and counts down the ticks it
// still needs. The zero value is an idle server.
type Server struct {
	current       *Request
	timeRemaining int64
}

// NewServer returns an idle server.
func NewServer() *Server {
	return &Server{}
}

// Busy reports whether the server is holding a request.
func (s *Server) Busy() bool {
	return s.current != nil
}

// StartNext moves an idle server to busy with req.
// Callers must check Busy first; starting a busy server panics.
func (s *Server) StartNext(req Request) {
	if s.current != nil {
		panic(fmt.Sprintf("StartNext: server busy with request %d, cannot start request %d", s.current.ID, req.ID))
	}
	s.current = &req
	s.timeRemaining = req.ProcessingTime
}

// Tick advances the server by one unit of time. A busy server whose
// countdown reaches zero (or below) becomes idle in the same call.
// Ticking an idle server does nothing.
func (s *Server) Tick() {
	if s.current == nil {
		return
	}
	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.current = nil
	}
}

// Current returns the in-flight request, if any.
func (s *Server) Current() (Request, bool) {
	if s.current == nil {
		return Request{}, false
	}
	return *s.current, true
}

// TimeRemaining returns the ticks left on the in-flight request.
// The value is meaningless once the server is idle.
func (s *Server) TimeRemaining() int64 {
	return s.timeRemaining
}

func (s *Server) String() string {
	if s.current == nil {
		return "Server: (idle)"
	}
	return fmt.Sprintf("Server: (busy, request %d, remaining %d)", s.current.ID, s.timeRemaining)
}
