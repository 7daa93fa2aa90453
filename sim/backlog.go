// Implements the Backlog, which holds the requests waiting for one server.
// Requests are enqueued at load time, in input order.

package sim

import (
	"fmt"
	"strings"

	"github.com/eapache/queue"
)

// Backlog is the FIFO of requests waiting to be dispatched to a specific
// server. It is backed by a ring buffer, so popping the head does not
// reslice or copy the remaining requests.
type Backlog struct {
	q *queue.Queue
}

// NewBacklog returns an empty backlog.
func NewBacklog() *Backlog {
	return &Backlog{q: queue.New()}
}

// Enqueue adds a request to the back of the backlog.
func (b *Backlog) Enqueue(r Request) {
	b.q.Add(r)
}

// Len returns the number of requests in the backlog.
func (b *Backlog) Len() int {
	return b.q.Length()
}

// Empty reports whether the backlog has no requests.
func (b *Backlog) Empty() bool {
	return b.q.Length() == 0
}

// Dequeue removes and returns the request at the front of the backlog.
// The boolean is false if the backlog is empty.
func (b *Backlog) Dequeue() (Request, bool) {
	if b.q.Length() == 0 {
		return Request{}, false
	}
	return b.q.Remove().(Request), true
}

func (b *Backlog) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < b.q.Length(); i++ {
		sb.WriteString(fmt.Sprint(b.q.Get(i).(Request).ID))
		if i < b.q.Length()-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
