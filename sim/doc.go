// Package sim provides the discrete-time simulation engine for request-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go: the immutable Request value (arrival tick, processing ticks)
//   - server.go: the one-slot Server state machine (idle ↔ busy)
//   - backlog.go: the per-server FIFO of requests awaiting dispatch
//   - simulator.go: the tick loop shared by the single- and multi-server simulators
//
// # Model
//
// Every simulator owns its own integer clock. Each loop iteration advances
// the clock by one tick, dispatches the head of a backlog to its server when
// that server is idle, and then ticks the server unconditionally. A request
// dispatched in an iteration therefore loses one tick of processing in that
// same iteration. The loop ends once every backlog is empty and every server
// is idle.
//
// The multi-server simulator partitions requests across N backlogs by
// position (request i goes to backlog i mod N) before the loop starts.
// Requests never move between backlogs afterwards.
//
// # Sub-packages
//
//   - sim/workload/: loading request records from CSV and synthetic generation
//   - sim/trace/: decision trace recording (assignments and dispatches)
package sim
