package sim

import "math/rand"

// requestsFrom builds sequential requests from (arrival, processing) pairs.
func requestsFrom(pairs ...[2]int64) []Request {
	reqs := make([]Request, len(pairs))
	for i, p := range pairs {
		reqs[i] = NewRequest(i, p[0], p[1])
	}
	return reqs
}

// fourUnitRequests is four requests arriving at tick 0 needing one tick each.
func fourUnitRequests() []Request {
	return requestsFrom([2]int64{0, 1}, [2]int64{0, 1}, [2]int64{0, 1}, [2]int64{0, 1})
}

// randomRequests generates n time-ordered requests with processing in [minProc, maxProc].
func randomRequests(seed int64, n int, minProc, maxProc int64) []Request {
	rng := rand.New(rand.NewSource(seed))
	reqs := make([]Request, n)
	arrival := int64(0)
	for i := range reqs {
		arrival += rng.Int63n(4)
		reqs[i] = NewRequest(i, arrival, minProc+rng.Int63n(maxProc-minProc+1))
	}
	return reqs
}
