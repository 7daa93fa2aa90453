package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ZeroValue_IsIdle(t *testing.T) {
	var s Server
	assert.False(t, s.Busy())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestServer_StartNext_BecomesBusy(t *testing.T) {
	// GIVEN an idle server
	s := NewServer()

	// WHEN a request needing 3 ticks is started
	s.StartNext(NewRequest(1, 0, 3))

	// THEN it is busy with that request and a full countdown
	require.True(t, s.Busy())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 1, cur.ID)
	assert.Equal(t, int64(3), s.TimeRemaining())
}

func TestServer_Tick_CountsDownThenIdles(t *testing.T) {
	// GIVEN a server busy with a 3-tick request
	s := NewServer()
	s.StartNext(NewRequest(0, 0, 3))

	// WHEN ticked three times
	// THEN it stays busy for two ticks and goes idle on the third
	s.Tick()
	assert.True(t, s.Busy())
	assert.Equal(t, int64(2), s.TimeRemaining())
	s.Tick()
	assert.True(t, s.Busy())
	s.Tick()
	assert.False(t, s.Busy())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestServer_Tick_IdleIsNoOp(t *testing.T) {
	s := NewServer()
	s.Tick()
	s.Tick()
	assert.False(t, s.Busy())
	assert.Equal(t, int64(0), s.TimeRemaining())
}

func TestServer_NonPositiveProcessingTime_CompletesOnFirstTick(t *testing.T) {
	for _, pt := range []int64{0, -2} {
		// GIVEN a server started with a request needing no service
		s := NewServer()
		s.StartNext(NewRequest(0, 0, pt))

		// THEN it is busy until the first tick, then idle
		assert.True(t, s.Busy(), "processing time %d", pt)
		s.Tick()
		assert.False(t, s.Busy(), "processing time %d", pt)
	}
}

func TestServer_StartNext_WhileBusy_Panics(t *testing.T) {
	s := NewServer()
	s.StartNext(NewRequest(0, 0, 2))
	assert.Panics(t, func() { s.StartNext(NewRequest(1, 0, 2)) })
}

func TestServer_CanBeReusedAfterCompletion(t *testing.T) {
	s := NewServer()
	s.StartNext(NewRequest(0, 0, 1))
	s.Tick()
	require.False(t, s.Busy())

	assert.NotPanics(t, func() { s.StartNext(NewRequest(1, 0, 1)) })
	cur, _ := s.Current()
	assert.Equal(t, 1, cur.ID)
	assert.Contains(t, s.String(), "busy")
}
