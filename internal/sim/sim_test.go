package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rootcode-org/protothread/pkg/proto"
)

func constantClock(d time.Duration) proto.Option {
	return proto.WithClock(func() time.Duration { return d })
}

func TestBlinker_TogglesForConfiguredCycles(t *testing.T) {
	b, thread := NewBlinker(2, constantClock(0))

	require.False(t, thread.Poll())
	assert.True(t, b.Lamp, "first poll turns the lamp on")

	require.False(t, thread.Poll())
	assert.False(t, b.Lamp, "second poll turns it off again")
	assert.Equal(t, 1, b.Cycles)

	require.False(t, thread.Poll())
	assert.True(t, b.Lamp)

	require.True(t, thread.Poll())
	assert.False(t, b.Lamp)
	assert.Equal(t, 2, b.Cycles)
}

func TestPatrol_VisitsEveryWaypoint(t *testing.T) {
	dwell := 100 * time.Millisecond
	p, thread := NewPatrol(3, dwell, nil, constantClock(60*time.Millisecond))

	polls := 0
	for !thread.Poll() {
		polls++
		require.Less(t, polls, 100, "patrol must terminate")
	}

	assert.Equal(t, 3, p.Waypoint)
}

func TestPatrol_WaitsForClearance(t *testing.T) {
	clear := false
	p, thread := NewPatrol(1, time.Millisecond, func() bool { return clear }, constantClock(time.Millisecond))

	require.False(t, thread.Poll()) // arrive, dwell spent by this poll's elapsed time
	assert.Equal(t, 1, p.Waypoint)

	// Held at the waypoint until cleared.
	require.False(t, thread.Poll())
	require.False(t, thread.Poll())

	clear = true
	require.True(t, thread.Poll(), "must depart on the first poll after clearance")
}

func TestPatrol_ZeroWaypointsEndsImmediately(t *testing.T) {
	p, thread := NewPatrol(0, time.Second, nil, constantClock(0))

	require.True(t, thread.Poll())
	assert.Equal(t, 0, p.Waypoint)
}

func TestCountdown_ConsumesSlices(t *testing.T) {
	c, thread := NewCountdown(3, 100*time.Millisecond, constantClock(100*time.Millisecond))

	// Each poll's elapsed time covers exactly one slice, and the arming
	// poll charges its own elapsed time, so the first slice resolves on
	// the poll that armed it.
	require.False(t, thread.Poll())
	assert.Equal(t, 2, c.Remaining)

	require.False(t, thread.Poll())
	assert.Equal(t, 1, c.Remaining)

	require.True(t, thread.Poll())
	assert.Equal(t, 0, c.Remaining)
}

func TestCountdown_LargeElapsedResolvesSeveralSlicesPerPoll(t *testing.T) {
	c, thread := NewCountdown(4, 10*time.Millisecond, constantClock(25*time.Millisecond))

	for !thread.Poll() {
	}
	assert.Equal(t, 0, c.Remaining)
}
