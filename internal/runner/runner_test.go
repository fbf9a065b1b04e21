package runner

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rootcode-org/protothread/internal/logging"
	"github.com/rootcode-org/protothread/pkg/proto"
)

// stepsThread finishes after n polls.
func stepsThread(n int) *proto.Thread {
	polls := 0
	return proto.NewFunc(func(ps *proto.State) proto.Result {
		polls++
		if polls < n {
			return ps.Repeat()
		}
		return ps.End()
	}, proto.WithClock(func() time.Duration { return 0 }))
}

func TestNew_RejectsBadTickInterval(t *testing.T) {
	_, err := New(&Config{TickInterval: 0}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick interval must be positive")
}

func TestAdd_RequiresThread(t *testing.T) {
	r, err := New(nil, nil, nil)
	require.NoError(t, err)

	_, err = r.Add("ghost", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thread is required")
}

func TestTick_DropsFinishedThreads(t *testing.T) {
	reg := prometheus.NewRegistry()
	tl := logging.NewTestLogger()
	r, err := New(nil, tl.Logger, reg)
	require.NoError(t, err)

	_, err = r.Add("short", stepsThread(1))
	require.NoError(t, err)
	_, err = r.Add("long", stepsThread(3))
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, 1, r.Tick(ctx))
	assert.Equal(t, 1, r.Tick(ctx))
	assert.Equal(t, 0, r.Tick(ctx))
	assert.Equal(t, 0, r.Len())

	tl.AssertLogged(t, zapcore.InfoLevel, "thread finished")
}

func TestTick_CountsPollsAndCompletions(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(nil, nil, reg)
	require.NoError(t, err)

	_, err = r.Add("a", stepsThread(2))
	require.NoError(t, err)
	_, err = r.Add("b", stepsThread(1))
	require.NoError(t, err)

	ctx := context.Background()
	r.Tick(ctx) // a repeats, b finishes
	r.Tick(ctx) // a finishes

	polls, err := testutil.GatherAndCount(reg, "protothread_polls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, polls)

	assert.Equal(t, float64(3), testutil.ToFloat64(r.pollsTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.completionsTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(r.activeThreads))
}

func TestRun_StopsWhenIdle(t *testing.T) {
	cfg := &Config{TickInterval: time.Millisecond, StopWhenIdle: true}
	r, err := New(cfg, nil, nil)
	require.NoError(t, err)

	_, err = r.Add("work", stepsThread(5))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Equal(t, 0, r.Len())
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop when idle")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := &Config{TickInterval: time.Millisecond, StopWhenIdle: false}
	r, err := New(cfg, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop on cancel")
	}
}
