// Package runner drives registered protothreads to completion by polling
// them on a fixed cadence. It is the external driver loop the core library
// leaves to its environment: the runner decides when each thread is polled,
// the threads decide where they suspend.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rootcode-org/protothread/pkg/proto"
)

const instrumentationName = "github.com/rootcode-org/protothread/internal/runner"

// Config configures the runner.
type Config struct {
	// TickInterval is how often every live thread is polled.
	TickInterval time.Duration

	// StopWhenIdle makes Run return once no live threads remain.
	StopWhenIdle bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		TickInterval: 50 * time.Millisecond,
		StopWhenIdle: true,
	}
}

// entry is one registered thread.
type entry struct {
	id     uuid.UUID
	name   string
	thread *proto.Thread
	polls  uint64
}

// Runner polls a set of protothreads. Threads are polled strictly
// sequentially within a tick, in registration order; finished threads are
// released and dropped.
type Runner struct {
	config *Config
	logger *zap.Logger
	tracer trace.Tracer

	pollsTotal       prometheus.Counter
	completionsTotal prometheus.Counter
	activeThreads    prometheus.Gauge

	mu      sync.Mutex
	entries []*entry
}

// New creates a runner. A nil config uses DefaultConfig, a nil logger is
// replaced with a no-op one, and a nil registerer disables metrics
// registration errors by using a throwaway registry.
func New(cfg *Config, logger *zap.Logger, reg prometheus.Registerer) (*Runner, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.TickInterval <= 0 {
		return nil, errors.New("tick interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := &Runner{
		config: cfg,
		logger: logger,
		tracer: otel.Tracer(instrumentationName),
	}

	factory := promauto.With(reg)
	r.pollsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "protothread_polls_total",
		Help: "Total number of thread polls performed.",
	})
	r.completionsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "protothread_completions_total",
		Help: "Total number of threads run to completion.",
	})
	r.activeThreads = factory.NewGauge(prometheus.GaugeOpts{
		Name: "protothread_active_threads",
		Help: "Number of live registered threads.",
	})

	return r, nil
}

// Add registers a thread under a human-readable name and returns its ID.
func (r *Runner) Add(name string, t *proto.Thread) (uuid.UUID, error) {
	if t == nil {
		return uuid.Nil, errors.New("thread is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := &entry{
		id:     uuid.New(),
		name:   name,
		thread: t,
	}
	r.entries = append(r.entries, e)
	r.activeThreads.Inc()

	r.logger.Info("thread registered",
		zap.String("name", name),
		zap.String("id", e.id.String()),
	)
	return e.id, nil
}

// Len returns the number of live threads.
func (r *Runner) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Tick polls every live thread once, releases and drops the finished ones,
// and returns the number of threads still live. Tick is the single-pass
// building block; external loops may call it directly instead of Run.
func (r *Runner) Tick(ctx context.Context) int {
	_, span := r.tracer.Start(ctx, "runner.tick")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.entries[:0]
	for _, e := range r.entries {
		e.polls++
		r.pollsTotal.Inc()

		if e.thread.Poll() {
			e.thread.Release()
			r.completionsTotal.Inc()
			r.activeThreads.Dec()
			r.logger.Info("thread finished",
				zap.String("name", e.name),
				zap.String("id", e.id.String()),
				zap.Uint64("polls", e.polls),
			)
			continue
		}
		live = append(live, e)
	}
	// Drop released entries without keeping them reachable.
	for i := len(live); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = live

	span.SetAttributes(attribute.Int("live_threads", len(live)))
	return len(live)
}

// Run polls all live threads on the configured cadence until the context
// is cancelled or, with StopWhenIdle, until no live threads remain.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("runner started",
		zap.Duration("tick_interval", r.config.TickInterval),
		zap.Int("threads", r.Len()),
	)

	ticker := time.NewTicker(r.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopped", zap.Int("live_threads", r.Len()))
			return nil
		case <-ticker.C:
			if r.Tick(ctx) == 0 && r.config.StopWhenIdle {
				r.logger.Info("runner idle, stopping")
				return nil
			}
		}
	}
}
