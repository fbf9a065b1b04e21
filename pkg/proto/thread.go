package proto

import "time"

// Thread owns one protothread instance: a body, its resume state and an
// elapsed-time source. Threads are created with New or NewFunc and driven
// to completion by repeated calls to Poll.
//
// A Thread is not safe for concurrent polling. Distinct threads are fully
// independent and may be polled from different goroutines.
type Thread struct {
	state State
	body  Func
	clock func() time.Duration
	last  time.Time
}

// Option configures a Thread at construction.
type Option func(*Thread)

// WithClock replaces the thread's elapsed-time source. The source is
// consulted exactly once per poll and reports the time passed since the
// previous poll; Sleep counts that time down. The default source measures
// wall-clock time between polls.
func WithClock(fn func() time.Duration) Option {
	return func(t *Thread) {
		t.clock = fn
	}
}

// NewFunc creates a thread with no private working-variable block. State
// that must survive suspension is whatever the body closes over.
func NewFunc(body Func, opts ...Option) *Thread {
	t := &Thread{
		body: body,
		last: time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// New creates a thread whose body receives a private copy of vars on every
// poll. The copy is made once, here; mutating the caller's original
// afterwards does not affect the thread. Note the copy is shallow:
// reference fields inside vars still alias the caller's data.
func New[V any](body func(ps *State, vars *V) Result, vars V, opts ...Option) *Thread {
	private := vars
	return NewFunc(func(ps *State) Result {
		return body(ps, &private)
	}, opts...)
}

// Poll runs the thread from its recorded resume point until it suspends or
// finishes. It returns true if the body has reached End during this or any
// earlier poll, and false if the thread expects to be polled again.
func (t *Thread) Poll() bool {
	if t.body == nil {
		return true
	}
	return Step(&t.state, t.elapsed(), t.body)
}

// Done reports whether the thread has finished or been released.
func (t *Thread) Done() bool {
	return t.body == nil || t.state.Done()
}

// Restart rewinds the thread to Start so the body runs anew on the next
// poll. Working variables keep whatever values the previous run left in
// them.
func (t *Thread) Restart() {
	t.state.Reset()
	t.last = time.Now()
}

// Release drops the body and with it the private working-variable block,
// leaving reclamation to the garbage collector. Releasing an already
// released thread is a no-op. A released thread polls as finished.
func (t *Thread) Release() {
	t.body = nil
	t.clock = nil
}

// State exposes the thread's resume state for inspection and for bodies
// written as methods on a larger aggregate.
func (t *Thread) State() *State {
	return &t.state
}

func (t *Thread) elapsed() time.Duration {
	if t.clock != nil {
		return t.clock()
	}
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	return d
}
