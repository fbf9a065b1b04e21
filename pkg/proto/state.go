package proto

import "time"

// Position identifies a resume point within a protothread body. Bodies
// declare their own positions, typically as consecutive constants counted
// from Start.
type Position int32

const (
	// Start is the position of every protothread that has not yet run.
	Start Position = 0

	// done marks a body that has reached End. It is deliberately outside
	// the range of assignable positions.
	done Position = -1
)

// State is the resume record of one protothread: the position to dispatch
// to on the next poll and the countdown of an in-progress sleep. A State
// belongs to exactly one protothread instance and must not be polled
// concurrently.
//
// The zero value is ready to use and sits at Start.
type State struct {
	position  Position
	remaining time.Duration
}

// Position returns the resume point the next poll dispatches to.
func (s *State) Position() Position {
	return s.position
}

// Done reports whether the body has reached End.
func (s *State) Done() bool {
	return s.position == done
}

// Sleeping reports whether the state is parked in a timed sleep.
func (s *State) Sleeping() bool {
	return s.remaining > 0
}

// Reset rewinds the state to Start and clears any pending sleep. This is
// the only sanctioned way to run a finished body again.
func (s *State) Reset() {
	s.position = Start
	s.remaining = 0
}

// Yield suspends the body until the next poll, which resumes at the next
// position.
func (s *State) Yield() Result {
	return Result{op: opYield, target: s.position + 1}
}

// YieldTo suspends the body until the next poll, which resumes at p.
func (s *State) YieldTo(p Position) Result {
	return Result{op: opYield, target: p}
}

// Repeat suspends the body until the next poll, which re-runs the current
// position. It is the "return early, still active" escape hatch: a body
// that cannot make progress this poll repeats its arm on the next one.
func (s *State) Repeat() Result {
	return Result{op: opYield, target: s.position}
}

// Sleep suspends the body for at least d of the externally supplied
// elapsed time. The poll that arms the sleep charges its own elapsed time
// against the countdown, and execution proceeds at the next position on
// the first poll where the countdown is spent — immediately, if d was
// covered by this poll's elapsed time.
func (s *State) Sleep(d time.Duration) Result {
	return Result{op: opSleep, target: s.position + 1, sleep: d}
}

// WaitUntil evaluates pred and, if it holds, continues at the next
// position within the same poll. Otherwise the body suspends at the
// current position, so the arm — and with it the predicate — re-runs fresh
// on every subsequent poll. Code in the same arm ahead of the wait re-runs
// too; place it in its own arm if it must run exactly once.
func (s *State) WaitUntil(pred func() bool) Result {
	if pred() {
		return Result{op: opGoto, target: s.position + 1}
	}
	return Result{op: opYield, target: s.position}
}

// Goto transitions to p immediately, without suspending: the arm at p runs
// within the same poll. Bodies use it for in-body loops and for jumping to
// failure positions.
func (s *State) Goto(p Position) Result {
	return Result{op: opGoto, target: p}
}

// End marks the body finished. The poll returns true, the position moves
// to a terminal marker, and later polls report true without re-entering
// the body. Arms after the End transition are unreachable by contract.
func (s *State) End() Result {
	return Result{op: opEnd}
}
