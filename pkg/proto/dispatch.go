package proto

import "time"

// Func is a protothread body. It runs the arm at the state's current
// position and returns the transition the arm decided on. Dispatch may call
// the body several times within one poll when transitions continue without
// suspending.
type Func func(ps *State) Result

// Step drives one poll of body against ps. elapsed is the time the
// environment reports as passed since the previous poll; it funds any
// pending or newly armed sleep. Step returns true once the body has reached
// End and false while it is suspended.
//
// Stepping a state that is already terminal returns true again without
// entering the body. Negative elapsed values are not validated; the
// environment is assumed to supply monotonic, non-negative increments.
//
// Step is the low-level entry point. Most callers construct a Thread and
// use Poll; Step exists for units that aggregate several resume states and
// dispatch each one explicitly.
func Step(ps *State, elapsed time.Duration, body Func) bool {
	if ps.position == done {
		return true
	}

	// A parked sleep absorbs elapsed time before the body runs. Whatever
	// is left over funds further sleeps armed later in this poll.
	if ps.remaining > 0 {
		if elapsed < ps.remaining {
			ps.remaining -= elapsed
			return false
		}
		elapsed -= ps.remaining
		ps.remaining = 0
	}

	for {
		r := body(ps)
		switch r.op {
		case opYield:
			ps.position = r.target
			return false
		case opSleep:
			ps.position = r.target
			if r.sleep > elapsed {
				ps.remaining = r.sleep - elapsed
				return false
			}
			elapsed -= r.sleep
		case opGoto:
			ps.position = r.target
		default:
			ps.position = done
			ps.remaining = 0
			return true
		}
	}
}
