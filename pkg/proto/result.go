package proto

import "time"

type opcode uint8

const (
	opEnd opcode = iota
	opYield
	opSleep
	opGoto
)

// Result is the outcome of running one arm of a protothread body. Results
// are produced only by the suspension primitives on State, which makes the
// body's contract structural: a poll reports finished exactly when the body
// returned End, and there is no way to report anything else by accident.
//
// The zero Result ends the body, so a switch that falls through a missing
// arm terminates rather than spinning.
type Result struct {
	op     opcode
	target Position
	sleep  time.Duration
}

// Suspends reports whether the result parks the body until a later poll,
// as opposed to ending it or continuing within the current poll.
func (r Result) Suspends() bool {
	return r.op == opYield || r.op == opSleep
}
