// Package proto implements stackless cooperative resumable computations,
// also known as protothreads.
//
// A protothread is a function-like unit of work that can suspend at an
// explicit point and, on its next invocation, resume from that point. No
// goroutine, stack or channel is held while suspended; the entire resume
// record is a position, a sleep countdown and nothing else. This makes
// protothreads suitable for large numbers of cheap, frequently polled tasks
// such as game entity logic or control loops.
//
// # Writing a body
//
// A body is a state machine over resume positions. It switches on the
// current position and every arm returns a Result produced by one of the
// suspension primitives:
//
//	thread := proto.NewFunc(func(ps *proto.State) proto.Result {
//	    switch ps.Position() {
//	    case proto.Start:
//	        stepA()
//	        return ps.Yield() // resume at position 1 on the next poll
//	    case 1:
//	        stepB()
//	        return ps.Sleep(2 * time.Second)
//	    case 2:
//	        stepC()
//	        return ps.End()
//	    }
//	    return ps.End()
//	})
//
//	for !thread.Poll() {
//	    // schedule other work, then poll again
//	}
//
// Poll reports true once the body has reached End and false while it is
// suspended. Suspension never blocks the polling goroutine: it simply
// returns control to the caller, which decides when to poll again.
//
// # Positions
//
// Positions are plain values chosen by the body's author, usually
// consecutive constants starting at Start. Yield and Sleep resume at
// Position()+1, so arms that follow a suspension should be numbered
// accordingly. YieldTo and Goto take explicit targets, which is how a body
// expresses loops, restarts and failure states.
//
// # Working variables
//
// Local variables do not survive a suspension. State that must persist
// across polls belongs in a working-variable block: either captured by the
// body closure, or copied into the thread at construction with New, which
// hands the body a private copy isolated from the caller's original.
//
// # Caveats
//
// An arm that returns WaitUntil re-runs in full on every poll until the
// predicate holds; code that must run exactly once belongs in its own arm
// before the waiting one. Arms textually positioned after the End
// transition are unreachable. Polling a finished thread reports true again
// without re-entering the body; use Restart to run it anew. A single thread
// must not be polled from multiple goroutines concurrently.
package proto
