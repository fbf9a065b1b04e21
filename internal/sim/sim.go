// Package sim provides the demo entities protod runs: small pieces of game
// entity logic written as protothreads. Each entity is a struct holding its
// working variables, with a body method the thread polls.
package sim

import (
	"time"

	"github.com/rootcode-org/protothread/pkg/proto"
)

// Blinker toggles a lamp on and off for a fixed number of cycles, yielding
// between toggles so other entities get a turn.
type Blinker struct {
	Lamp   bool
	Cycles int

	target int
}

// NewBlinker returns the blinker and the thread that drives it.
func NewBlinker(cycles int, opts ...proto.Option) (*Blinker, *proto.Thread) {
	b := &Blinker{target: cycles}
	return b, proto.NewFunc(b.body, opts...)
}

func (b *Blinker) body(ps *proto.State) proto.Result {
	switch ps.Position() {
	case proto.Start:
		b.Lamp = true
		return ps.Yield()
	case 1:
		b.Lamp = false
		b.Cycles++
		if b.Cycles < b.target {
			return ps.YieldTo(proto.Start)
		}
		return ps.End()
	}
	return ps.End()
}

// Patrol walks a number of waypoints, dwelling at each one for a fixed
// time and then waiting for clearance before moving on.
type Patrol struct {
	// Waypoint is the index of the waypoint currently held, counted from 1
	// once the patrol arrives at its first one.
	Waypoint int

	waypoints int
	dwell     time.Duration
	clear     func() bool
}

// Patrol body positions.
const (
	patrolArrive proto.Position = iota // proto.Start
	patrolAwaitClearance
	patrolDepart
)

// NewPatrol returns the patrol and the thread that drives it. clear is the
// clearance signal consulted before leaving each waypoint; nil means always
// clear.
func NewPatrol(waypoints int, dwell time.Duration, clear func() bool, opts ...proto.Option) (*Patrol, *proto.Thread) {
	if clear == nil {
		clear = func() bool { return true }
	}
	p := &Patrol{waypoints: waypoints, dwell: dwell, clear: clear}
	return p, proto.NewFunc(p.body, opts...)
}

func (p *Patrol) body(ps *proto.State) proto.Result {
	switch ps.Position() {
	case patrolArrive:
		if p.Waypoint >= p.waypoints {
			return ps.End()
		}
		p.Waypoint++
		return ps.Sleep(p.dwell)
	case patrolAwaitClearance:
		return ps.WaitUntil(p.clear)
	case patrolDepart:
		return ps.Goto(patrolArrive)
	}
	return ps.End()
}

// Countdown sleeps a total duration in fixed slices, recording how many
// slices remain. It exists to exercise repeated timed suspension.
type Countdown struct {
	Remaining int

	slice time.Duration
}

// NewCountdown returns a countdown of slices slices of the given width and
// the thread that drives it.
func NewCountdown(slices int, width time.Duration, opts ...proto.Option) (*Countdown, *proto.Thread) {
	c := &Countdown{Remaining: slices, slice: width}
	return c, proto.NewFunc(c.body, opts...)
}

func (c *Countdown) body(ps *proto.State) proto.Result {
	switch ps.Position() {
	case proto.Start:
		if c.Remaining == 0 {
			return ps.End()
		}
		return ps.Sleep(c.slice)
	case 1:
		c.Remaining--
		return ps.Goto(proto.Start)
	}
	return ps.End()
}
