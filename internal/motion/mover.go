// Package motion moves actors along board connections. A Mover is a
// resumable routine: the tick pump calls Update with the frame delta
// until the segment completes, and in-path events suspend it without
// blocking anything.
package motion

import (
	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/geom"
)

// Wait is a cooperative suspension point. It is polled once per tick
// with the frame delta and reports true when the wait is over.
type Wait func(dt float64) bool

// EventRunner executes in-path events. A nil returned Wait means the
// event completed synchronously.
type EventRunner interface {
	RunPathEvent(a *actor.Actor, ev board.PathEvent) Wait
}

// minSegment is the distance below which a segment is traversed by
// snapping rather than animating.
const minSegment = 1e-6

// Mover animates one actor along one connection's quadratic bezier.
// The curve starts at the actor's current rendered position (not
// necessarily the source node center, so motion can resume mid-curve),
// bends toward the source position plus the connection's control
// offset, and ends at the target node center.
type Mover struct {
	actor  *actor.Actor
	conn   board.Connection
	from   *board.Node
	to     *board.Node
	runner EventRunner

	// keepLastWaypoint suppresses the last-waypoint bookkeeping on
	// completion, for segments that resume after a fork or teleport.
	keepLastWaypoint bool

	p0, p1, p2 geom.Vec2
	dur        float64 // seconds; <= 0 means snap instantly
	elapsed    float64
	nextEvent  int
	wait       Wait
	done       bool
}

// NewMover prepares a mover for one segment. It does not touch the
// actor until the first Update.
func NewMover(a *actor.Actor, from, to *board.Node, conn board.Connection, runner EventRunner, keepLastWaypoint bool) *Mover {
	m := &Mover{
		actor:            a,
		conn:             conn,
		from:             from,
		to:               to,
		runner:           runner,
		keepLastWaypoint: keepLastWaypoint,
		p0:               a.Pos,
		p1:               from.Pos.Add(conn.Control),
		p2:               to.Pos,
	}
	dist := m.p0.Dist(m.p1) + m.p1.Dist(m.p2)
	if a.Speed > 0 && dist > minSegment {
		m.dur = dist / a.Speed
	}
	return m
}

// Done reports whether the segment has completed.
func (m *Mover) Done() bool {
	return m.done
}

// Update advances the segment by dt and reports completion. Events due
// this tick fire in progress order, each with the actor snapped to the
// event's exact curve position; an event whose action suspends parks
// the mover until the action's wait completes.
func (m *Mover) Update(dt float64) bool {
	if m.done {
		return true
	}
	if m.dur <= 0 {
		m.finish()
		return true
	}

	if m.wait != nil {
		if !m.wait(dt) {
			return false
		}
		m.wait = nil
		m.actor.Walking = true
	} else {
		m.elapsed += dt
	}

	target := m.elapsed / m.dur
	if target > 1 {
		target = 1
	}

	fired := false
	for m.nextEvent < len(m.conn.Events) {
		ev := m.conn.Events[m.nextEvent]
		if ev.Progress > target {
			break
		}
		// Snap exactly onto the event point and rewind the clock to
		// match, so phase stays exact no matter how large dt was.
		m.actor.Pos = geom.QuadBezier(m.p0, m.p1, m.p2, ev.Progress)
		m.elapsed = ev.Progress * m.dur
		m.actor.Walking = false
		m.nextEvent++
		fired = true
		if m.runner != nil {
			if w := m.runner.RunPathEvent(m.actor, ev); w != nil {
				m.wait = w
				return false
			}
		}
		m.actor.Walking = true
	}
	if fired {
		// Time beyond the last event point is forfeited this tick.
		return false
	}

	if target >= 1 {
		m.finish()
		return true
	}

	pos := geom.QuadBezier(m.p0, m.p1, m.p2, target)
	dir := geom.QuadBezierTangent(m.p0, m.p1, m.p2, target)
	m.actor.Facing = geom.RotateToward(m.actor.Facing, dir, m.actor.TurnRate*dt)
	m.actor.Pos = pos
	m.actor.Walking = true
	return false
}

// finish lands the actor exactly on the target node. Bezier evaluation
// at t=1 is not guaranteed exact, so the position is forced.
func (m *Mover) finish() {
	m.actor.Pos = m.p2
	if !m.keepLastWaypoint {
		m.actor.LastWaypoint = m.actor.Current
	}
	m.actor.Current = m.to.ID
	m.done = true
}
