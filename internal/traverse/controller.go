// Package traverse implements the movement controller: stepwise
// traversal of the waypoint graph, fork detection and resolution,
// in-path suspension, and the notifications the turn states consume.
package traverse

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/motion"
	"github.com/samdwyer/boardwalk/internal/telemetry"
)

// Config wires a controller's collaborators. Graph and Actors are
// required; the rest may be nil, in which case the corresponding waits
// resolve immediately and events run as no-ops.
type Config struct {
	Graph   *board.Graph
	Actors  *actor.Roster
	Tiles   TileSource
	Events  motion.EventRunner
	Confirm Confirmer
	Rng     *rand.Rand
}

// Controller executes one move at a time: a die roll's worth of steps
// across the graph, suspending on forks, in-path events, encounters,
// and confirmations. It is advanced by per-tick Update calls and holds
// no goroutines.
type Controller struct {
	graph   *board.Graph
	roster  *actor.Roster
	tiles   TileSource
	events  motion.EventRunner
	confirm Confirmer
	rng     *rand.Rand
	tracer  trace.Tracer

	moving bool
	cur    *traversal

	segmentCompleted signal[SegmentEvent]
	nodeReached      signal[*board.Node]
	moveEnded        signal[*actor.Actor]
	forkRequested    signal[*ForkRequest]
	encounters       signal[*Encounter]
}

// traversal is the state of the in-flight move.
type traversal struct {
	actor   *actor.Actor
	steps   int
	trigger bool
	phase   phase

	queue     []board.Connection // accumulated straight run
	deadEnd   bool
	forkAt    *board.Node
	forkCands []board.Connection

	mover  *motion.Mover
	arrive *arrival
	fork   *ForkRequest

	// keepNext suppresses last-waypoint bookkeeping on the next
	// segment, after a fork choice or a teleport moved the history
	// out from under the mover.
	keepNext bool
	expect   board.NodeID // node the current segment should land on
	ended    bool

	span trace.Span
}

type phase int

const (
	phaseScan phase = iota
	phaseSegment
	phaseArrive
	phaseFork
)

// NewController creates a controller over the given collaborators.
func NewController(cfg Config) *Controller {
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		graph:   cfg.Graph,
		roster:  cfg.Actors,
		tiles:   cfg.Tiles,
		events:  cfg.Events,
		confirm: cfg.Confirm,
		rng:     rng,
		tracer:  telemetry.Tracer("traverse"),
	}
}

// IsMoving reports whether a move is in progress.
func (c *Controller) IsMoving() bool {
	return c.moving
}

// OnSegmentCompleted subscribes to per-connection completion events and
// returns an unsubscribe closure.
func (c *Controller) OnSegmentCompleted(fn func(SegmentEvent)) func() {
	return c.segmentCompleted.subscribe(fn)
}

// OnNodeReached subscribes to "reached node" notifications.
func (c *Controller) OnNodeReached(fn func(*board.Node)) func() {
	return c.nodeReached.subscribe(fn)
}

// OnMoveEnded subscribes to move-ended notifications. Exactly one
// fires per BeginMove, success or abort.
func (c *Controller) OnMoveEnded(fn func(*actor.Actor)) func() {
	return c.moveEnded.subscribe(fn)
}

// OnForkRequested subscribes to fork requests. With no subscriber the
// controller falls back to a uniform random choice.
func (c *Controller) OnForkRequested(fn func(*ForkRequest)) func() {
	return c.forkRequested.subscribe(fn)
}

// OnEncounter subscribes to encounter notifications. With no
// subscriber encounters resolve immediately.
func (c *Controller) OnEncounter(fn func(*Encounter)) func() {
	return c.encounters.subscribe(fn)
}

// BeginMove starts consuming totalSteps steps for a. A move already in
// progress makes this a no-op; so does a nil actor that cannot be
// re-resolved to the player pawn. The traversal itself advances on
// subsequent Update ticks.
func (c *Controller) BeginMove(ctx context.Context, a *actor.Actor, totalSteps int, triggerTileEffects bool) {
	if c.moving {
		return
	}
	if a == nil {
		// One-shot reference resolution before giving up.
		a = c.roster.Player()
		if a == nil {
			return
		}
	}

	_, span := c.tracer.Start(ctx, "move.begin")
	span.SetAttributes(
		attribute.String("actor.name", a.Name),
		attribute.Bool("actor.is_player", a.IsPlayer),
		attribute.Int("move.steps", totalSteps),
		attribute.Bool("move.tile_effects", triggerTileEffects),
	)

	c.moving = true
	a.Moving = true
	c.cur = &traversal{
		actor:   a,
		steps:   totalSteps,
		trigger: triggerTileEffects,
		phase:   phaseScan,
		expect:  a.Current,
		span:    span,
	}
}

// Update advances the in-flight move by one tick. Scanning and phase
// switches are instantaneous; motion and cooperative waits consume the
// tick.
func (c *Controller) Update(dt float64) {
	t := c.cur
	if t == nil {
		return
	}
	for c.cur == t {
		switch t.phase {
		case phaseScan:
			c.scan(t)
			if len(t.queue) > 0 {
				t.phase = phaseSegment
				continue
			}
			if t.forkAt != nil && t.steps > 0 {
				c.requestFork(t)
				continue
			}
			c.finish(t)
			return

		case phaseSegment:
			if t.mover == nil && !c.startSegment(t) {
				return // aborted
			}
			if !t.mover.Update(dt) {
				return
			}
			t.mover = nil
			t.steps--
			node := c.graph.Node(t.actor.Current)
			if node == nil {
				c.finish(t)
				return
			}
			c.segmentCompleted.emit(SegmentEvent{Actor: t.actor, Node: node})
			final := t.steps == 0 || (t.deadEnd && len(t.queue) == 0)
			t.arrive = newArrival(c, t.actor, node, final, t.trigger)
			t.phase = phaseArrive
			return

		case phaseArrive:
			if !t.arrive.update() {
				return
			}
			t.arrive = nil
			if t.actor.Current != t.expect {
				// A tile effect relocated the actor mid-move; drop
				// the planned path and rescan from the new node.
				t.queue = t.queue[:0]
				t.deadEnd = false
				t.forkAt = nil
				t.keepNext = true
				t.expect = t.actor.Current
			}
			if len(t.queue) > 0 {
				t.phase = phaseSegment
				continue
			}
			if t.deadEnd {
				t.steps = 0
			}
			if t.steps <= 0 {
				c.finish(t)
				return
			}
			if t.forkAt != nil {
				c.requestFork(t)
				continue
			}
			t.phase = phaseScan
			continue

		case phaseFork:
			req := t.fork
			if !req.Resolved() {
				return
			}
			t.fork = nil
			choice := req.Choice()
			if choice == nil {
				// Abort or cancelled selection: terminate without
				// consuming the step.
				c.finish(t)
				return
			}
			// The fork node is recorded as departure history here, so
			// the mover must not overwrite it on landing.
			t.actor.LastWaypoint = t.forkAt.ID
			t.keepNext = true
			t.forkAt = nil
			t.forkCands = nil
			t.queue = append(t.queue[:0], *choice)
			t.phase = phaseSegment
			continue
		}
	}
}

// scan performs the greedy straight run: from the actor's node, follow
// unambiguous connections without moving the actor, until the step
// budget is spent, a dead end stops the move, or a fork needs a
// decision.
func (c *Controller) scan(t *traversal) {
	t.queue = t.queue[:0]
	t.deadEnd = false
	t.forkAt = nil
	t.forkCands = nil

	cursor := c.graph.Node(t.actor.Current)
	if cursor == nil {
		return // empty queue, no fork: Update finishes the move
	}
	incoming := t.actor.LastWaypoint
	look := t.steps
	for look > 0 {
		cands := c.graph.ValidNext(cursor, incoming)
		if len(cands) == 0 {
			t.deadEnd = true
			break
		}
		if len(cands) > 1 {
			t.forkAt = cursor
			t.forkCands = cands
			break
		}
		conn := cands[0]
		next := c.graph.Node(conn.Target)
		if next == nil {
			t.deadEnd = true
			break
		}
		t.queue = append(t.queue, conn)
		look--
		incoming = cursor.ID
		cursor = next
	}
}

// startSegment pops the next queued connection into a mover. Returns
// false if the move had to be aborted instead.
func (c *Controller) startSegment(t *traversal) bool {
	conn := t.queue[0]
	t.queue = t.queue[1:]
	from := c.graph.Node(t.actor.Current)
	to := c.graph.Node(conn.Target)
	if from == nil || to == nil {
		c.finish(t)
		return false
	}
	t.mover = motion.NewMover(t.actor, from, to, conn, c.events, t.keepNext)
	t.keepNext = false
	t.expect = to.ID
	t.actor.Walking = true
	return true
}

// requestFork pauses the actor and raises the fork request. With no
// interactive listener the AI fallback picks uniformly at random, so a
// fork can never hang a move.
func (c *Controller) requestFork(t *traversal) {
	t.actor.Walking = false
	req := &ForkRequest{Node: t.forkAt, Candidates: t.forkCands}
	t.fork = req
	t.phase = phaseFork
	if c.forkRequested.empty() {
		choice := req.Candidates[c.rng.Intn(len(req.Candidates))]
		req.Resolve(&choice)
		return
	}
	c.forkRequested.emit(req)
}

// finish terminates the move: neutral animation state, flags reset,
// span closed, and exactly one move-ended notification.
func (c *Controller) finish(t *traversal) {
	if t.ended {
		return
	}
	t.ended = true
	a := t.actor
	a.ResetMotion()
	if t.span != nil {
		t.span.SetAttributes(attribute.Int("move.steps_left", t.steps))
		t.span.End()
	}
	c.moving = false
	c.cur = nil
	c.moveEnded.emit(a)
}

// Disable forcibly halts any in-flight move: the pending fork request
// resolves with no selection, waits are dropped, the actor's motion
// flags reset, and the move-ended notification still fires. A
// subsequent BeginMove is safe.
func (c *Controller) Disable() {
	t := c.cur
	if t == nil {
		return
	}
	if t.fork != nil {
		t.fork.Abort()
	}
	if t.arrive != nil && t.arrive.enc != nil {
		t.arrive.enc.Complete()
	}
	c.finish(t)
}
