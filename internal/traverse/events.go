package traverse

import (
	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/geom"
)

// Tile is the tile-effect descriptor contract. OnEnter runs the tile's
// landing effect against the arriving actor; it may relocate the actor.
type Tile interface {
	OnEnter(a *actor.Actor)
	TriggerOnPass() bool
}

// TileSource resolves the tile descriptor for a node, nil if the node
// carries none.
type TileSource interface {
	TileFor(node *board.Node) Tile
}

// Confirmer is the confirmation collaborator: Pending reports whether a
// tile effect has raised a request the player has not answered yet.
type Confirmer interface {
	Pending() bool
}

// InputSource is the input collaborator: a directional vector plus
// discrete confirm pulses.
type InputSource interface {
	Direction() geom.Vec2
	ConfirmPressed() bool
}

// ForkPresenter is the purely visual fork-selection collaborator.
type ForkPresenter interface {
	ShowCandidates(cands []board.Connection, origin geom.Vec2)
	Highlight(index int)
	Clear()
}

// SegmentEvent is emitted after each connection traversed.
type SegmentEvent struct {
	Actor *actor.Actor
	Node  *board.Node
}

// Encounter is raised when a moving actor arrives on an occupied node.
// The traversal stays suspended until Complete is called; with nobody
// listening the controller completes it immediately.
type Encounter struct {
	Moving   *actor.Actor
	Occupant *actor.Actor
	done     bool
}

// Complete releases the suspended traversal. Calling it more than once
// is harmless.
func (e *Encounter) Complete() {
	e.done = true
}

// Completed reports whether the encounter has been resolved.
func (e *Encounter) Completed() bool {
	return e.done
}
