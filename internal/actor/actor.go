// Package actor provides the pieces that move across the board: the
// player pawn and NPC rivals.
package actor

import (
	"github.com/google/uuid"

	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/geom"
)

// Actor is a single pawn on the board.
type Actor struct {
	ID       uuid.UUID // Stable instance identity, used to match notifications
	Name     string
	IsPlayer bool
	Glyph    rune

	// Current is the node the actor stands on (or is moving toward).
	// LastWaypoint is the node it departed from, used to suppress
	// backtracking; NoNode after a spawn or teleport.
	Current      board.NodeID
	LastWaypoint board.NodeID

	// Moving is set for the whole of a multi-step traversal.
	// Walking drives the walk animation and is toggled around
	// suspension points within a traversal.
	Moving  bool
	Walking bool

	Pos    geom.Vec2
	Facing geom.Vec2

	Speed    float64 // Board units per second
	TurnRate float64 // Radians per second
	Coins    int
}

// New creates an actor standing on the given node.
func New(name string, isPlayer bool, glyph rune) *Actor {
	return &Actor{
		ID:           uuid.New(),
		Name:         name,
		IsPlayer:     isPlayer,
		Glyph:        glyph,
		Current:      board.NoNode,
		LastWaypoint: board.NoNode,
		Facing:       geom.Vec2{X: 1},
		Speed:        12,
		TurnRate:     8,
	}
}

// PlaceAt stands the actor on a node, clearing any movement history.
func (a *Actor) PlaceAt(n *board.Node) {
	if n == nil {
		return
	}
	a.Current = n.ID
	a.LastWaypoint = board.NoNode
	a.Pos = n.Pos
}

// ResetMotion clears all transient movement flags. Used on teardown so
// a cancelled traversal leaves the actor in a neutral state.
func (a *Actor) ResetMotion() {
	a.Moving = false
	a.Walking = false
}
