package actor

import "github.com/samdwyer/boardwalk/internal/board"

// Roster is the set of actors in the current scene.
type Roster struct {
	actors []*Actor
}

// NewRoster creates a roster holding the given actors.
func NewRoster(actors ...*Actor) *Roster {
	return &Roster{actors: actors}
}

// Add appends an actor to the roster.
func (r *Roster) Add(a *Actor) {
	r.actors = append(r.actors, a)
}

// All returns the actors in roster order.
func (r *Roster) All() []*Actor {
	return r.actors
}

// Player returns the player actor, or nil if the roster has none.
func (r *Roster) Player() *Actor {
	for _, a := range r.actors {
		if a.IsPlayer {
			return a
		}
	}
	return nil
}

// FirstNPC returns the first non-player actor, or nil.
func (r *Roster) FirstNPC() *Actor {
	for _, a := range r.actors {
		if !a.IsPlayer {
			return a
		}
	}
	return nil
}

// OccupantAt returns an actor standing on node other than except, or
// nil if the node is free. Actors mid-segment count as standing on the
// node they are moving toward.
func (r *Roster) OccupantAt(node board.NodeID, except *Actor) *Actor {
	for _, a := range r.actors {
		if a == except {
			continue
		}
		if a.Current == node {
			return a
		}
	}
	return nil
}
