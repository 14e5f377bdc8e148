// Package turn composes the board-mode turn flow on top of the fsm
// engine: the primary machine cycles player and enemy turns, and the
// overlay machine carries interrupts such as fork selection.
package turn

import (
	"context"
	"math/rand"

	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/fsm"
	"github.com/samdwyer/boardwalk/internal/traverse"
)

// Context is the shared service context handed to every turn state.
type Context struct {
	Ctx        context.Context // carries the trace context
	Actors     *actor.Roster
	Controller *traverse.Controller
	Input      traverse.InputSource
	Presenter  traverse.ForkPresenter
	Rng        *rand.Rand
	Delta      float64 // seconds since last tick

	Primary *fsm.Machine[*Context]
	Overlay *fsm.Machine[*Context]

	// Log receives player-facing messages; nil is allowed.
	Log func(msg string)
}

func (c *Context) log(msg string) {
	if c.Log != nil {
		c.Log(msg)
	}
}
