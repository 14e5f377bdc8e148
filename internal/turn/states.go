package turn

import (
	"fmt"

	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/traverse"
)

// dieSides is the step die rolled at the start of a move.
const dieSides = 6

// PlayerTurn waits for the player to roll. The action menu itself is a
// presentation concern; this state only reacts to the interact pulse.
type PlayerTurn struct{}

// NewPlayerTurn creates the state.
func NewPlayerTurn() *PlayerTurn {
	return &PlayerTurn{}
}

func (s *PlayerTurn) Name() string { return "player_turn" }

func (s *PlayerTurn) Enter(ctx *Context) {
	ctx.log("Your turn. Press enter to roll.")
}

func (s *PlayerTurn) Update(ctx *Context) {}

func (s *PlayerTurn) Exit(ctx *Context) {}

func (s *PlayerTurn) Interact(ctx *Context) {
	p := ctx.Actors.Player()
	if p == nil || p.Moving {
		return
	}
	roll := 1 + ctx.Rng.Intn(dieSides)
	ctx.log(fmt.Sprintf("You rolled a %d.", roll))
	ctx.Primary.Change(ctx, NewMovement(roll))
}

// Movement drives the player's move: it subscribes to the controller's
// fork and move-ended notifications, begins the move with tile effects
// enabled, and pushes the fork-selection overlay when a branch needs a
// decision.
type Movement struct {
	steps     int
	actor     *actor.Actor
	unsubFork func()
	unsubEnd  func()
}

// NewMovement creates the state for a move of the given step count.
func NewMovement(steps int) *Movement {
	return &Movement{steps: steps}
}

func (s *Movement) Name() string { return "movement" }

func (s *Movement) Enter(ctx *Context) {
	s.actor = ctx.Actors.Player()
	if s.actor == nil {
		ctx.Primary.Change(ctx, NewPlayerTurn())
		return
	}
	s.unsubFork = ctx.Controller.OnForkRequested(func(req *traverse.ForkRequest) {
		ctx.Overlay.Change(ctx, NewForkSelection(req))
	})
	s.unsubEnd = ctx.Controller.OnMoveEnded(func(a *actor.Actor) {
		if a.ID != s.actor.ID {
			return
		}
		ctx.Primary.Change(ctx, NewEnemyTurn())
	})
	ctx.Controller.BeginMove(ctx.Ctx, s.actor, s.steps, true)
}

func (s *Movement) Update(ctx *Context) {}

func (s *Movement) Exit(ctx *Context) {
	if s.unsubFork != nil {
		s.unsubFork()
	}
	if s.unsubEnd != nil {
		s.unsubEnd()
	}
}

func (s *Movement) Interact(ctx *Context) {}

// EnemyTurn moves the first rival pawn with tile effects disabled and
// forks resolved by the controller's AI fallback, then hands the turn
// back to the player.
type EnemyTurn struct {
	unsubEnd func()
}

// NewEnemyTurn creates the state.
func NewEnemyTurn() *EnemyTurn {
	return &EnemyTurn{}
}

func (s *EnemyTurn) Name() string { return "enemy_turn" }

func (s *EnemyTurn) Enter(ctx *Context) {
	npc := ctx.Actors.FirstNPC()
	if npc == nil {
		ctx.Primary.Change(ctx, NewPlayerTurn())
		return
	}
	roll := 1 + ctx.Rng.Intn(dieSides)
	ctx.log(fmt.Sprintf("%s rolls a %d.", npc.Name, roll))
	s.unsubEnd = ctx.Controller.OnMoveEnded(func(a *actor.Actor) {
		if a.ID != npc.ID {
			return
		}
		ctx.Primary.Change(ctx, NewPlayerTurn())
	})
	ctx.Controller.BeginMove(ctx.Ctx, npc, roll, false)
}

func (s *EnemyTurn) Update(ctx *Context) {}

func (s *EnemyTurn) Exit(ctx *Context) {
	if s.unsubEnd != nil {
		s.unsubEnd()
	}
}

func (s *EnemyTurn) Interact(ctx *Context) {}

// ForkSelection is the overlay state wrapping the interactive fork
// resolution protocol. It pops itself once the request resolves; a
// forced exit cancels the protocol so the request still resolves (with
// no selection) and no indicators are left behind.
type ForkSelection struct {
	req *traverse.ForkRequest
	sel *traverse.ForkSelector
}

// NewForkSelection creates the overlay state for a pending request.
func NewForkSelection(req *traverse.ForkRequest) *ForkSelection {
	return &ForkSelection{req: req}
}

func (s *ForkSelection) Name() string { return "fork_selection" }

func (s *ForkSelection) Enter(ctx *Context) {
	s.sel = traverse.NewForkSelector(s.req, ctx.Presenter, ctx.Input)
}

func (s *ForkSelection) Update(ctx *Context) {
	if s.sel.Update(ctx.Delta) {
		ctx.Overlay.Clear(ctx)
	}
}

func (s *ForkSelection) Exit(ctx *Context) {
	if s.sel != nil {
		s.sel.Cancel()
	}
}

func (s *ForkSelection) Interact(ctx *Context) {}
