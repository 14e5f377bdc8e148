package turn

import (
	"github.com/samdwyer/boardwalk/internal/fsm"
)

// Orchestrator owns the two turn machines and drives them in a fixed
// order each tick: overlay first, so an active interrupt observes and
// consumes interaction before the primary turn logic does.
type Orchestrator struct {
	ctx     *Context
	primary *fsm.Machine[*Context]
	overlay *fsm.Machine[*Context]
}

// NewOrchestrator wires the machines into ctx and returns the
// orchestrator. Start must be called to enter the first turn.
func NewOrchestrator(ctx *Context) *Orchestrator {
	o := &Orchestrator{
		ctx:     ctx,
		primary: fsm.New[*Context](),
		overlay: fsm.New[*Context](),
	}
	ctx.Primary = o.primary
	ctx.Overlay = o.overlay
	return o
}

// Start enters the player's turn.
func (o *Orchestrator) Start() {
	o.primary.Change(o.ctx, NewPlayerTurn())
}

// Tick advances one frame: overlay machine, then primary machine, then
// the movement controller.
func (o *Orchestrator) Tick(dt float64) {
	o.ctx.Delta = dt
	o.overlay.Update(o.ctx)
	o.primary.Update(o.ctx)
	o.ctx.Controller.Update(dt)
}

// Interact routes an interact pulse. An active overlay intercepts it;
// otherwise the primary state sees it.
func (o *Orchestrator) Interact() {
	if o.overlay.Current() != nil {
		o.overlay.Interact(o.ctx)
		return
	}
	o.primary.Interact(o.ctx)
}

// Shutdown tears the turn flow down: overlays and states exit, and any
// in-flight move is cancelled with its notification fired.
func (o *Orchestrator) Shutdown() {
	o.overlay.Clear(o.ctx)
	o.primary.Clear(o.ctx)
	o.ctx.Controller.Disable()
}

// PrimaryName returns the active primary state name, for rendering.
func (o *Orchestrator) PrimaryName() string {
	return o.primary.CurrentName()
}

// OverlayActive reports whether an overlay state is running.
func (o *Orchestrator) OverlayActive() bool {
	return o.overlay.Current() != nil
}
