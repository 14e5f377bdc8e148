package ui

import "github.com/samdwyer/boardwalk/internal/geom"

// Input is the input collaborator: the game feeds it key events, and
// engine components poll it as a directional vector plus discrete
// confirm pulses. Pulses last one tick; EndTick clears them.
type Input struct {
	dir     geom.Vec2
	confirm bool
}

// NewInput creates an idle input source.
func NewInput() *Input {
	return &Input{}
}

// PulseDirection records a directional press for this tick.
func (i *Input) PulseDirection(dx, dy float64) {
	i.dir = geom.Vec2{X: dx, Y: dy}
}

// PulseConfirm records a confirm press for this tick.
func (i *Input) PulseConfirm() {
	i.confirm = true
}

// Direction returns the directional vector for the current tick.
func (i *Input) Direction() geom.Vec2 {
	return i.dir
}

// ConfirmPressed reports a confirm pulse in the current tick.
func (i *Input) ConfirmPressed() bool {
	return i.confirm
}

// EndTick clears all pulses. The game calls it after each tick.
func (i *Input) EndTick() {
	i.dir = geom.Vec2{}
	i.confirm = false
}
