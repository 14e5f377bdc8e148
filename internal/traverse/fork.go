package traverse

import "github.com/samdwyer/boardwalk/internal/board"

// Fork selection input tuning, matched to a comfortable terminal
// repeat cadence.
const (
	forkInputThreshold = 0.5  // Directional magnitude needed to cycle
	forkInputCooldown  = 0.18 // Seconds between cycling steps
)

// ForkRequest is one pending branch decision: the node the actor is
// paused on and the connections it may take. Resolve delivers the
// choice back into the controller; it takes effect exactly once, so a
// late duplicate (e.g. a confirm racing a teardown) is ignored.
type ForkRequest struct {
	Node       *board.Node
	Candidates []board.Connection

	resolved bool
	choice   *board.Connection
}

// Resolve locks in the chosen connection. nil means "no selection" and
// aborts the move. Only the first call has any effect.
func (r *ForkRequest) Resolve(c *board.Connection) {
	if r.resolved {
		return
	}
	r.resolved = true
	r.choice = c
}

// Abort resolves the request with no selection.
func (r *ForkRequest) Abort() {
	r.Resolve(nil)
}

// Resolved reports whether a choice (or abort) has been delivered.
func (r *ForkRequest) Resolved() bool {
	return r.resolved
}

// Choice returns the resolved connection, nil before resolution or
// after an abort.
func (r *ForkRequest) Choice() *board.Connection {
	return r.choice
}

// ForkSelector runs the interactive fork resolution protocol: it shows
// the candidates, cycles a highlight on directional input, and resolves
// the request on confirm. It is driven by per-tick Update calls from
// the overlay state that owns it.
type ForkSelector struct {
	req   *ForkRequest
	ui    ForkPresenter
	input InputSource

	index    int
	cooldown float64
	done     bool
}

// NewForkSelector starts the protocol for req, showing candidates with
// the highlight on index 0. ui may be nil for a headless selector.
func NewForkSelector(req *ForkRequest, ui ForkPresenter, input InputSource) *ForkSelector {
	s := &ForkSelector{req: req, ui: ui, input: input}
	if ui != nil {
		ui.ShowCandidates(req.Candidates, req.Node.Pos)
		ui.Highlight(0)
	}
	return s
}

// Index returns the currently highlighted candidate index.
func (s *ForkSelector) Index() int {
	return s.index
}

// Update advances the protocol by dt and reports whether the request
// has been resolved.
func (s *ForkSelector) Update(dt float64) bool {
	if s.done {
		return true
	}
	s.cooldown -= dt

	dir := s.input.Direction()
	if dir.Len() >= forkInputThreshold && s.cooldown <= 0 {
		step := 1
		if dir.X < 0 || (dir.X == 0 && dir.Y < 0) {
			step = -1
		}
		n := len(s.req.Candidates)
		s.index = ((s.index+step)%n + n) % n
		s.cooldown = forkInputCooldown
		if s.ui != nil {
			s.ui.Highlight(s.index)
		}
	}

	if s.input.ConfirmPressed() {
		s.done = true
		if s.ui != nil {
			s.ui.Clear()
		}
		choice := s.req.Candidates[s.index]
		s.req.Resolve(&choice)
		return true
	}
	return false
}

// Cancel tears the protocol down, clearing indicators and resolving the
// request with no selection if it has not resolved yet.
func (s *ForkSelector) Cancel() {
	if s.done {
		return
	}
	s.done = true
	if s.ui != nil {
		s.ui.Clear()
	}
	s.req.Abort()
}
