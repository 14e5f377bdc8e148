// Package fsm provides the small state machine engine the turn flow is
// built on. Two independent machines compose the turn orchestrator: a
// primary machine for turn flow and an overlay machine for interrupts
// such as fork selection. The engine itself knows nothing about turns.
package fsm

// State is a single machine state. Each state owns its own enter/exit,
// per-tick update, and interact handling, in the style of a pushdown
// game state.
type State[C any] interface {
	Name() string
	Enter(ctx C)
	Update(ctx C)
	Exit(ctx C)
	Interact(ctx C)
}

// Machine holds at most one current state and serializes transitions.
// A Change issued while a transition is running (i.e. from inside an
// Enter or Exit hook) is queued and drained afterward; a Clear issued
// mid-transition is deferred and takes priority over the queue.
type Machine[C any] struct {
	current      State[C]
	pending      []State[C]
	inTransition bool
	clearPending bool
}

// New creates an empty machine.
func New[C any]() *Machine[C] {
	return &Machine[C]{}
}

// Current returns the active state, or nil.
func (m *Machine[C]) Current() State[C] {
	return m.current
}

// CurrentName returns the active state's name, or "" when empty.
func (m *Machine[C]) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Change transitions the machine to next. Changing to a state with the
// same name as the current one is a no-op. If a transition is already
// running the request is queued, deduplicating against the queue tail;
// it is dropped entirely when a clear is pending.
func (m *Machine[C]) Change(ctx C, next State[C]) {
	if m.inTransition {
		if m.clearPending {
			return
		}
		if next != nil && len(m.pending) > 0 {
			tail := m.pending[len(m.pending)-1]
			if tail != nil && tail.Name() == next.Name() {
				return
			}
		}
		m.pending = append(m.pending, next)
		return
	}
	if m.current != nil && next != nil && m.current.Name() == next.Name() {
		return
	}
	m.transit(ctx, next)
	m.drain(ctx)
}

// Clear empties the machine. Mid-transition it defers the clear and
// discards everything queued; otherwise the current state exits now.
func (m *Machine[C]) Clear(ctx C) {
	if m.inTransition {
		m.clearPending = true
		m.pending = m.pending[:0]
		return
	}
	m.exitCurrent(ctx)
}

// Update forwards the tick to the current state only. The owner is
// responsible for updating an overlay machine before its primary one,
// so the overlay can intercept interaction first.
func (m *Machine[C]) Update(ctx C) {
	if m.current != nil {
		m.current.Update(ctx)
	}
}

// Interact forwards an interact pulse to the current state.
func (m *Machine[C]) Interact(ctx C) {
	if m.current != nil {
		m.current.Interact(ctx)
	}
}

// transit performs one exit/assign/enter cycle. Enter and Exit hooks
// run with the in-transition flag set, so nested Change calls queue.
func (m *Machine[C]) transit(ctx C, next State[C]) {
	m.inTransition = true
	if m.current != nil {
		m.current.Exit(ctx)
	}
	m.current = next
	if next != nil {
		next.Enter(ctx)
	}
	m.inTransition = false
}

// drain processes transitions queued during Enter/Exit hooks. A clear
// requested mid-drain wins over whatever is still queued.
func (m *Machine[C]) drain(ctx C) {
	for {
		if m.clearPending {
			m.clearPending = false
			m.pending = m.pending[:0]
			m.exitCurrent(ctx)
			return
		}
		if len(m.pending) == 0 {
			return
		}
		next := m.pending[0]
		m.pending = m.pending[1:]
		if m.current != nil && next != nil && m.current.Name() == next.Name() {
			continue
		}
		m.transit(ctx, next)
	}
}

func (m *Machine[C]) exitCurrent(ctx C) {
	if m.current == nil {
		return
	}
	m.inTransition = true
	m.current.Exit(ctx)
	m.current = nil
	m.inTransition = false
	m.drain(ctx)
}
