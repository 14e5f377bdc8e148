package game

import (
	"fmt"

	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/gamedata"
	"github.com/samdwyer/boardwalk/internal/motion"
	"github.com/samdwyer/boardwalk/internal/traverse"
)

// TileEffects resolves tile descriptors for board nodes and applies
// their landing effects. It implements traverse.TileSource.
type TileEffects struct {
	reg     *gamedata.TileRegistry
	graph   *board.Graph
	confirm *ConfirmQueue
	log     func(string)
}

// NewTileEffects creates the resolver. confirm and log may be nil.
func NewTileEffects(reg *gamedata.TileRegistry, graph *board.Graph, confirm *ConfirmQueue, log func(string)) *TileEffects {
	return &TileEffects{reg: reg, graph: graph, confirm: confirm, log: log}
}

// TileFor returns the tile descriptor for node, or nil for plain
// waypoints and unknown tile ids.
func (e *TileEffects) TileFor(node *board.Node) traverse.Tile {
	if node == nil || node.Tile == "" {
		return nil
	}
	def := e.reg.GetByID(node.Tile)
	if def == nil {
		return nil
	}
	return &tileInstance{def: def, fx: e}
}

func (e *TileEffects) logf(format string, args ...any) {
	if e.log != nil {
		e.log(fmt.Sprintf(format, args...))
	}
}

// tileInstance binds a tile definition to the effects context.
type tileInstance struct {
	def *gamedata.TileDef
	fx  *TileEffects
}

func (t *tileInstance) TriggerOnPass() bool {
	return t.def.TriggerOnPass
}

// OnEnter applies the landing effect to the arriving actor.
func (t *tileInstance) OnEnter(a *actor.Actor) {
	switch t.def.Kind {
	case gamedata.TileGain:
		a.Coins += t.def.Amount
		t.fx.logf("%s finds %s: +%d coins.", a.Name, t.def.Name, t.def.Amount)

	case gamedata.TileLose:
		loss := t.def.Amount
		if loss > a.Coins {
			loss = a.Coins
		}
		a.Coins -= loss
		t.fx.logf("%s pays %s: -%d coins.", a.Name, t.def.Name, loss)

	case gamedata.TileTeleport:
		dest := t.fx.graph.Node(board.NodeID(t.def.TargetNode))
		if dest == nil {
			return
		}
		a.PlaceAt(dest)
		t.fx.logf("%s steps on the %s and is whisked away.", a.Name, t.def.Name)

	case gamedata.TileEvent:
		if a.IsPlayer && t.fx.confirm != nil {
			t.fx.confirm.Raise(fmt.Sprintf("%s: press enter to continue.", t.def.Name))
		}
	}
}

// ConfirmQueue is the confirmation collaborator: tile effects raise a
// prompt, the player answers it with the confirm key. There is no
// timeout on a pending prompt; an unanswered one suspends the move
// indefinitely, matching the board rules.
type ConfirmQueue struct {
	pending bool
	prompt  string
}

// NewConfirmQueue creates an empty queue.
func NewConfirmQueue() *ConfirmQueue {
	return &ConfirmQueue{}
}

// Raise posts a prompt awaiting a response.
func (q *ConfirmQueue) Raise(prompt string) {
	q.pending = true
	q.prompt = prompt
}

// Pending reports whether a prompt awaits a response.
func (q *ConfirmQueue) Pending() bool {
	return q.pending
}

// Prompt returns the current prompt text, "" when none is pending.
func (q *ConfirmQueue) Prompt() string {
	if !q.pending {
		return ""
	}
	return q.prompt
}

// Respond answers the pending prompt.
func (q *ConfirmQueue) Respond() {
	q.pending = false
	q.prompt = ""
}

// PathEventLog runs in-path events. Known actions hold the actor at
// the event point for a beat and log a flavor line; unknown actions
// complete instantly. Implements motion.EventRunner.
type PathEventLog struct {
	log func(string)
}

// NewPathEventLog creates the runner. log may be nil.
func NewPathEventLog(log func(string)) *PathEventLog {
	return &PathEventLog{log: log}
}

// eventPause is how long a flavor event suspends motion, in seconds.
const eventPause = 0.25

// RunPathEvent executes one in-path event, returning a cooperative
// wait for actions that hold the actor in place.
func (r *PathEventLog) RunPathEvent(a *actor.Actor, ev board.PathEvent) motion.Wait {
	switch ev.Action {
	case "chime":
		r.logf("A chime rings out as %s passes.", a.Name)
	case "dust":
		r.logf("%s kicks up a cloud of dust.", a.Name)
	default:
		return nil
	}
	remaining := eventPause
	return func(dt float64) bool {
		remaining -= dt
		return remaining <= 0
	}
}

func (r *PathEventLog) logf(format string, args ...any) {
	if r.log != nil {
		r.log(fmt.Sprintf(format, args...))
	}
}
