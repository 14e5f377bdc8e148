package traverse

import (
	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/board"
)

// arrival runs the node-arrival protocol as a resumable routine:
// encounter wait, tile effect, confirmation wait, animation resume.
// Each wait is cooperative; a missing collaborator resolves the wait
// immediately instead of stalling the traversal.
type arrival struct {
	c     *Controller
	actor *actor.Actor
	node  *board.Node
	tile  Tile
	final bool

	stage int
	enc   *Encounter
}

const (
	arriveEncounter = iota
	arriveEncounterWait
	arriveTile
	arriveConfirmWait
	arriveResume
)

// newArrival prepares arrival handling for a node. With tile effects
// disabled for the move, or on a node without a tile descriptor, the
// whole protocol is skipped.
func newArrival(c *Controller, a *actor.Actor, node *board.Node, final, triggerTileEffects bool) *arrival {
	ar := &arrival{c: c, actor: a, node: node, final: final}
	if !triggerTileEffects || c.tiles == nil {
		ar.stage = arriveResume
		return ar
	}
	ar.tile = c.tiles.TileFor(node)
	if ar.tile == nil {
		ar.stage = arriveResume
	}
	return ar
}

// update advances the protocol one tick and reports completion.
func (ar *arrival) update() bool {
	for {
		switch ar.stage {
		case arriveEncounter:
			occ := ar.c.roster.OccupantAt(ar.node.ID, ar.actor)
			if occ == nil {
				ar.stage = arriveTile
				continue
			}
			ar.actor.Walking = false
			ar.enc = &Encounter{Moving: ar.actor, Occupant: occ}
			if ar.c.encounters.empty() {
				// Nobody listening: resolve immediately.
				ar.enc.Complete()
			} else {
				ar.c.encounters.emit(ar.enc)
			}
			ar.stage = arriveEncounterWait
			continue

		case arriveEncounterWait:
			if !ar.enc.Completed() {
				return false
			}
			if !ar.final {
				ar.actor.Walking = true
			}
			ar.stage = arriveTile
			continue

		case arriveTile:
			if !ar.final && !ar.tile.TriggerOnPass() {
				ar.stage = arriveResume
				continue
			}
			ar.actor.Walking = false
			ar.c.nodeReached.emit(ar.node)
			ar.tile.OnEnter(ar.actor)
			ar.stage = arriveConfirmWait
			continue

		case arriveConfirmWait:
			if ar.c.confirm != nil && ar.c.confirm.Pending() {
				return false
			}
			ar.stage = arriveResume
			continue

		default: // arriveResume
			if !ar.final {
				ar.actor.Walking = true
			}
			return true
		}
	}
}
