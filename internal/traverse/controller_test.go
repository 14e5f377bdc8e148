package traverse

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/geom"
)

// stubTile is a minimal tile descriptor for arrival tests.
type stubTile struct {
	pass    bool
	onEnter func(a *actor.Actor)
}

func (t *stubTile) TriggerOnPass() bool { return t.pass }

func (t *stubTile) OnEnter(a *actor.Actor) {
	if t.onEnter != nil {
		t.onEnter(a)
	}
}

// stubTiles maps node ids to tiles.
type stubTiles struct {
	tiles map[board.NodeID]Tile
}

func (s *stubTiles) TileFor(n *board.Node) Tile {
	return s.tiles[n.ID]
}

// stubConfirm is a settable confirmation collaborator.
type stubConfirm struct {
	pending bool
}

func (s *stubConfirm) Pending() bool { return s.pending }

func graphFrom(t *testing.T, nodes ...*board.Node) *board.Graph {
	t.Helper()
	g := board.NewGraph(func() ([]*board.Node, error) { return nodes, nil })
	if err := g.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return g
}

// forkGraph is scenario A's board: 0 -> 1, then 1 forks to 2 and 3.
func forkGraph(t *testing.T) *board.Graph {
	t.Helper()
	return graphFrom(t,
		&board.Node{ID: 0, Pos: geom.Vec2{X: 0}, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Pos: geom.Vec2{X: 5}, Conns: []board.Connection{{Target: 2}, {Target: 3}}},
		&board.Node{ID: 2, Pos: geom.Vec2{X: 10, Y: -3}},
		&board.Node{ID: 3, Pos: geom.Vec2{X: 10, Y: 3}},
	)
}

// newPawn places an instant-moving actor on the graph node.
func newPawn(g *board.Graph, start board.NodeID, isPlayer bool) *actor.Actor {
	a := actor.New("pawn", isPlayer, '@')
	a.Speed = 0 // segments snap, so tests tick phases, not curves
	a.PlaceAt(g.Node(start))
	return a
}

func pumpMove(t *testing.T, c *Controller, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks && c.IsMoving(); i++ {
		c.Update(0.05)
	}
	if c.IsMoving() {
		t.Fatalf("move did not finish within %d ticks", maxTicks)
	}
}

func TestSingleCandidateNeverInvokesForkResolution(t *testing.T) {
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1},
	)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a)})

	forks := 0
	c.OnForkRequested(func(*ForkRequest) { forks++ })
	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	c.BeginMove(context.Background(), a, 1, false)
	pumpMove(t, c, 50)

	if forks != 0 {
		t.Errorf("fork resolution invoked %d times, want 0", forks)
	}
	if ended != 1 {
		t.Errorf("move-ended fired %d times, want 1", ended)
	}
	if a.Current != 1 {
		t.Errorf("actor at node %d, want 1", a.Current)
	}
}

func TestScenarioTwoStepsAcrossAFork(t *testing.T) {
	g := forkGraph(t)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a)})

	var forkNode board.NodeID
	var forkCands int
	forks := 0
	c.OnForkRequested(func(req *ForkRequest) {
		forks++
		forkNode = req.Node.ID
		forkCands = len(req.Candidates)
		for i := range req.Candidates {
			if req.Candidates[i].Target == 2 {
				pick := req.Candidates[i]
				req.Resolve(&pick)
				return
			}
		}
		t.Error("no candidate leading to node 2")
	})
	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	c.BeginMove(context.Background(), a, 2, false)
	pumpMove(t, c, 50)

	if forks != 1 {
		t.Fatalf("fork requested %d times, want 1", forks)
	}
	if forkNode != 1 {
		t.Errorf("fork at node %d, want 1", forkNode)
	}
	if forkCands != 2 {
		t.Errorf("fork offered %d candidates, want 2", forkCands)
	}
	if a.Current != 2 {
		t.Errorf("actor at node %d, want 2", a.Current)
	}
	if ended != 1 {
		t.Errorf("move-ended fired %d times, want 1", ended)
	}
}

func TestForkFallsBackToRandomChoice(t *testing.T) {
	g := forkGraph(t)
	a := newPawn(g, 0, true)
	c := NewController(Config{
		Graph:  g,
		Actors: actor.NewRoster(a),
		Rng:    rand.New(rand.NewSource(7)),
	})

	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	// No fork subscriber: the AI fallback must keep the move alive.
	c.BeginMove(context.Background(), a, 2, false)
	pumpMove(t, c, 50)

	if a.Current != 2 && a.Current != 3 {
		t.Errorf("actor at node %d, want 2 or 3", a.Current)
	}
	if ended != 1 {
		t.Errorf("move-ended fired %d times, want 1", ended)
	}
}

func TestAbortedForkEndsMoveWithoutConsumingStep(t *testing.T) {
	g := forkGraph(t)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a)})

	c.OnForkRequested(func(req *ForkRequest) {
		req.Abort()
	})
	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	c.BeginMove(context.Background(), a, 2, false)
	pumpMove(t, c, 50)

	if a.Current != 1 {
		t.Errorf("actor at node %d, want to stay on fork node 1", a.Current)
	}
	if ended != 1 {
		t.Errorf("move-ended fired %d times, want 1", ended)
	}
}

func TestBeginMoveWhileMovingIsNoOp(t *testing.T) {
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Conns: []board.Connection{{Target: 2}}},
		&board.Node{ID: 2, Conns: []board.Connection{{Target: 3}}},
		&board.Node{ID: 3},
	)
	a := newPawn(g, 0, true)
	b := newPawn(g, 0, false)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a, b)})

	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	c.BeginMove(context.Background(), a, 3, false)
	c.Update(0.05) // move is now in flight
	c.BeginMove(context.Background(), b, 1, false)

	pumpMove(t, c, 50)

	if ended != 1 {
		t.Errorf("move-ended fired %d times, want 1", ended)
	}
	if a.Current != 3 {
		t.Errorf("first mover at node %d, want 3", a.Current)
	}
	if b.Current != 0 {
		t.Errorf("second mover at node %d, want unmoved at 0", b.Current)
	}
}

func TestDeadEndTerminatesEarly(t *testing.T) {
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Conns: []board.Connection{{Target: 2}}},
		&board.Node{ID: 2},
	)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a)})

	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	c.BeginMove(context.Background(), a, 5, false)
	pumpMove(t, c, 50)

	if a.Current != 2 {
		t.Errorf("actor at node %d, want dead end 2", a.Current)
	}
	if ended != 1 {
		t.Errorf("move-ended fired %d times, want 1", ended)
	}
}

func TestMissingStartNodeAbortsGracefully(t *testing.T) {
	g := graphFrom(t, &board.Node{ID: 0})
	a := newPawn(g, 0, true)
	a.Current = 99 // dangling reference
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a)})

	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	c.BeginMove(context.Background(), a, 3, false)
	pumpMove(t, c, 50)

	if ended != 1 {
		t.Errorf("move-ended fired %d times, want 1", ended)
	}
}

func TestNilActorResolvesToPlayer(t *testing.T) {
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1},
	)
	player := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(player)})

	c.BeginMove(context.Background(), nil, 1, false)
	pumpMove(t, c, 50)

	if player.Current != 1 {
		t.Errorf("player at node %d, want 1", player.Current)
	}
}

func TestDisableMidTraversalLeavesCleanState(t *testing.T) {
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Conns: []board.Connection{{Target: 2}}},
		&board.Node{ID: 2, Conns: []board.Connection{{Target: 3}}},
		&board.Node{ID: 3},
	)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a)})

	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	c.BeginMove(context.Background(), a, 3, false)
	c.Update(0.05)
	c.Disable()

	if c.IsMoving() {
		t.Error("IsMoving() still true after Disable")
	}
	if a.Moving || a.Walking {
		t.Error("actor motion flags not reset after Disable")
	}
	if ended != 1 {
		t.Fatalf("move-ended fired %d times after Disable, want 1", ended)
	}

	// A fresh move must run cleanly afterward.
	c.BeginMove(context.Background(), a, 1, false)
	pumpMove(t, c, 50)
	if ended != 2 {
		t.Errorf("move-ended fired %d times total, want 2", ended)
	}
}

func TestDisableDuringForkResolvesRequestOnce(t *testing.T) {
	g := forkGraph(t)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a)})

	var req *ForkRequest
	c.OnForkRequested(func(r *ForkRequest) { req = r })
	ended := 0
	c.OnMoveEnded(func(*actor.Actor) { ended++ })

	c.BeginMove(context.Background(), a, 2, false)
	for i := 0; i < 50 && req == nil; i++ {
		c.Update(0.05)
	}
	if req == nil {
		t.Fatal("fork never requested")
	}

	c.Disable()

	if !req.Resolved() {
		t.Error("pending fork request not resolved by Disable")
	}
	if req.Choice() != nil {
		t.Errorf("aborted request has choice %v, want nil", req.Choice())
	}
	if ended != 1 {
		t.Errorf("move-ended fired %d times, want 1", ended)
	}

	// A late confirm racing teardown must not resurrect the request.
	late := g.Node(1).Conns[0]
	req.Resolve(&late)
	if req.Choice() != nil {
		t.Error("late Resolve overwrote the aborted request")
	}
}

func TestEncounterSuspendsUntilCompleted(t *testing.T) {
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Tile: "plain"},
	)
	mover := newPawn(g, 0, true)
	blocker := newPawn(g, 1, false)
	tiles := &stubTiles{tiles: map[board.NodeID]Tile{1: &stubTile{}}}
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(mover, blocker), Tiles: tiles})

	var enc *Encounter
	c.OnEncounter(func(e *Encounter) { enc = e })

	c.BeginMove(context.Background(), mover, 1, true)
	for i := 0; i < 10; i++ {
		c.Update(0.05)
	}

	if enc == nil {
		t.Fatal("encounter never raised")
	}
	if !c.IsMoving() {
		t.Fatal("move finished while the encounter was unresolved")
	}

	enc.Complete()
	pumpMove(t, c, 50)

	if mover.Current != 1 {
		t.Errorf("actor at node %d, want 1", mover.Current)
	}
}

func TestEncounterWithoutSubscriberResolvesImmediately(t *testing.T) {
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Tile: "plain"},
	)
	mover := newPawn(g, 0, true)
	blocker := newPawn(g, 1, false)
	tiles := &stubTiles{tiles: map[board.NodeID]Tile{1: &stubTile{}}}
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(mover, blocker), Tiles: tiles})

	c.BeginMove(context.Background(), mover, 1, true)
	pumpMove(t, c, 50)

	if mover.Current != 1 {
		t.Errorf("actor at node %d, want 1", mover.Current)
	}
}

func TestConfirmationBlocksUntilAnswered(t *testing.T) {
	confirm := &stubConfirm{}
	tiles := &stubTiles{tiles: map[board.NodeID]Tile{
		1: &stubTile{onEnter: func(*actor.Actor) { confirm.pending = true }},
	}}
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Tile: "prompt"},
	)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a), Tiles: tiles, Confirm: confirm})

	c.BeginMove(context.Background(), a, 1, true)
	for i := 0; i < 10; i++ {
		c.Update(0.05)
	}
	if !c.IsMoving() {
		t.Fatal("move finished while confirmation was pending")
	}

	confirm.pending = false
	pumpMove(t, c, 50)
}

func TestTileEffectsDisabledSkipsArrivalProtocol(t *testing.T) {
	fired := 0
	tiles := &stubTiles{tiles: map[board.NodeID]Tile{
		1: &stubTile{onEnter: func(*actor.Actor) { fired++ }},
	}}
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Tile: "plain"},
	)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a), Tiles: tiles})

	c.BeginMove(context.Background(), a, 1, false)
	pumpMove(t, c, 50)

	if fired != 0 {
		t.Errorf("tile effect fired %d times with effects disabled, want 0", fired)
	}
}

func TestPassOverTileOnlyFiresWithTriggerOnPass(t *testing.T) {
	firedAt := []board.NodeID{}
	mk := func(id board.NodeID, pass bool) Tile {
		return &stubTile{pass: pass, onEnter: func(*actor.Actor) { firedAt = append(firedAt, id) }}
	}
	tiles := &stubTiles{tiles: map[board.NodeID]Tile{1: mk(1, false), 2: mk(2, true), 3: mk(3, false)}}
	g := graphFrom(t,
		&board.Node{ID: 0, Conns: []board.Connection{{Target: 1}}},
		&board.Node{ID: 1, Tile: "quiet", Conns: []board.Connection{{Target: 2}}},
		&board.Node{ID: 2, Tile: "loud", Conns: []board.Connection{{Target: 3}}},
		&board.Node{ID: 3, Tile: "final"},
	)
	a := newPawn(g, 0, true)
	c := NewController(Config{Graph: g, Actors: actor.NewRoster(a), Tiles: tiles})

	c.BeginMove(context.Background(), a, 3, true)
	pumpMove(t, c, 50)

	// Node 1 is passed over silently, node 2 fires on pass, node 3
	// fires as the landing tile.
	if len(firedAt) != 2 || firedAt[0] != 2 || firedAt[1] != 3 {
		t.Errorf("tile effects fired at %v, want [2 3]", firedAt)
	}
}
