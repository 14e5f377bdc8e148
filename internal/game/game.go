// Package game assembles the board engine into a playable terminal
// game: it owns the tick pump, the turn orchestrator, and the glue
// between tcell events and the engine's input collaborator.
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/gamedata"
	"github.com/samdwyer/boardwalk/internal/telemetry"
	"github.com/samdwyer/boardwalk/internal/traverse"
	"github.com/samdwyer/boardwalk/internal/turn"
	"github.com/samdwyer/boardwalk/internal/ui"
)

// tickRate is the cooperative pump frequency.
const tickRate = 30

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	input    *ui.Input

	boardDef *gamedata.BoardDef
	tiles    *gamedata.TileRegistry
	graph    *board.Graph
	roster   *actor.Roster

	controller *traverse.Controller
	orch       *turn.Orchestrator
	confirm    *ConfirmQueue
	store      LastNodeStore
	log        *MessageLog
	rng        *rand.Rand

	running bool
}

// New creates a game instance over a fresh terminal screen.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	boardFile := cfg.Board
	if boardFile == "" {
		boardFile = DefaultBoard
	}
	def, err := gamedata.LoadBoard(boardFile)
	if err != nil {
		screen.Close()
		return nil, err
	}
	tiles, err := gamedata.LoadTileRegistry()
	if err != nil {
		screen.Close()
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, tiles),
		input:    ui.NewInput(),
		boardDef: def,
		tiles:    tiles,
		rng:      rand.New(rand.NewSource(seed)),
		store:    NewMemoryStore(),
		log:      NewMessageLog(5),
		running:  true,
	}, nil
}

// Run executes the game until the player quits.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, initSpan := tracer.Start(ctx, "game.init")
	if err := g.enterBoard(ctx); err != nil {
		initSpan.End()
		g.screen.Close()
		return err
	}
	initSpan.SetAttributes(
		attribute.String("board.name", g.boardDef.Name),
		attribute.Int("board.nodes", g.graph.Len()),
	)
	initSpan.End()

	// A dedicated goroutine pumps blocking tcell events into the
	// cooperative tick loop.
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()
	last := time.Now()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-events:
			g.handleEvent(ev)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.orch.Tick(dt)
			g.input.EndTick()
			g.render()
		}
	}

	g.orch.Shutdown()
	g.screen.Close()
	return nil
}

// enterBoard (re)builds the graph and places the actors, restoring the
// player's persisted position when one exists.
func (g *Game) enterBoard(ctx context.Context) error {
	g.graph = board.NewGraph(board.FromDef(g.boardDef))
	if err := g.graph.Rebuild(ctx); err != nil {
		return err
	}

	start := g.graph.Node(board.NodeID(g.boardDef.Start))
	playerStart := start
	if last := g.store.LastNode(); last != board.NoNode {
		if n := g.graph.Node(last); n != nil {
			playerStart = n
		}
	}

	player := actor.New("You", true, '@')
	player.PlaceAt(playerStart)
	rival := actor.New("Rook", false, 'R')
	rival.PlaceAt(start)
	g.roster = actor.NewRoster(player, rival)

	g.confirm = NewConfirmQueue()
	g.controller = traverse.NewController(traverse.Config{
		Graph:   g.graph,
		Actors:  g.roster,
		Tiles:   NewTileEffects(g.tiles, g.graph, g.confirm, g.log.Push),
		Events:  NewPathEventLog(g.log.Push),
		Confirm: g.confirm,
		Rng:     g.rng,
	})
	g.controller.OnSegmentCompleted(func(ev traverse.SegmentEvent) {
		if ev.Actor.IsPlayer {
			g.store.SetLastNode(ev.Node.ID)
		}
	})
	g.controller.OnEncounter(func(e *traverse.Encounter) {
		g.log.Push(e.Moving.Name + " runs into " + e.Occupant.Name + "!")
		e.Complete()
	})

	g.orch = turn.NewOrchestrator(&turn.Context{
		Ctx:        ctx,
		Actors:     g.roster,
		Controller: g.controller,
		Input:      g.input,
		Presenter:  g.renderer,
		Rng:        g.rng,
		Log:        g.log.Push,
	})
	g.orch.Start()
	return nil
}

// handleEvent translates one terminal event into input pulses.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.input.PulseDirection(0, -1)
	case tcell.KeyDown:
		g.input.PulseDirection(0, 1)
	case tcell.KeyLeft:
		g.input.PulseDirection(-1, 0)
	case tcell.KeyRight:
		g.input.PulseDirection(1, 0)

	case tcell.KeyEnter:
		g.confirmPressed()

	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			g.confirmPressed()
		case 'q', 'Q':
			g.running = false
		}
	}
}

// confirmPressed routes the confirm key: a pending tile prompt takes
// it first, then the fork overlay (via the polled pulse), then the
// primary turn state.
func (g *Game) confirmPressed() {
	if g.confirm.Pending() {
		g.confirm.Respond()
		return
	}
	g.input.PulseConfirm()
	g.orch.Interact()
}

func (g *Game) render() {
	nodes := make([]*board.Node, 0, g.graph.Len())
	for _, nd := range g.boardDef.Nodes {
		if n := g.graph.Node(board.NodeID(nd.ID)); n != nil {
			nodes = append(nodes, n)
		}
	}
	g.renderer.Render(nodes, g.roster.All(), g.log.Lines(), g.confirm.Prompt())
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
