package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/boardwalk/internal/actor"
	"github.com/samdwyer/boardwalk/internal/board"
	"github.com/samdwyer/boardwalk/internal/gamedata"
	"github.com/samdwyer/boardwalk/internal/geom"
)

// logTopOffset is where the message log starts, counted from the
// bottom of the board area.
const logTopOffset = 2

// Renderer draws the board, actors, and fork indicators to the screen.
// It also implements the fork presenter contract: ShowCandidates,
// Highlight, and Clear store marker state that Render picks up.
type Renderer struct {
	screen *Screen
	tiles  *gamedata.TileRegistry

	// Fork indicator state, managed by the presenter methods.
	forkMarks []geom.Vec2
	forkIndex int
	forkShown bool
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen, tiles *gamedata.TileRegistry) *Renderer {
	return &Renderer{screen: screen, tiles: tiles}
}

// Render draws one frame: connection curves, nodes, actors, fork
// markers, the pending prompt, and the message log.
func (r *Renderer) Render(nodes []*board.Node, actors []*actor.Actor, log []string, prompt string) {
	r.screen.Clear()

	byID := make(map[board.NodeID]*board.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	// Connections first, so nodes and actors draw over them.
	pathStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for _, n := range nodes {
		for _, c := range n.Conns {
			target := byID[c.Target]
			if target == nil {
				continue
			}
			r.drawCurve(n.Pos, n.Pos.Add(c.Control), target.Pos, pathStyle)
		}
	}

	for _, n := range nodes {
		r.drawNode(n)
	}

	if r.forkShown {
		r.drawForkMarks()
	}

	for _, a := range actors {
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
		if !a.IsPlayer {
			style = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		}
		r.putCell(a.Pos, a.Glyph, style)
	}

	_, h := r.screen.Size()
	line := h - len(log) - logTopOffset
	for _, msg := range log {
		r.drawText(0, line, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		line++
	}
	if prompt != "" {
		r.drawText(0, h-1, prompt, tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true))
	}

	r.screen.Show()
}

// ShowCandidates stores position indicators for each fork candidate.
func (r *Renderer) ShowCandidates(cands []board.Connection, origin geom.Vec2) {
	r.forkMarks = r.forkMarks[:0]
	for _, c := range cands {
		// The marker sits a short way along the candidate's curve so
		// the player can see which way each choice leads.
		mark := geom.QuadBezier(origin, origin.Add(c.Control), origin.Add(c.Control), 0.5)
		r.forkMarks = append(r.forkMarks, mark)
	}
	r.forkIndex = 0
	r.forkShown = true
}

// Highlight moves the highlighted candidate marker.
func (r *Renderer) Highlight(index int) {
	r.forkIndex = index
}

// Clear removes all fork indicators.
func (r *Renderer) Clear() {
	r.forkShown = false
	r.forkMarks = r.forkMarks[:0]
}

func (r *Renderer) drawForkMarks() {
	for i, mark := range r.forkMarks {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		glyph := 'o'
		if i == r.forkIndex {
			style = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
			glyph = '*'
		}
		r.putCell(mark, glyph, style)
	}
}

func (r *Renderer) drawNode(n *board.Node) {
	glyph := 'O'
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if n.Tile != "" {
		if def := r.tiles.GetByID(n.Tile); def != nil {
			glyph = def.GlyphRune()
			style = tcell.StyleDefault.Foreground(def.TCellColor())
		}
	}
	r.putCell(n.Pos, glyph, style)
}

// drawCurve samples the quadratic bezier densely enough that adjacent
// cells connect on screen.
func (r *Renderer) drawCurve(p0, p1, p2 geom.Vec2, style tcell.Style) {
	dist := p0.Dist(p1) + p1.Dist(p2)
	steps := int(dist * 2)
	if steps < 2 {
		steps = 2
	}
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		r.putCell(geom.QuadBezier(p0, p1, p2, t), '.', style)
	}
}

func (r *Renderer) putCell(pos geom.Vec2, glyph rune, style tcell.Style) {
	x := int(math.Round(pos.X))
	y := int(math.Round(pos.Y))
	w, h := r.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	r.screen.SetContent(x, y, glyph, style)
}

func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for i, ch := range msg {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
