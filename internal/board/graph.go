package board

import (
	"context"
	"errors"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/boardwalk/internal/telemetry"
)

// ErrEmptyGraph is returned when a graph is built from no nodes.
var ErrEmptyGraph = errors.New("board: graph has no nodes")

// BuildFunc produces the full node set for a graph. It is invoked on
// every rebuild; the graph never mutates nodes incrementally.
type BuildFunc func() ([]*Node, error)

// Graph is the id-indexed waypoint set for the current board. Lookup is
// O(1) after a one-time build pass; a lookup against an empty cache
// triggers an implicit rebuild from the registered BuildFunc.
type Graph struct {
	byID  map[NodeID]*Node
	build BuildFunc
}

// NewGraph creates an empty graph that rebuilds itself from build.
func NewGraph(build BuildFunc) *Graph {
	return &Graph{build: build}
}

// Rebuild discards the cached node set and rebuilds it wholesale.
// Connection events are sorted ascending by progress here, once;
// traversal never re-sorts them.
func (g *Graph) Rebuild(ctx context.Context) error {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "graph.rebuild")
	defer span.End()

	if g.build == nil {
		return ErrEmptyGraph
	}
	nodes, err := g.build()
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return ErrEmptyGraph
	}

	byID := make(map[NodeID]*Node, len(nodes))
	conns := 0
	for _, n := range nodes {
		for i := range n.Conns {
			evs := n.Conns[i].Events
			sort.SliceStable(evs, func(a, b int) bool {
				return evs[a].Progress < evs[b].Progress
			})
		}
		conns += len(n.Conns)
		byID[n.ID] = n
	}
	g.byID = byID

	span.SetAttributes(
		attribute.Int("graph.nodes", len(nodes)),
		attribute.Int("graph.connections", conns),
	)
	return nil
}

// Node returns the node with the given id, or nil if it is unknown.
// An empty cache is rebuilt first.
func (g *Graph) Node(id NodeID) *Node {
	if len(g.byID) == 0 {
		if err := g.Rebuild(context.Background()); err != nil {
			return nil
		}
	}
	return g.byID[id]
}

// Len returns the number of nodes currently cached.
func (g *Graph) Len() int {
	return len(g.byID)
}

// ValidNext returns the connections an actor arriving from incomingFrom
// may take out of node: every connection except the one leading back to
// incomingFrom. If that leaves nothing and incomingFrom is a real node,
// the backtracking connection alone is returned, so a dead end can be
// walked out of but never re-entered while other choices exist.
func (g *Graph) ValidNext(node *Node, incomingFrom NodeID) []Connection {
	if node == nil {
		return nil
	}
	valid := make([]Connection, 0, len(node.Conns))
	for _, c := range node.Conns {
		if c.Target != incomingFrom {
			valid = append(valid, c)
		}
	}
	if len(valid) > 0 || incomingFrom == NoNode {
		return valid
	}
	for _, c := range node.Conns {
		if c.Target == incomingFrom {
			return []Connection{c}
		}
	}
	return nil
}
