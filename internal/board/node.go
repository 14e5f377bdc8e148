// Package board provides the waypoint graph the traversal engine walks:
// nodes, curved connections between them, and the in-path events a
// connection carries.
package board

import "github.com/samdwyer/boardwalk/internal/geom"

// NodeID identifies a waypoint node within a graph.
type NodeID int

// NoNode is the invalid node id, used where "no waypoint" is meaningful
// (no previous waypoint, no persisted position).
const NoNode NodeID = -1

// PathEvent is an action bound to a progress point along a connection's
// curve. Progress is in (0,1); events on a connection are sorted
// ascending by Progress once, at graph build time.
type PathEvent struct {
	Progress float64
	Action   string
	Context  string
}

// Connection is a directed, curved edge to another waypoint. Control is
// the quadratic-bezier control point expressed as an offset from the
// source node's position.
type Connection struct {
	Target  NodeID
	Control geom.Vec2
	Events  []PathEvent
}

// Node is a single waypoint on the board. Nodes are read-only during
// traversal; the whole set is rebuilt when a board is (re)entered.
type Node struct {
	ID    NodeID
	Pos   geom.Vec2
	Tile  string // tile descriptor id, empty for plain waypoints
	Conns []Connection
}
