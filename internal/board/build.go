package board

import (
	"github.com/samdwyer/boardwalk/internal/gamedata"
)

// FromDef returns a BuildFunc producing the node set described by a
// loaded board definition. Each rebuild materializes fresh nodes, so a
// re-entered board never aliases state from the previous visit.
func FromDef(def *gamedata.BoardDef) BuildFunc {
	return func() ([]*Node, error) {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		nodes := make([]*Node, 0, len(def.Nodes))
		for _, nd := range def.Nodes {
			n := &Node{
				ID:   NodeID(nd.ID),
				Pos:  nd.Pos,
				Tile: nd.Tile,
			}
			for _, cd := range nd.Connections {
				conn := Connection{
					Target:  NodeID(cd.To),
					Control: cd.Control,
				}
				for _, ed := range cd.Events {
					conn.Events = append(conn.Events, PathEvent{
						Progress: ed.Progress,
						Action:   ed.Action,
						Context:  ed.Context,
					})
				}
				n.Conns = append(n.Conns, conn)
			}
			nodes = append(nodes, n)
		}
		return nodes, nil
	}
}
