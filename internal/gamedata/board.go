package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/boardwalk/internal/geom"
)

// EventDef defines an in-path event on a connection, loaded from YAML.
type EventDef struct {
	Progress float64 `yaml:"progress"`          // Curve progress in (0,1)
	Action   string  `yaml:"action"`            // Action id handed to the event runner
	Context  string  `yaml:"context,omitempty"` // Optional action argument
}

// ConnDef defines one directed connection out of a node.
type ConnDef struct {
	To      int        `yaml:"to"`               // Target node id
	Control geom.Vec2  `yaml:"control"`          // Bezier control point, offset from source
	Events  []EventDef `yaml:"events,omitempty"` // In-path events
}

// NodeDef defines a waypoint node, loaded from YAML.
type NodeDef struct {
	ID          int       `yaml:"id"`
	Pos         geom.Vec2 `yaml:"pos"`
	Tile        string    `yaml:"tile,omitempty"` // Tile descriptor id
	Connections []ConnDef `yaml:"connections,omitempty"`
}

// BoardDef represents a complete board layout file.
type BoardDef struct {
	Name  string    `yaml:"name"`
	Start int       `yaml:"start"` // Node the player begins on
	Nodes []NodeDef `yaml:"nodes"`
}

// Validate checks the board for dangling references and duplicate ids.
func (b *BoardDef) Validate() error {
	if len(b.Nodes) == 0 {
		return errors.New("board has no nodes")
	}
	ids := make(map[int]bool, len(b.Nodes))
	for _, n := range b.Nodes {
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %d", n.ID)
		}
		ids[n.ID] = true
	}
	if !ids[b.Start] {
		return fmt.Errorf("start node %d does not exist", b.Start)
	}
	for _, n := range b.Nodes {
		for _, c := range n.Connections {
			if !ids[c.To] {
				return fmt.Errorf("node %d connects to unknown node %d", n.ID, c.To)
			}
			for _, e := range c.Events {
				if e.Progress <= 0 || e.Progress >= 1 {
					return fmt.Errorf("node %d -> %d: event progress %v outside (0,1)", n.ID, c.To, e.Progress)
				}
			}
		}
	}
	return nil
}

// LoadBoard loads and validates a board layout from the embedded YAML file.
func LoadBoard(filename string) (*BoardDef, error) {
	def, err := LoadYAML[BoardDef](filename)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board %s: %w", filename, err)
	}
	return &def, nil
}

// MustLoadBoard loads a board layout, panicking on error.
func MustLoadBoard(filename string) *BoardDef {
	def, err := LoadBoard(filename)
	if err != nil {
		panic(err)
	}
	return def
}
