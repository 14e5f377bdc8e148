package gamedata

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// TileKind names what a tile does when an actor lands on it.
type TileKind string

const (
	// TileStart is the board's starting tile; landing on it does nothing.
	TileStart TileKind = "start"
	// TileGain grants the landing actor Amount coins.
	TileGain TileKind = "gain"
	// TileLose takes up to Amount coins from the landing actor.
	TileLose TileKind = "lose"
	// TileTeleport relocates the landing actor to TargetNode.
	TileTeleport TileKind = "teleport"
	// TileEvent raises a confirmation the player has to acknowledge.
	TileEvent TileKind = "event"
)

// TileDef defines a tile effect descriptor loaded from JSON.
type TileDef struct {
	ID            string   `json:"id"`            // Unique identifier (e.g., "gold_small")
	Name          string   `json:"name"`          // Display name (e.g., "Gold Pouch")
	Kind          TileKind `json:"kind"`          // What the tile does
	Glyph         string   `json:"glyph"`         // Single character for rendering
	Color         string   `json:"color"`         // Hex color code (e.g., "#FFD700")
	TriggerOnPass bool     `json:"triggerOnPass"` // Fire even when the actor only passes over
	Amount        int      `json:"amount"`        // Coins gained/lost, for gain/lose tiles
	TargetNode    int      `json:"targetNode"`    // Destination node id, for teleport tiles
}

// GlyphRune returns the glyph as a rune for rendering.
func (t *TileDef) GlyphRune() rune {
	if len(t.Glyph) == 0 {
		return '?'
	}
	return rune(t.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (t *TileDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(t.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// TilesFile represents the structure of tiles.json.
type TilesFile struct {
	Tiles []TileDef `json:"tiles"`
}

// LoadTiles loads tile definitions from the embedded tiles.json file.
func LoadTiles() ([]TileDef, error) {
	file, err := Load[TilesFile]("tiles.json")
	if err != nil {
		return nil, err
	}
	return file.Tiles, nil
}

// TileRegistry holds loaded tile definitions and provides id lookups.
type TileRegistry struct {
	byID map[string]*TileDef
	all  []TileDef
}

// NewTileRegistry creates a registry from loaded tile definitions.
func NewTileRegistry(tiles []TileDef) *TileRegistry {
	registry := &TileRegistry{
		byID: make(map[string]*TileDef, len(tiles)),
		all:  tiles,
	}
	for i := range tiles {
		registry.byID[tiles[i].ID] = &tiles[i]
	}
	return registry
}

// LoadTileRegistry loads and creates a registry from the embedded tiles.json.
func LoadTileRegistry() (*TileRegistry, error) {
	tiles, err := LoadTiles()
	if err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, errors.New("no tiles loaded from tiles.json")
	}
	return NewTileRegistry(tiles), nil
}

// MustLoadTileRegistry loads a registry, panicking on error.
func MustLoadTileRegistry() *TileRegistry {
	registry, err := LoadTileRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the tile definition with the given ID, or nil if not found.
func (r *TileRegistry) GetByID(id string) *TileDef {
	return r.byID[id]
}

// All returns all tile definitions.
func (r *TileRegistry) All() []TileDef {
	return r.all
}

// Count returns the number of tile types in the registry.
func (r *TileRegistry) Count() int {
	return len(r.all)
}
