package gamedata

import (
	"strings"
	"testing"
)

func TestLoadTileRegistry(t *testing.T) {
	registry, err := LoadTileRegistry()
	if err != nil {
		t.Fatalf("LoadTileRegistry() error = %v", err)
	}
	if registry.Count() == 0 {
		t.Fatal("registry is empty")
	}

	gold := registry.GetByID("gold_small")
	if gold == nil {
		t.Fatal("gold_small not found")
	}
	if gold.Kind != TileGain {
		t.Errorf("gold_small kind = %q, want %q", gold.Kind, TileGain)
	}
	if gold.Amount <= 0 {
		t.Errorf("gold_small amount = %d, want positive", gold.Amount)
	}

	warp := registry.GetByID("warp")
	if warp == nil {
		t.Fatal("warp not found")
	}
	if warp.Kind != TileTeleport {
		t.Errorf("warp kind = %q, want %q", warp.Kind, TileTeleport)
	}

	if registry.GetByID("no_such_tile") != nil {
		t.Error("GetByID returned a tile for an unknown id")
	}
}

func TestLoadBoard(t *testing.T) {
	def, err := LoadBoard("board.yaml")
	if err != nil {
		t.Fatalf("LoadBoard() error = %v", err)
	}
	if def.Name == "" {
		t.Error("board has no name")
	}
	if len(def.Nodes) == 0 {
		t.Fatal("board has no nodes")
	}

	// Every tile reference on the board must resolve in the registry.
	registry := MustLoadTileRegistry()
	for _, n := range def.Nodes {
		if n.Tile == "" {
			continue
		}
		if registry.GetByID(n.Tile) == nil {
			t.Errorf("node %d references unknown tile %q", n.ID, n.Tile)
		}
	}
}

func TestBoardValidateRejectsDuplicateIDs(t *testing.T) {
	def := &BoardDef{
		Start: 0,
		Nodes: []NodeDef{{ID: 0}, {ID: 0}},
	}
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("Validate() = %v, want duplicate id error", err)
	}
}

func TestBoardValidateRejectsMissingStart(t *testing.T) {
	def := &BoardDef{
		Start: 9,
		Nodes: []NodeDef{{ID: 0}},
	}
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "start node") {
		t.Errorf("Validate() = %v, want missing start error", err)
	}
}

func TestBoardValidateRejectsDanglingConnection(t *testing.T) {
	def := &BoardDef{
		Start: 0,
		Nodes: []NodeDef{
			{ID: 0, Connections: []ConnDef{{To: 5}}},
		},
	}
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown node") {
		t.Errorf("Validate() = %v, want dangling connection error", err)
	}
}

func TestBoardValidateRejectsOutOfRangeEventProgress(t *testing.T) {
	for _, progress := range []float64{0, 1, -0.5, 1.5} {
		def := &BoardDef{
			Start: 0,
			Nodes: []NodeDef{
				{ID: 0, Connections: []ConnDef{{To: 1, Events: []EventDef{{Progress: progress, Action: "chime"}}}}},
				{ID: 1},
			},
		}
		if def.Validate() == nil {
			t.Errorf("Validate() accepted event progress %v", progress)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"#FFD700", false},
		{"#000000", false},
		{"FFD700", false},
		{"#GGGGGG", true},
		{"#FFF", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := ParseHexColor(tt.in)
		if gotErr := err != nil; gotErr != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestTileDefGlyphRune(t *testing.T) {
	tile := &TileDef{Glyph: "$"}
	if got := tile.GlyphRune(); got != '$' {
		t.Errorf("GlyphRune() = %q, want '$'", got)
	}
	empty := &TileDef{}
	if got := empty.GlyphRune(); got != '?' {
		t.Errorf("GlyphRune() on empty glyph = %q, want '?'", got)
	}
}
