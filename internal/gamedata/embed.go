// Package gamedata provides embedded board data and utilities for
// loading it.
package gamedata

import "embed"

// dataFS embeds the tile definitions and board layouts from this
// directory at build time.
//
//go:embed *.json *.yaml
var dataFS embed.FS
