package game

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible die
	// rolls and AI fork choices. A seed of 0 means a random seed will
	// be generated.
	Seed int64

	// Board is the embedded board layout to load.
	// Empty means the default board.
	Board string
}

// DefaultBoard is the layout loaded when Config.Board is empty.
const DefaultBoard = "board.yaml"
