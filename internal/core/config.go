package core

// RuntimeConfig contains configuration passed to simulations by the platform.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     uint32 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     13,
	}
}

// GameState is the summary of a running simulation shown by the platform.
type GameState struct {
	Score    int
	Lives    int
	Level    int
	GameOver bool
	Paused   bool
}
