package core

// GameState represents the current state of a game as seen by the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the round has ended
	Paused   bool // Whether the game is paused
	Exited   bool // Whether the round was abandoned
}

// StepResult is returned after each frame.
type StepResult struct {
	State   GameState
	Stepped bool // False when the frame was skipped
}
