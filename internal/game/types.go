// internal/game/types.go
//
// Core type definitions for the unscramble game engine.
// Defines:
//   - State: immutable snapshot of one game published to the presentation layer.
//   - Rules: the word catalog and scoring constants injected by the caller.
//   - Rand: the randomness source used for word draws and shuffles.

package game

// State is an immutable snapshot of a game in progress. A new value is
// published on every mutating operation; callers may share it freely.
type State struct {
	ScrambledWord string `json:"scrambledWord"` // Current puzzle shown to the player.
	RoundCount    int    `json:"roundCount"`    // 1-based index of the current round.
	Score         int    `json:"score"`         // Cumulative score.
	GuessWasWrong bool   `json:"guessWasWrong"` // Set only on the snapshot right after a failed guess.
	IsGameOver    bool   `json:"isGameOver"`    // True once the round limit is reached.
}

// Rules carries everything the engine needs from the word source:
// the candidate catalog and the two tuning constants.
type Rules struct {
	Catalog       []string // Candidate answer words.
	MaxRounds     int      // Rounds per game (must be < len(Catalog)).
	ScoreIncrease int      // Points awarded per correct guess.
}

// Rand is the randomness source for draws and shuffles.
// *math/rand.Rand satisfies it; tests inject deterministic sequences.
type Rand interface {
	Intn(n int) int
}
