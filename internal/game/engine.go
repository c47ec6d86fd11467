// internal/game/engine.go
//
// Core engine for a single unscramble session.
// Responsibilities:
//   - Draw catalog words without repetition across one game.
//   - Scramble each word into an anagram that visibly differs from it.
//   - Apply guesses (case-insensitive), skips, and resets.
//   - Track round/score progression up to the round limit.
//
// Notes:
//   - The catalog and constants come from the words package (or any caller
//     supplying Rules); the engine never reads configuration itself.
//   - Every mutating operation replaces the State snapshot wholesale and
//     pushes it to subscribers (see notify.go).
//   - Operations are mutex-serialized: the engine itself is synchronous, but
//     HTTP handlers share sessions across requests.

package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Retry bounds for the two sampling loops. With validated Rules both
// fallbacks below keep the draw and shuffle invariants, so neither loop
// can spin forever on a bad catalog.
const (
	maxDrawAttempts    = 64
	maxShuffleAttempts = 16
)

// Engine owns all state for one game session. Create it once per session
// with New; Reset reinitializes it in place for a fresh game.
type Engine struct {
	mu    sync.Mutex
	rules Rules
	rng   Rand

	currentWord  string              // unscrambled answer for the active round
	usedWords    map[string]struct{} // words already presented this game
	pendingGuess string              // player's in-progress input

	state State

	subs []chan State
}

// New validates rules, seeds a time-based RNG, and returns an engine with
// the first round already drawn.
func New(rules Rules) (*Engine, error) {
	return NewWithRand(rules, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand is New with an injected randomness source.
// Used by tests and by anything needing reproducible draws.
func NewWithRand(rules Rules, rng Rand) (*Engine, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	catalog := make([]string, len(rules.Catalog))
	for i, w := range rules.Catalog {
		catalog[i] = strings.ToLower(w)
	}
	rules.Catalog = catalog

	e := &Engine{rules: rules, rng: rng}
	e.Reset()
	return e, nil
}

// ValidateRules rejects configurations under which the draw or shuffle
// sampling could not make progress: an empty catalog, a catalog not strictly
// larger than MaxRounds, or words without two distinct letters.
func ValidateRules(r Rules) error {
	if r.MaxRounds < 1 {
		return ErrInvalidMaxRounds
	}
	if r.ScoreIncrease < 0 {
		return ErrInvalidScoreIncrease
	}
	if len(r.Catalog) == 0 {
		return ErrEmptyCatalog
	}
	if len(r.Catalog) <= r.MaxRounds {
		return ErrCatalogTooSmall
	}
	for _, w := range r.Catalog {
		if distinctLetters(w) < 2 {
			return ErrDegenerateWord
		}
	}
	return nil
}

// Reset starts a fresh game: clears used words and the pending guess, draws
// a new first word, and publishes a round-1 snapshot. Callable at any point,
// including mid-game or after game over.
func (e *Engine) Reset() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.usedWords = make(map[string]struct{}, e.rules.MaxRounds)
	e.pendingGuess = ""
	scrambled := e.drawWord()
	e.state = State{
		ScrambledWord: scrambled,
		RoundCount:    1,
	}
	e.publish()
	return e.state
}

// SetPendingGuess stores the player's in-progress input. It accepts any
// string and does not touch the published State.
func (e *Engine) SetPendingGuess(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingGuess = text
}

// PendingGuess returns the current in-progress input.
func (e *Engine) PendingGuess() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingGuess
}

// State returns the current snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SubmitGuess consumes the pending guess and compares it, case-insensitively,
// against the current word.
//
//   - Match: score grows by ScoreIncrease and the game advances a round.
//   - No match: the snapshot is republished with GuessWasWrong set and
//     round, score, and word untouched.
//
// The pending guess is cleared on both branches. After game over the engine
// is inert: the call clears the pending guess but changes nothing else.
func (e *Engine) SubmitGuess() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	guess := strings.ToLower(strings.TrimSpace(e.pendingGuess))
	e.pendingGuess = ""

	if e.state.IsGameOver {
		return e.state
	}
	if guess != e.currentWord {
		e.state.GuessWasWrong = true
		e.publish()
		return e.state
	}
	e.advanceRound(e.state.Score + e.rules.ScoreIncrease)
	return e.state
}

// SkipWord advances to the next round with the score held constant.
// Permitted even if no guess was attempted; inert after game over.
func (e *Engine) SkipWord() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pendingGuess = ""
	if e.state.IsGameOver {
		return e.state
	}
	e.advanceRound(e.state.Score)
	return e.state
}

// advanceRound finishes the active round. If it was the last one the game
// ends with the round counter and scramble left as-is; otherwise a new word
// is drawn and the counter moves on. GuessWasWrong clears on either branch.
// Callers hold e.mu.
func (e *Engine) advanceRound(newScore int) {
	if len(e.usedWords) == e.rules.MaxRounds {
		e.state = State{
			ScrambledWord: e.state.ScrambledWord,
			RoundCount:    e.state.RoundCount,
			Score:         newScore,
			IsGameOver:    true,
		}
	} else {
		scrambled := e.drawWord()
		e.state = State{
			ScrambledWord: scrambled,
			RoundCount:    e.state.RoundCount + 1,
			Score:         newScore,
		}
	}
	e.publish()
}

// drawWord picks an unused catalog word, marks it used, sets it as the
// current answer, and returns its scrambled form. Rejection sampling is
// bounded; past the bound it falls back to a uniform pick over the words
// not yet used (ValidateRules guarantees at least one remains).
// Callers hold e.mu.
func (e *Engine) drawWord() string {
	word := ""
	for i := 0; i < maxDrawAttempts; i++ {
		w := e.rules.Catalog[e.rng.Intn(len(e.rules.Catalog))]
		if _, used := e.usedWords[w]; !used {
			word = w
			break
		}
	}
	if word == "" {
		var unused []string
		for _, w := range e.rules.Catalog {
			if _, used := e.usedWords[w]; !used {
				unused = append(unused, w)
			}
		}
		word = unused[e.rng.Intn(len(unused))]
	}

	e.usedWords[word] = struct{}{}
	e.currentWord = word
	return Scramble(word, e.rng)
}

// Scramble returns a random permutation of word that differs from it.
// Fisher-Yates with bounded reshuffles; if every attempt reproduces the
// original, two differing letters are swapped instead, which always yields
// a distinct permutation for words with at least 2 distinct letters.
func Scramble(word string, rng Rand) string {
	runes := []rune(word)
	for i := 0; i < maxShuffleAttempts; i++ {
		for j := len(runes) - 1; j > 0; j-- {
			k := rng.Intn(j + 1)
			runes[j], runes[k] = runes[k], runes[j]
		}
		if s := string(runes); s != word {
			return s
		}
	}
	for i := 0; i < len(runes); i++ {
		for j := i + 1; j < len(runes); j++ {
			if runes[i] != runes[j] {
				runes[i], runes[j] = runes[j], runes[i]
				return string(runes)
			}
		}
	}
	return word // unreachable for validated words
}

// distinctLetters counts distinct runes in w.
func distinctLetters(w string) int {
	seen := make(map[rune]struct{}, len(w))
	for _, r := range w {
		seen[r] = struct{}{}
	}
	return len(seen)
}
