// internal/words/words.go
//
// Word catalog and game constants for the unscramble engine.
//
// Responsibilities:
//   - Load the catalog from an environment-provided file or fall back to the
//     embedded default list.
//   - Read MAX_ROUNDS and SCORE_INCREASE from the environment.
//   - Validate the configuration once at startup so the engine's sampling
//     loops always make progress: the catalog must be strictly larger than
//     MAX_ROUNDS and every word must carry at least 2 distinct letters.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt   (one word per line, '#' comments)
//   MAX_ROUNDS=10
//   SCORE_INCREASE=20
//
// Constraints:
//   • Words are normalized to lowercase; 3–16 ASCII letters.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/hforsten/unscramble/assets"
	"github.com/hforsten/unscramble/internal/game"
)

const (
	defaultMaxRounds     = 10
	defaultScoreIncrease = 20

	minWordLen = 3
	maxWordLen = 16
)

var (
	initOnce   sync.Once
	catalog    []string
	maxRounds  int
	scoreInc   int
	initialErr error
)

// Init loads and validates the catalog and constants exactly once.
// Returns an error for configurations the engine must not run with.
func Init() error {
	initOnce.Do(func() {
		var list []string

		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			var err error
			list, err = assets.DefaultCatalog()
			if err != nil {
				initialErr = err
				return
			}
		}
		list = filterWords(list)

		maxRounds = defaultMaxRounds
		if v := os.Getenv("MAX_ROUNDS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				initialErr = fmt.Errorf("invalid MAX_ROUNDS %q: %w", v, err)
				return
			}
			maxRounds = n
		}
		scoreInc = defaultScoreIncrease
		if v := os.Getenv("SCORE_INCREASE"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				initialErr = fmt.Errorf("invalid SCORE_INCREASE %q: %w", v, err)
				return
			}
			scoreInc = n
		}

		if len(list) == 0 {
			initialErr = errors.New("words: catalog is empty")
			return
		}
		catalog = list
		if err := game.ValidateRules(Rules()); err != nil {
			initialErr = fmt.Errorf("words: %w", err)
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file, skipping blanks and
// '#' comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// filterWords lowercases and keeps only words the engine can scramble:
// 3–16 ASCII letters with at least 2 distinct characters.
func filterWords(list []string) []string {
	var out []string
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) < minWordLen || len(w) > maxWordLen || !isAlpha(w) {
			continue
		}
		if distinct(w) < 2 {
			continue
		}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// distinct counts distinct bytes in an ASCII word.
func distinct(s string) int {
	var seen [256]bool
	n := 0
	for i := 0; i < len(s); i++ {
		if !seen[s[i]] {
			seen[s[i]] = true
			n++
		}
	}
	return n
}

// Rules bundles the loaded catalog and constants for engine construction.
func Rules() game.Rules {
	return game.Rules{Catalog: catalog, MaxRounds: maxRounds, ScoreIncrease: scoreInc}
}

// Catalog returns the loaded word list (all lowercase).
func Catalog() []string { return catalog }

// MaxRounds returns the configured rounds-per-game limit.
func MaxRounds() int { return maxRounds }

// ScoreIncrease returns the points awarded per correct guess.
func ScoreIncrease() int { return scoreInc }

// Stats returns the catalog size. Exposed on /debug/words.
func Stats() int { return len(catalog) }
