package game

import (
	"math/rand"
	"sort"
	"strings"
	"testing"
)

func testRules() Rules {
	return Rules{
		Catalog:       []string{"cat", "dog", "owl"},
		MaxRounds:     2,
		ScoreIncrease: 10,
	}
}

func newTestEngine(t *testing.T, rules Rules) *Engine {
	t.Helper()
	e, err := NewWithRand(rules, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewWithRand: %v", err)
	}
	return e
}

func sortedLetters(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}

func TestResetProperties(t *testing.T) {
	e := newTestEngine(t, testRules())
	st := e.Reset()

	if st.RoundCount != 1 || st.Score != 0 || st.IsGameOver || st.GuessWasWrong {
		t.Fatalf("reset state not clean: %+v", st)
	}
	if st.ScrambledWord == e.currentWord {
		t.Fatalf("scramble equals answer: %q", st.ScrambledWord)
	}
	if sortedLetters(st.ScrambledWord) != sortedLetters(e.currentWord) {
		t.Fatalf("scramble %q is not a permutation of %q", st.ScrambledWord, e.currentWord)
	}
}

func TestCorrectGuessesToGameOver(t *testing.T) {
	e := newTestEngine(t, testRules())

	e.SetPendingGuess(e.currentWord)
	st := e.SubmitGuess()
	if st.RoundCount != 2 || st.Score != 10 || st.GuessWasWrong || st.IsGameOver {
		t.Fatalf("after round 1: %+v", st)
	}

	lastScramble := st.ScrambledWord
	e.SetPendingGuess(e.currentWord)
	st = e.SubmitGuess()
	if !st.IsGameOver || st.Score != 20 {
		t.Fatalf("after final round: %+v", st)
	}
	if st.RoundCount != 2 || st.ScrambledWord != lastScramble {
		t.Fatalf("game over must not advance round or draw: %+v", st)
	}
}

func TestWrongGuess(t *testing.T) {
	e := newTestEngine(t, testRules())
	before := e.State()

	e.SetPendingGuess("zzz")
	st := e.SubmitGuess()
	if !st.GuessWasWrong {
		t.Fatal("GuessWasWrong not set")
	}
	if st.RoundCount != before.RoundCount || st.Score != before.Score || st.ScrambledWord != before.ScrambledWord {
		t.Fatalf("wrong guess mutated state: %+v", st)
	}
	if e.PendingGuess() != "" {
		t.Fatalf("pending guess not cleared: %q", e.PendingGuess())
	}
}

func TestWrongFlagClearedByNextTransition(t *testing.T) {
	e := newTestEngine(t, testRules())

	e.SetPendingGuess("nope")
	if st := e.SubmitGuess(); !st.GuessWasWrong {
		t.Fatal("GuessWasWrong not set")
	}
	e.SetPendingGuess(e.currentWord)
	if st := e.SubmitGuess(); st.GuessWasWrong {
		t.Fatal("GuessWasWrong survived a correct guess")
	}

	e.Reset()
	e.SetPendingGuess("nope")
	if st := e.SubmitGuess(); !st.GuessWasWrong {
		t.Fatal("GuessWasWrong not set")
	}
	if st := e.SkipWord(); st.GuessWasWrong {
		t.Fatal("GuessWasWrong survived a skip")
	}
}

func TestEmptyGuessIsWrong(t *testing.T) {
	e := newTestEngine(t, testRules())
	if st := e.SubmitGuess(); !st.GuessWasWrong {
		t.Fatal("empty guess must behave as a wrong guess")
	}
}

func TestCaseInsensitiveCompare(t *testing.T) {
	e := newTestEngine(t, testRules())
	e.SetPendingGuess("  " + strings.ToUpper(e.currentWord) + " ")
	if st := e.SubmitGuess(); st.Score != 10 {
		t.Fatalf("uppercase guess not accepted: %+v", st)
	}
}

func TestSkipHoldsScore(t *testing.T) {
	e := newTestEngine(t, testRules())
	first := e.State().ScrambledWord

	st := e.SkipWord()
	if st.RoundCount != 2 || st.Score != 0 {
		t.Fatalf("after skip: %+v", st)
	}
	if st.ScrambledWord == first {
		t.Fatal("skip did not draw a new word")
	}
}

func TestNoRepeatsAndPermutations(t *testing.T) {
	rules := Rules{
		Catalog: []string{"apple", "basil", "cedar", "delta", "ember",
			"fjord", "grove", "haven"},
		MaxRounds:     5,
		ScoreIncrease: 20,
	}
	e := newTestEngine(t, rules)

	seen := make(map[string]struct{})
	for {
		st := e.State()
		if _, dup := seen[e.currentWord]; dup {
			t.Fatalf("word repeated within one game: %q", e.currentWord)
		}
		seen[e.currentWord] = struct{}{}

		if st.ScrambledWord == e.currentWord {
			t.Fatalf("scramble equals answer: %q", e.currentWord)
		}
		if sortedLetters(st.ScrambledWord) != sortedLetters(e.currentWord) {
			t.Fatalf("scramble %q is not a permutation of %q", st.ScrambledWord, e.currentWord)
		}

		if e.SkipWord().IsGameOver {
			break
		}
	}
	if len(seen) != rules.MaxRounds {
		t.Fatalf("expected %d distinct words, saw %d", rules.MaxRounds, len(seen))
	}
}

func TestInertAfterGameOver(t *testing.T) {
	e := newTestEngine(t, testRules())
	e.SkipWord()
	over := e.SkipWord()
	if !over.IsGameOver {
		t.Fatalf("expected game over: %+v", over)
	}

	e.SetPendingGuess(e.currentWord)
	if st := e.SubmitGuess(); st != over {
		t.Fatalf("submit after game over mutated state: %+v", st)
	}
	if st := e.SkipWord(); st != over {
		t.Fatalf("skip after game over mutated state: %+v", st)
	}

	if st := e.Reset(); st.RoundCount != 1 || st.Score != 0 || st.IsGameOver {
		t.Fatalf("reset after game over: %+v", st)
	}
}

func TestValidateRules(t *testing.T) {
	cases := []struct {
		name  string
		rules Rules
		want  error
	}{
		{"empty catalog", Rules{MaxRounds: 1}, ErrEmptyCatalog},
		{"catalog too small", Rules{Catalog: []string{"cat", "dog"}, MaxRounds: 2}, ErrCatalogTooSmall},
		{"uniform word", Rules{Catalog: []string{"aaa", "dog"}, MaxRounds: 1}, ErrDegenerateWord},
		{"single letter word", Rules{Catalog: []string{"a", "dog"}, MaxRounds: 1}, ErrDegenerateWord},
		{"zero rounds", Rules{Catalog: []string{"cat", "dog"}, MaxRounds: 0}, ErrInvalidMaxRounds},
		{"negative increment", Rules{Catalog: []string{"cat", "dog"}, MaxRounds: 1, ScoreIncrease: -1}, ErrInvalidScoreIncrease},
		{"ok", testRules(), nil},
	}
	for _, tc := range cases {
		if err := ValidateRules(tc.rules); err != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestScramble(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, w := range []string{"ab", "cat", "aab", "scramble", "mississippi"} {
		for i := 0; i < 50; i++ {
			got := Scramble(w, rng)
			if got == w {
				t.Fatalf("Scramble(%q) returned the original word", w)
			}
			if sortedLetters(got) != sortedLetters(w) {
				t.Fatalf("Scramble(%q) = %q is not a permutation", w, got)
			}
		}
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	e := newTestEngine(t, testRules())
	ch := e.Subscribe()

	want := e.SkipWord()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("snapshot mismatch: got %+v, want %+v", got, want)
		}
	default:
		t.Fatal("no snapshot published to subscriber")
	}

	e.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Fatal("channel not closed on unsubscribe")
	}
}
