package words

import (
	"testing"

	"github.com/hforsten/unscramble/assets"
	"github.com/hforsten/unscramble/internal/game"
)

func TestFilterWords(t *testing.T) {
	// Mixed case and padding survive; too-short, uniform-letter,
	// non-alphabetic, non-ASCII, and over-long entries are dropped.
	in := []string{
		"  Apple ",
		"ok",
		"aaa",
		"don't",
		"überlang",
		"supercalifragilistic",
		"ZEBRA",
	}
	got := filterWords(in)
	want := []string{"apple", "zebra"}
	if len(got) != len(want) {
		t.Fatalf("filterWords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("filterWords = %v, want %v", got, want)
		}
	}
}

func TestDefaultCatalogSurvivesFiltering(t *testing.T) {
	raw, err := assets.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	filtered := filterWords(raw)
	if len(filtered) != len(raw) {
		t.Fatalf("embedded catalog has %d invalid words", len(raw)-len(filtered))
	}
	rules := game.Rules{Catalog: filtered, MaxRounds: defaultMaxRounds, ScoreIncrease: defaultScoreIncrease}
	if err := game.ValidateRules(rules); err != nil {
		t.Fatalf("embedded catalog fails validation: %v", err)
	}
}

func TestInitDefaults(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if MaxRounds() != defaultMaxRounds || ScoreIncrease() != defaultScoreIncrease {
		t.Fatalf("constants: rounds=%d increase=%d", MaxRounds(), ScoreIncrease())
	}
	if len(Catalog()) <= MaxRounds() {
		t.Fatalf("catalog size %d not larger than MaxRounds %d", len(Catalog()), MaxRounds())
	}
	if err := game.ValidateRules(Rules()); err != nil {
		t.Fatalf("loaded rules invalid: %v", err)
	}
}
