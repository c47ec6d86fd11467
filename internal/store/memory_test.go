package store

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/hforsten/unscramble/internal/game"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	eng, err := game.NewWithRand(game.Rules{
		Catalog:       []string{"cat", "dog", "owl"},
		MaxRounds:     2,
		ScoreIncrease: 10,
	}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	st := NewMemoryStore()
	sess := NewSession(eng)
	if sess.ID == "" {
		t.Fatal("session without ID")
	}
	if err := st.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := st.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Engine != eng {
		t.Fatal("Get returned a different engine")
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	st := NewMemoryStore()
	if _, err := st.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
