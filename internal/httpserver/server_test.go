package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hforsten/unscramble/internal/store"
	"github.com/hforsten/unscramble/internal/words"
)

// newTestServer wires a Server against an in-memory SQLite database with the
// real schema applied.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	if err := words.Init(); err != nil {
		t.Fatalf("words.Init: %v", err)
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// The pool must stay on one connection or each new conn gets its own
	// empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../sql/001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	srv := New(store.NewMemoryStore(), db)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestGameFlow(t *testing.T) {
	ts := newTestServer(t)

	var created stateRes
	postJSON(t, ts.URL+"/game/new", map[string]any{}, &created)
	if created.GameID == "" {
		t.Fatal("no gameId returned")
	}
	if created.State.RoundCount != 1 || created.State.Score != 0 || created.State.IsGameOver {
		t.Fatalf("fresh game state: %+v", created.State)
	}
	if created.State.ScrambledWord == "" {
		t.Fatal("no scrambled word in fresh game")
	}

	// A wrong guess flags the snapshot and advances nothing.
	var wrong stateRes
	postJSON(t, ts.URL+"/game/guess", guessReq{GameID: created.GameID, Guess: "zzzzzz"}, &wrong)
	if !wrong.State.GuessWasWrong {
		t.Fatalf("wrong guess not flagged: %+v", wrong.State)
	}
	if wrong.State.RoundCount != 1 || wrong.State.Score != 0 ||
		wrong.State.ScrambledWord != created.State.ScrambledWord {
		t.Fatalf("wrong guess advanced state: %+v", wrong.State)
	}

	// The pending guess is consumed by submission.
	var got getStateRes
	resp, err := http.Get(ts.URL + "/game/" + created.GameID)
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if got.PendingGuess != "" {
		t.Fatalf("pending guess not cleared: %q", got.PendingGuess)
	}

	// Skip advances the round with the score held.
	var skipped stateRes
	postJSON(t, ts.URL+"/game/skip", skipReq{GameID: created.GameID}, &skipped)
	if skipped.State.RoundCount != 2 || skipped.State.Score != 0 {
		t.Fatalf("after skip: %+v", skipped.State)
	}
	if skipped.State.ScrambledWord == created.State.ScrambledWord {
		t.Fatal("skip did not draw a new word")
	}

	// Reset returns to a fresh round 1.
	var reset stateRes
	postJSON(t, ts.URL+"/game/reset", skipReq{GameID: created.GameID}, &reset)
	if reset.State.RoundCount != 1 || reset.State.Score != 0 || reset.State.IsGameOver {
		t.Fatalf("after reset: %+v", reset.State)
	}
}

func TestGuessUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/game/guess", guessReq{GameID: "missing", Guess: "cat"}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSignupAndStats(t *testing.T) {
	ts := newTestServer(t)

	client := ts.Client()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client.Jar = jar

	b, _ := json.Marshal(map[string]string{"username": "player_one", "password": "longenough1"})
	resp, err := client.Post(ts.URL+"/auth/signup", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup status = %d", resp.StatusCode)
	}

	resp, err = client.Get(ts.URL + "/stats/me")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d", resp.StatusCode)
	}
	var stats struct {
		GamesPlayed int `json:"gamesPlayed"`
		TotalScore  int `json:"totalScore"`
		BestScore   int `json:"bestScore"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.GamesPlayed != 0 || stats.TotalScore != 0 || stats.BestScore != 0 {
		t.Fatalf("fresh user stats: %+v", stats)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
}
