// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Scramble" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's scramble (creates or reuses session)
//   - POST /daily/guess       → submit an unscramble attempt for today's word
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can solve once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on solve.
// Deterministic word selection is based on date + salt; the scrambled form is
// drawn per session so replaying the page shows the same puzzle.

package httpserver

import (
	"encoding/json"
	mrand "math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hforsten/unscramble/internal/daily"
	"github.com/hforsten/unscramble/internal/game"
	"github.com/hforsten/unscramble/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily scramble.
type dailySession struct {
	GameID    string
	UserID    string
	Date      string
	WordIndex int
	Answer    string
	Scrambled string
	Start     time.Time
	Attempts  int
	Finished  bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key, deterministic word index, and answer.
func (d *dailyServer) dateKeyNow() (date string, idx int, answer string) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	catalog := words.Catalog()
	if len(catalog) == 0 {
		return date, 0, ""
	}
	idx = daily.WordIndex(now, d.salt, len(catalog))
	return date, idx, catalog[idx]
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// newRes is returned by /daily/new.
type newRes struct {
	GameID    string `json:"gameId"`
	Date      string `json:"date"`
	Scrambled string `json:"scrambled"`
	Played    bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return GameID + puzzle.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	date, idx, answer := d.dateKeyNow()
	if answer == "" {
		http.Error(w, "no catalog", http.StatusInternalServerError)
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(newRes{GameID: "", Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(newRes{GameID: sess.GameID, Date: date, Scrambled: sess.Scrambled, Played: false})
		return
	}
	rng := mrand.New(mrand.NewSource(time.Now().UnixNano()))
	sess := &dailySession{
		GameID:    genID(),
		UserID:    uid,
		Date:      date,
		WordIndex: idx,
		Answer:    strings.ToLower(answer),
		Scrambled: game.Scramble(strings.ToLower(answer), rng),
		Start:     time.Now(),
	}
	d.sessions[key] = sess
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(newRes{GameID: sess.GameID, Date: date, Scrambled: sess.Scrambled, Played: false})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Correct  bool   `json:"correct"`
	State    string `json:"state"` // in_progress | solved | locked
	Attempts int    `json:"attempts"`
	Score    int    `json:"score"`
}

// handleGuess applies an unscramble attempt to today's daily session.
// - Ensures valid GameID and word.
// - Rejects if no session or session finished.
// - Compares the full word case-insensitively against the answer.
// - Updates session state; persists result to DB on solve.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	p.Word = strings.ToLower(strings.TrimSpace(p.Word))
	if p.GameID == "" || p.Word == "" {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date, _, _ := d.dateKeyNow()

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.GameID != p.GameID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if sess.Finished {
		_ = json.NewEncoder(w).Encode(dailyGuessRes{State: "locked", Attempts: sess.Attempts})
		return
	}

	// Update in-memory session.
	d.mu.Lock()
	sess.Attempts++
	solved := p.Word == sess.Answer
	if solved {
		sess.Finished = true
	}
	attempts := sess.Attempts
	d.mu.Unlock()

	// Persist and return.
	if solved {
		score := words.ScoreIncrease()
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, WordIndex: sess.WordIndex,
			Attempts: attempts, Score: score, ElapsedMs: elapsed,
		})
		_ = json.NewEncoder(w).Encode(dailyGuessRes{Correct: true, State: "solved", Attempts: attempts, Score: score})
		return
	}
	_ = json.NewEncoder(w).Encode(dailyGuessRes{Correct: false, State: "in_progress", Attempts: attempts})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.dateKeyNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
