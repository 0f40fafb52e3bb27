// internal/httpserver/routes_game.go
//
// HTTP routes for adversarial hangman games:
//   - POST /game/new     → start a game of the requested (or default) length
//   - POST /game/guess   → apply one guessed letter
//   - GET  /game/{id}    → current snapshot of a game still in play
//   - GET  /leaderboard  → best won games for a word length
//   - GET  /debug/lexicon → word list statistics
//
// Games live in the session store; every guess runs under store.Update so
// concurrent requests for one game are applied in turn. History writes are
// best effort and only logged on failure.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/evilhangman/internal/game"
	"github.com/robalobadob/evilhangman/internal/history"
	"github.com/robalobadob/evilhangman/internal/lexicon"
	"github.com/robalobadob/evilhangman/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
}

type newGameReq struct {
	Length *int `json:"length"` // nil: configured default
}

// handleNewGame creates a game and records its owner (player or anonymous
// cookie) in the history database.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	length := s.cfg.WordLength
	if req.Length != nil {
		length = *req.Length
	}

	g, err := game.New(s.lex, length)
	switch {
	case errors.Is(err, lexicon.ErrInvalidLength):
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	case errors.Is(err, lexicon.ErrLengthTooLarge):
		writeError(w, http.StatusBadRequest, "length_too_large")
		return
	case errors.Is(err, game.ErrNoCandidates):
		writeError(w, http.StatusBadRequest, "no_words")
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "lexicon_unavailable")
		return
	}

	if err := s.store.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	rec := history.GameRecord{ID: g.ID, Length: length}
	if me := currentUser(r); me != nil {
		rec.PlayerID = me.ID
	} else {
		rec.AnonymousID = s.ensureAnonID(w, r)
	}
	if err := s.hist.StartGame(r.Context(), rec); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}

	writeJSON(w, http.StatusOK, g.Snapshot())
}

type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// handleGuess applies one guess. On a win it finishes the history row and
// drops the game from the session store, so later requests for it get 404.
// A guess racing the win still sees 409 game_over.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var turn game.Turn
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		var err error
		turn, err = g.ProcessGuess(req.Letter)
		return err
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, game.ErrInvalidGuess):
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}

	logger := hlog.FromRequest(r)
	logger.Debug().
		Str("gameId", turn.ID).
		Str("letter", string(turn.Letter)).
		Str("key", turn.Key).
		Int("remaining", turn.Remaining).
		Msg("guess processed")

	if turn.State == game.StateWon {
		res := history.Result{
			GameID:       turn.ID,
			Word:         turn.Pattern,
			Attempts:     turn.Attempts,
			WrongGuesses: turn.WrongGuesses,
		}
		if err := s.hist.FinishGame(r.Context(), res); err != nil {
			logger.Warn().Err(err).Str("gameId", turn.ID).Msg("finish game")
		}
		if err := s.store.Delete(r.Context(), turn.ID); err != nil {
			logger.Warn().Err(err).Str("gameId", turn.ID).Msg("drop won game")
		}
	} else if err := s.hist.RecordGuess(r.Context(), turn.ID, turn.Attempts); err != nil {
		logger.Warn().Err(err).Str("gameId", turn.ID).Msg("record guess")
	}

	writeJSON(w, http.StatusOK, turn)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		snap = g.Snapshot()
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleLeaderboard returns the top 20 won games for ?length= (default:
// the configured word length).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	length := s.cfg.WordLength
	if v := r.URL.Query().Get("length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_length")
			return
		}
		length = n
	}
	rows, err := s.hist.Leaderboard(r.Context(), length, 20)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"length": length, "rows": rows})
}

func (s *Server) handleLexiconStats(w http.ResponseWriter, r *http.Request) {
	st, err := lexicon.Analyze(s.lex)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("analyze lexicon")
		writeError(w, http.StatusInternalServerError, "lexicon_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, st)
}
