package server

import (
	"errors"
	"net/http"

	"github.com/iamorlov/cityguesser/internal/catalog"
	"github.com/iamorlov/cityguesser/internal/game"
)

type StartRoundRequest struct {
	Difficulty string `json:"difficulty"`
	Locale     string `json:"locale"`
}

func handleStartRound(rounds *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req StartRoundRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Difficulty == "" {
			req.Difficulty = sess.Difficulty
		}
		if req.Locale == "" {
			req.Locale = sess.Locale
		}
		d, err := game.ParseDifficulty(req.Difficulty)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown difficulty")
			return
		}

		view, err := rounds.StartRound(r.Context(), sess, d, req.Locale)
		switch {
		case errors.Is(err, ErrBusy):
			writeError(w, http.StatusConflict, "a round is already starting")
			return
		case errors.Is(err, catalog.ErrSelectFailed):
			writeError(w, http.StatusBadGateway, "city selection failed, try again")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func handleRoundState(rounds *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		view, err := rounds.State(sess.Token)
		if errors.Is(err, ErrNoRound) {
			writeJSON(w, http.StatusOK, RoundView{Phase: string(game.PhaseNotStarted), Hints: []string{}})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func handleRestart(rounds *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		view, err := rounds.Restart(r.Context(), sess)
		switch {
		case errors.Is(err, ErrBusy):
			writeError(w, http.StatusConflict, "a round is already starting")
			return
		case errors.Is(err, catalog.ErrSelectFailed):
			writeError(w, http.StatusBadGateway, "city selection failed, try again")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}
