package server

import (
	"errors"
	"net/http"

	"github.com/iamorlov/cityguesser/internal/game"
)

type HintResponse struct {
	Hint  string    `json:"hint"`
	Round RoundView `json:"round"`
}

func handleHint(rounds *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		hint, view, err := rounds.RequestHint(r.Context(), sess.Token)
		switch {
		case errors.Is(err, ErrNoRound):
			writeError(w, http.StatusConflict, "no active round")
			return
		case errors.Is(err, ErrBusy):
			writeError(w, http.StatusConflict, "a hint request is already in progress")
			return
		case errors.Is(err, ErrStale):
			writeError(w, http.StatusConflict, "round changed, request a new hint")
			return
		case errors.Is(err, game.ErrRoundOver):
			writeError(w, http.StatusConflict, "round is over")
			return
		case errors.Is(err, game.ErrHintsExhausted):
			writeError(w, http.StatusConflict, "all hints used")
			return
		case errors.Is(err, game.ErrInsufficientScore):
			writeError(w, http.StatusConflict, "not enough points for a hint")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, HintResponse{Hint: hint, Round: view})
	}
}
