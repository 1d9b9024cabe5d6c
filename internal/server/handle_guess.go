package server

import (
	"errors"
	"net/http"

	"github.com/iamorlov/cityguesser/internal/game"
)

type GuessRequest struct {
	Guess string `json:"guess"`
}

type GuessResponse struct {
	Correct bool      `json:"correct"`
	Round   RoundView `json:"round"`
}

func handleGuess(rounds *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		correct, view, err := rounds.SubmitGuess(r.Context(), sess.Token, req.Guess)
		switch {
		case errors.Is(err, ErrNoRound):
			writeError(w, http.StatusConflict, "no active round")
			return
		case errors.Is(err, game.ErrEmptyGuess):
			writeError(w, http.StatusBadRequest, "guess is required")
			return
		case errors.Is(err, game.ErrRoundOver):
			writeError(w, http.StatusConflict, "round is over")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, GuessResponse{Correct: correct, Round: view})
	}
}
