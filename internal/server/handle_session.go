package server

import (
	"net/http"

	"github.com/iamorlov/cityguesser/internal/game"
	"github.com/iamorlov/cityguesser/internal/session"
)

type CreateSessionRequest struct {
	Locale     string `json:"locale"`
	Difficulty string `json:"difficulty"`
}

type CreateSessionResponse struct {
	Token      string `json:"token"`
	Locale     string `json:"locale"`
	Difficulty string `json:"difficulty"`
}

func handleCreateSession(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Locale == "" {
			req.Locale = "en"
		}
		if req.Difficulty == "" {
			req.Difficulty = string(game.DifficultyMedium)
		}
		if _, err := game.ParseDifficulty(req.Difficulty); err != nil {
			writeError(w, http.StatusBadRequest, "unknown difficulty")
			return
		}

		sess, err := store.Create(r.Context(), req.Locale, req.Difficulty)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, CreateSessionResponse{
			Token:      sess.Token,
			Locale:     sess.Locale,
			Difficulty: sess.Difficulty,
		})
	}
}

func handleEndSession(store session.Store, rounds *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		rounds.Drop(sess.Token)
		if err := store.Delete(r.Context(), sess.Token); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
