// Package session persists browser sessions: the used-city history that
// biases selection away from repeats, and the player's last difficulty
// and locale so both survive a page reload.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is one browser tab's play context, identified by an opaque
// token the client sends as a Bearer credential.
type Session struct {
	Token      string
	Locale     string
	Difficulty string
	CreatedAt  time.Time
}

// Summary is the ops view of a session.
type Summary struct {
	Token      string `json:"token"`
	Locale     string `json:"locale"`
	Difficulty string `json:"difficulty"`
	UsedCities int    `json:"usedCities"`
	CreatedAt  string `json:"createdAt"`
}

// Store is the session persistence contract. The game core is storage
// agnostic: the server uses the sqlite implementation, tests the
// in-memory one.
type Store interface {
	// Create registers a new session and returns it with a fresh token.
	Create(ctx context.Context, locale, difficulty string) (Session, error)

	// Get returns the session for token, or ErrNotFound.
	Get(ctx context.Context, token string) (Session, error)

	// SetPrefs updates the remembered difficulty and locale.
	SetPrefs(ctx context.Context, token, difficulty, locale string) error

	// UsedCities returns canonical city names in first-used order.
	UsedCities(ctx context.Context, token string) ([]string, error)

	// AddUsedCity appends a canonical name to the history. Adding a
	// name already present is a no-op (set semantics).
	AddUsedCity(ctx context.Context, token, nameEn string) error

	// Delete ends a session and clears its history.
	Delete(ctx context.Context, token string) error

	// List returns summaries of all sessions, newest first.
	List(ctx context.Context) ([]Summary, error)
}
