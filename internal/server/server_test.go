package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iamorlov/cityguesser/internal/database"
	"github.com/iamorlov/cityguesser/internal/game"
	"github.com/iamorlov/cityguesser/internal/migrations"
	"github.com/iamorlov/cityguesser/internal/session"
)

// fakeSelector hands out a fixed city, or fails.
type fakeSelector struct {
	city game.City
	err  error
}

func (f *fakeSelector) SelectCity(_ context.Context, _ string, _ game.Difficulty, _ string) (game.City, error) {
	return f.city, f.err
}

// fakeGenerator produces predictable hints and records calls.
type fakeGenerator struct {
	calls int
	err   error
}

func (f *fakeGenerator) NextHint(_ context.Context, index int, _ game.City, previous []string, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if index != len(previous)+1 {
		return "", fmt.Errorf("index %d out of order", index)
	}
	return fmt.Sprintf("hint %d", index), nil
}

type fakeReverser struct {
	city string
	err  error
}

func (f *fakeReverser) CityAt(_ context.Context, _, _ float64, _ string) (string, error) {
	return f.city, f.err
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type testEnv struct {
	router   *chi.Mux
	db       *sql.DB
	sessions session.Store
	selector *fakeSelector
	geocoder *fakeReverser
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	sel := &fakeSelector{city: game.City{Name: "Лима", NameEn: "Lima", Lat: -12.05, Lng: -77.04}}
	rev := &fakeReverser{city: "Lima"}
	sessions := session.NewSQLiteStore(db)

	r := chi.NewRouter()
	addRoutes(r, testLogger, Deps{
		DB:       db,
		Sessions: sessions,
		Selector: sel,
		Hints:    &fakeGenerator{},
		Geocoder: rev,
		Rules:    game.DefaultRules(),
	})

	return &testEnv{router: r, db: db, sessions: sessions, selector: sel, geocoder: rev}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// newSession creates a session over the API and returns its token.
func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/session", "", CreateSessionRequest{Locale: "en", Difficulty: "medium"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp CreateSessionResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Token == "" {
		t.Fatal("create session: empty token")
	}
	return resp.Token
}

func decodeRound(t *testing.T, w *httptest.ResponseRecorder) RoundView {
	t.Helper()
	var v RoundView
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode round view: %v", err)
	}
	return v
}
