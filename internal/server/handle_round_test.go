package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestStartRoundAndState(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)

	w := env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{})
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	view := decodeRound(t, w)

	if view.Phase != "in_progress" {
		t.Errorf("phase = %q, want in_progress", view.Phase)
	}
	if view.Score != 70 {
		t.Errorf("score = %d, want 70", view.Score)
	}
	if view.City != nil {
		t.Error("city must not be revealed while the round is running")
	}
	if view.NextHintCost != 0 {
		t.Errorf("first hint cost = %d, want 0", view.NextHintCost)
	}

	w = env.do(t, http.MethodGet, "/api/round", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state: expected 200, got %d", w.Code)
	}
	got := decodeRound(t, w)
	if got.Phase != view.Phase || got.Score != view.Score {
		t.Errorf("state = %+v, want %+v", got, view)
	}
}

func TestRoundStateWithoutRound(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)

	w := env.do(t, http.MethodGet, "/api/round", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	view := decodeRound(t, w)
	if view.Phase != "not_started" {
		t.Errorf("phase = %q, want not_started", view.Phase)
	}
}

func TestStartRoundRejectsUnknownDifficulty(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)

	w := env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{Difficulty: "nightmare"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestStartRoundSelectionFailure(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)

	env.selector.err = errors.New("upstream down")
	w := env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	// Failure leaves no round behind.
	w = env.do(t, http.MethodGet, "/api/round", token, nil)
	if view := decodeRound(t, w); view.Phase != "not_started" {
		t.Errorf("phase after failed start = %q, want not_started", view.Phase)
	}

	// And the session can start normally once selection recovers.
	env.selector.err = nil
	w = env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{})
	if w.Code != http.StatusOK {
		t.Fatalf("retry start: expected 200, got %d", w.Code)
	}
}

func TestRequestsWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/round/start"},
		{http.MethodGet, "/api/round"},
		{http.MethodPost, "/api/round/hint"},
		{http.MethodPost, "/api/round/guess"},
		{http.MethodDelete, "/api/session"},
	} {
		w := env.do(t, tc.method, tc.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestHintFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)
	env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{})

	// Three free hints.
	for i := 1; i <= 3; i++ {
		w := env.do(t, http.MethodPost, "/api/round/hint", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("hint %d: expected 200, got %d: %s", i, w.Code, w.Body.String())
		}
		var resp HintResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Round.Score != 70 {
			t.Errorf("hint %d: score = %d, want 70", i, resp.Round.Score)
		}
		if resp.Round.HintCount != i {
			t.Errorf("hint %d: hintCount = %d, want %d", i, resp.Round.HintCount, i)
		}
	}

	// Fourth hint is paid.
	w := env.do(t, http.MethodPost, "/api/round/hint", token, nil)
	var resp HintResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Round.Score != 60 {
		t.Errorf("paid hint: score = %d, want 60", resp.Round.Score)
	}
	if resp.Hint != "hint 4" {
		t.Errorf("hint = %q, want %q", resp.Hint, "hint 4")
	}
}

func TestHintWithoutRound(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)

	w := env.do(t, http.MethodPost, "/api/round/hint", token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestGuessWrongThenCorrect(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)
	env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{})

	w := env.do(t, http.MethodPost, "/api/round/guess", token, GuessRequest{Guess: "Bogota"})
	if w.Code != http.StatusOK {
		t.Fatalf("wrong guess: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp GuessResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Correct {
		t.Error("wrong guess reported correct")
	}
	if resp.Round.Score != 50 {
		t.Errorf("score after wrong guess = %d, want 50", resp.Round.Score)
	}

	// Either localized or canonical name wins, case-insensitively.
	w = env.do(t, http.MethodPost, "/api/round/guess", token, GuessRequest{Guess: " lima "})
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.Correct {
		t.Fatal("correct guess not accepted")
	}
	if resp.Round.Outcome != "win" {
		t.Errorf("outcome = %q, want win", resp.Round.Outcome)
	}
	if resp.Round.City == nil || resp.Round.City.NameEn != "Lima" {
		t.Errorf("finished round must reveal the city, got %+v", resp.Round.City)
	}
}

func TestGuessAfterRoundOver(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)
	env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{})
	env.do(t, http.MethodPost, "/api/round/guess", token, GuessRequest{Guess: "Lima"})

	w := env.do(t, http.MethodPost, "/api/round/guess", token, GuessRequest{Guess: "Lima"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestEmptyGuessRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)
	env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{})

	w := env.do(t, http.MethodPost, "/api/round/guess", token, GuessRequest{Guess: "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRestartResetsRound(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)
	env.do(t, http.MethodPost, "/api/round/start", token, StartRoundRequest{Difficulty: "hard"})

	// Burn some points first.
	env.do(t, http.MethodPost, "/api/round/guess", token, GuessRequest{Guess: "Quito"})

	w := env.do(t, http.MethodPost, "/api/round/restart", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("restart: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	view := decodeRound(t, w)
	if view.Score != 70 {
		t.Errorf("score after restart = %d, want 70", view.Score)
	}
	if view.HintCount != 0 {
		t.Errorf("hintCount after restart = %d, want 0", view.HintCount)
	}
	if view.Difficulty != "hard" {
		t.Errorf("difficulty after restart = %q, want hard", view.Difficulty)
	}
}

func TestRestartWithoutRoundUsesSessionPrefs(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)

	w := env.do(t, http.MethodPost, "/api/round/restart", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	view := decodeRound(t, w)
	if view.Phase != "in_progress" {
		t.Errorf("phase = %q, want in_progress", view.Phase)
	}
	if view.Difficulty != "medium" {
		t.Errorf("difficulty = %q, want medium", view.Difficulty)
	}
}
