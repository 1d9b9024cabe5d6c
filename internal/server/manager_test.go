package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamorlov/cityguesser/internal/game"
	"github.com/iamorlov/cityguesser/internal/session"
)

// blockingGenerator parks NextHint until released, so tests can observe
// the in-flight window.
type blockingGenerator struct {
	entered chan struct{}
	release chan struct{}
	hint    string
}

func (b *blockingGenerator) NextHint(ctx context.Context, _ int, _ game.City, _ []string, _ string) (string, error) {
	b.entered <- struct{}{}
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return b.hint, nil
}

func newTestManager(t *testing.T, gen interface {
	NextHint(ctx context.Context, index int, city game.City, previous []string, locale string) (string, error)
}) (*Manager, session.Session) {
	t.Helper()
	ctx := context.Background()

	store := session.NewMemoryStore()
	sess, err := store.Create(ctx, "en", "medium")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	sel := &fakeSelector{city: game.City{Name: "Лима", NameEn: "Lima", Lat: -12.05, Lng: -77.04}}
	m := NewManager(sel, gen, store, NewBroker(), testLogger, game.DefaultRules())
	return m, sess
}

func TestHintRequestsAreSequential(t *testing.T) {
	ctx := context.Background()
	gen := &blockingGenerator{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		hint:    "slow hint",
	}
	m, sess := newTestManager(t, gen)

	if _, err := m.StartRound(ctx, sess, game.DifficultyMedium, "en"); err != nil {
		t.Fatalf("start: %v", err)
	}

	type result struct {
		hint string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		hint, _, err := m.RequestHint(ctx, sess.Token)
		done <- result{hint, err}
	}()

	<-gen.entered

	// A second request while the first is in flight is rejected.
	if _, _, err := m.RequestHint(ctx, sess.Token); !errors.Is(err, ErrBusy) {
		t.Fatalf("concurrent hint: err = %v, want ErrBusy", err)
	}

	close(gen.release)
	res := <-done
	if res.err != nil {
		t.Fatalf("first hint: %v", res.err)
	}
	if res.hint != "slow hint" {
		t.Errorf("hint = %q, want %q", res.hint, "slow hint")
	}

	view, err := m.State(sess.Token)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if view.HintCount != 1 {
		t.Errorf("hintCount = %d, want 1", view.HintCount)
	}
}

func TestStaleHintDiscardedAfterRestart(t *testing.T) {
	ctx := context.Background()
	gen := &blockingGenerator{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		hint:    "hint for the old round",
	}
	m, sess := newTestManager(t, gen)

	if _, err := m.StartRound(ctx, sess, game.DifficultyMedium, "en"); err != nil {
		t.Fatalf("start: %v", err)
	}

	errs := make(chan error, 1)
	go func() {
		_, _, err := m.RequestHint(ctx, sess.Token)
		errs <- err
	}()

	<-gen.entered

	// Replace the round while the hint is still in flight.
	if _, err := m.Restart(ctx, sess); err != nil {
		t.Fatalf("restart: %v", err)
	}

	close(gen.release)
	if err := <-errs; !errors.Is(err, ErrStale) {
		t.Fatalf("stale hint: err = %v, want ErrStale", err)
	}

	// The fresh round is untouched by the discarded completion.
	view, err := m.State(sess.Token)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if view.HintCount != 0 {
		t.Errorf("hintCount = %d, want 0", view.HintCount)
	}
	if view.Score != 70 {
		t.Errorf("score = %d, want 70", view.Score)
	}
}

func TestStateReportsBusyDuringHint(t *testing.T) {
	ctx := context.Background()
	gen := &blockingGenerator{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		hint:    "h",
	}
	m, sess := newTestManager(t, gen)

	if _, err := m.StartRound(ctx, sess, game.DifficultyMedium, "en"); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		m.RequestHint(ctx, sess.Token)
		close(done)
	}()

	<-gen.entered

	view, err := m.State(sess.Token)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !view.Busy {
		t.Error("busy = false during in-flight hint, want true")
	}

	close(gen.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hint request did not finish")
	}

	view, _ = m.State(sess.Token)
	if view.Busy {
		t.Error("busy = true after hint resolved, want false")
	}
}

func TestDropForgetsRound(t *testing.T) {
	ctx := context.Background()
	m, sess := newTestManager(t, &fakeGenerator{})

	if _, err := m.StartRound(ctx, sess, game.DifficultyMedium, "en"); err != nil {
		t.Fatalf("start: %v", err)
	}

	m.Drop(sess.Token)

	if _, err := m.State(sess.Token); !errors.Is(err, ErrNoRound) {
		t.Fatalf("state after drop: err = %v, want ErrNoRound", err)
	}
}
