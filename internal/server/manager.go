package server

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/iamorlov/cityguesser/internal/game"
	"github.com/iamorlov/cityguesser/internal/hints"
	"github.com/iamorlov/cityguesser/internal/session"
)

var (
	// ErrNoRound means the session has not started a round yet.
	ErrNoRound = errors.New("no active round")
	// ErrBusy means a network-bound operation for this round is still
	// in flight; the UI keeps its busy flag up and retries later.
	ErrBusy = errors.New("request already in progress")
	// ErrStale marks an async completion that arrived after the round
	// it belonged to was replaced or finished.
	ErrStale = errors.New("round changed while the request was in flight")
)

// Manager owns the live rounds, one per session token. Rounds are
// deliberately ephemeral: only the used-city history and preferences
// outlive the process, in the session store.
type Manager struct {
	selector CitySelector
	hints    hints.Generator
	sessions session.Store
	broker   *Broker
	logger   *slog.Logger
	rules    game.Rules

	mu     sync.Mutex
	rounds map[string]*liveRound
}

// liveRound pairs the state machine with the guards the event-driven
// model needs: per-operation busy flags so hint requests stay strictly
// sequential, and an epoch so completions for a replaced round are
// discarded instead of applied.
type liveRound struct {
	round     *game.Round
	epoch     uint64
	hintBusy  bool
	startBusy bool
}

func NewManager(selector CitySelector, gen hints.Generator, sessions session.Store, broker *Broker, logger *slog.Logger, rules game.Rules) *Manager {
	return &Manager{
		selector: selector,
		hints:    gen,
		sessions: sessions,
		broker:   broker,
		logger:   logger,
		rules:    rules,
		rounds:   make(map[string]*liveRound),
	}
}

// RoundView is the wire representation of round state. The target city
// is only revealed once the round is over.
type RoundView struct {
	Phase        string     `json:"phase"`
	Difficulty   string     `json:"difficulty"`
	Locale       string     `json:"locale"`
	Score        int        `json:"score"`
	HintCount    int        `json:"hintCount"`
	Hints        []string   `json:"hints"`
	NextHintCost int        `json:"nextHintCost"`
	Outcome      string     `json:"outcome,omitempty"`
	City         *game.City `json:"city,omitempty"`
	Busy         bool       `json:"busy"`
}

// StartRound selects a city and begins a fresh round for the session,
// replacing any previous one. On selection failure no round state is
// touched; the caller surfaces a retryable error.
func (m *Manager) StartRound(ctx context.Context, sess session.Session, d game.Difficulty, locale string) (RoundView, error) {
	m.mu.Lock()
	lr := m.rounds[sess.Token]
	if lr == nil {
		lr = &liveRound{}
		m.rounds[sess.Token] = lr
	}
	if lr.startBusy {
		m.mu.Unlock()
		return RoundView{}, ErrBusy
	}
	lr.startBusy = true
	m.mu.Unlock()

	city, err := m.selector.SelectCity(ctx, sess.Token, d, locale)

	m.mu.Lock()
	defer m.mu.Unlock()
	lr.startBusy = false
	if err != nil {
		return RoundView{}, err
	}

	r := game.NewRound(m.rules)
	if err := r.Begin(city, d, locale); err != nil {
		return RoundView{}, err
	}
	lr.round = r
	lr.epoch++

	// Remember the choice so a page reload keeps playing the same way.
	if err := m.sessions.SetPrefs(ctx, sess.Token, string(d), locale); err != nil {
		m.logger.Warn("persisting session prefs failed", "error", err)
	}

	m.broker.Publish(sess.Token, SSEEvent{Type: "round_started", Score: r.Score})
	return m.viewLocked(lr), nil
}

// RequestHint runs one strictly sequential hint request: reject while a
// prior one is unresolved, charge and append on completion, and discard
// the result if the round was replaced mid-flight.
func (m *Manager) RequestHint(ctx context.Context, token string) (string, RoundView, error) {
	m.mu.Lock()
	lr := m.rounds[token]
	if lr == nil || lr.round == nil {
		m.mu.Unlock()
		return "", RoundView{}, ErrNoRound
	}
	if lr.hintBusy {
		m.mu.Unlock()
		return "", RoundView{}, ErrBusy
	}
	if err := lr.round.CanRequestHint(); err != nil {
		view := m.viewLocked(lr)
		m.mu.Unlock()
		return "", view, err
	}

	lr.hintBusy = true
	index := lr.round.NextHintIndex()
	previous := slices.Clone(lr.round.Hints)
	city := lr.round.City
	locale := lr.round.Locale
	epoch := lr.epoch
	m.mu.Unlock()

	// Network-bound; never under the lock.
	hint, err := m.hints.NextHint(ctx, index, city, previous, locale)

	m.mu.Lock()
	defer m.mu.Unlock()
	lr.hintBusy = false
	if err != nil {
		return "", m.viewLocked(lr), err
	}
	if lr.epoch != epoch || lr.round.Finished() {
		return "", m.viewLocked(lr), ErrStale
	}
	if err := lr.round.AcceptHint(index, hint); err != nil {
		return "", m.viewLocked(lr), err
	}

	m.broker.Publish(token, SSEEvent{Type: "hint_issued", HintIndex: index, Score: lr.round.Score})
	if lr.round.Finished() {
		m.broker.Publish(token, SSEEvent{Type: "round_over", Outcome: string(lr.round.Outcome), Score: lr.round.Score})
	}
	return hint, m.viewLocked(lr), nil
}

// SubmitGuess applies a guess synchronously.
func (m *Manager) SubmitGuess(_ context.Context, token, guess string) (bool, RoundView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lr := m.rounds[token]
	if lr == nil || lr.round == nil {
		return false, RoundView{}, ErrNoRound
	}

	correct, err := lr.round.SubmitGuess(guess)
	if err != nil {
		return false, m.viewLocked(lr), err
	}

	m.broker.Publish(token, SSEEvent{Type: "guess_submitted", Correct: correct, Score: lr.round.Score})
	if lr.round.Finished() {
		m.broker.Publish(token, SSEEvent{Type: "round_over", Outcome: string(lr.round.Outcome), Score: lr.round.Score})
	}
	return correct, m.viewLocked(lr), nil
}

// Restart throws the current round away and begins a new one with the
// session's remembered difficulty and locale.
func (m *Manager) Restart(ctx context.Context, sess session.Session) (RoundView, error) {
	m.mu.Lock()
	lr := m.rounds[sess.Token]
	var d game.Difficulty
	locale := sess.Locale
	if lr != nil && lr.round != nil {
		d = lr.round.Difficulty
		locale = lr.round.Locale
		// Invalidate in-flight completions for the old round.
		lr.epoch++
		lr.round = nil
	} else {
		var err error
		d, err = game.ParseDifficulty(sess.Difficulty)
		if err != nil {
			d = game.DifficultyMedium
		}
	}
	m.mu.Unlock()

	return m.StartRound(ctx, sess, d, locale)
}

// State returns the current round view, or ErrNoRound.
func (m *Manager) State(token string) (RoundView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lr := m.rounds[token]
	if lr == nil || lr.round == nil {
		return RoundView{}, ErrNoRound
	}
	return m.viewLocked(lr), nil
}

// Drop forgets the session's live round (session end).
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	delete(m.rounds, token)
	m.mu.Unlock()
}

func (m *Manager) viewLocked(lr *liveRound) RoundView {
	r := lr.round
	if r == nil {
		return RoundView{Phase: string(game.PhaseNotStarted), Busy: lr.startBusy}
	}

	v := RoundView{
		Phase:      string(r.Phase),
		Difficulty: string(r.Difficulty),
		Locale:     r.Locale,
		Score:      r.Score,
		HintCount:  len(r.Hints),
		Hints:      slices.Clone(r.Hints),
		Outcome:    string(r.Outcome),
		Busy:       lr.hintBusy || lr.startBusy,
	}
	if v.Hints == nil {
		v.Hints = []string{}
	}
	if !r.Finished() && r.NextHintIndex() <= hints.MaxHints {
		v.NextHintCost = r.HintCost(r.NextHintIndex())
	}
	if r.Finished() {
		city := r.City
		v.City = &city
	}
	return v
}
