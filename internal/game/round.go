package game

import (
	"errors"
	"strings"
)

// Phase is the lifecycle of a round.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// Outcome is set exactly once, when the round finishes.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
)

// Rules parameterizes scoring. Two knobs cover the rulesets seen in the
// wild: WrongGuessEnds switches wrong guesses from a point penalty to an
// immediate loss, and HintLossAtZero tightens the hint loss threshold
// from "score went negative" to "score reached zero".
type Rules struct {
	InitialScore   int
	FreeHints      int // hints 1..FreeHints cost nothing
	HintCost       int // cost of every hint after the free ones
	MaxHints       int
	GuessPenalty   int
	WrongGuessEnds bool
	HintLossAtZero bool
}

// DefaultRules is the retry-tolerant ruleset.
func DefaultRules() Rules {
	return Rules{
		InitialScore: 70,
		FreeHints:    3,
		HintCost:     10,
		MaxHints:     10,
		GuessPenalty: 20,
	}
}

var (
	ErrNotStarted        = errors.New("round not started")
	ErrRoundOver         = errors.New("round is over")
	ErrInsufficientScore = errors.New("not enough points for a hint")
	ErrHintsExhausted    = errors.New("no hints left")
	ErrHintOutOfOrder    = errors.New("hint index out of order")
	ErrEmptyGuess        = errors.New("guess is empty")
)

// Round owns score, hints, the target city, and the win/lose decision.
// It is not safe for concurrent use; callers serialize access.
type Round struct {
	rules Rules

	Difficulty Difficulty
	Locale     string
	City       City
	Score      int
	Hints      []string
	Phase      Phase
	Outcome    Outcome
}

// NewRound returns a round in PhaseNotStarted.
func NewRound(rules Rules) *Round {
	return &Round{rules: rules, Phase: PhaseNotStarted}
}

// Rules returns the ruleset the round was created with.
func (r *Round) Rules() Rules { return r.rules }

// Begin moves the round to PhaseInProgress with the given target city.
// City selection happens before Begin; a failed selection simply never
// calls it, leaving the round in PhaseNotStarted.
func (r *Round) Begin(city City, difficulty Difficulty, locale string) error {
	if r.Phase != PhaseNotStarted {
		return ErrRoundOver
	}
	if !city.Valid() {
		return errors.New("invalid target city")
	}
	r.City = city
	r.Difficulty = difficulty
	r.Locale = locale
	r.Score = r.rules.InitialScore
	r.Hints = nil
	r.Phase = PhaseInProgress
	r.Outcome = OutcomeNone
	return nil
}

// HintCost returns the cost of the hint at the given 1-based index.
func (r *Round) HintCost(index int) int {
	if index <= r.rules.FreeHints {
		return 0
	}
	return r.rules.HintCost
}

// NextHintIndex is the index the next accepted hint must carry.
func (r *Round) NextHintIndex() int { return len(r.Hints) + 1 }

// CanRequestHint is the precondition predicate for AcceptHint. It never
// mutates state; a non-nil error means the request must be rejected.
func (r *Round) CanRequestHint() error {
	switch r.Phase {
	case PhaseNotStarted:
		return ErrNotStarted
	case PhaseFinished:
		return ErrRoundOver
	}
	next := r.NextHintIndex()
	if next > r.rules.MaxHints {
		return ErrHintsExhausted
	}
	if r.Score < r.HintCost(next) {
		return ErrInsufficientScore
	}
	return nil
}

// AcceptHint charges for and records hint text generated for index.
// The index must be exactly NextHintIndex at the time the generator was
// called; a mismatch means a stale or raced completion and is rejected
// without state change. The cost is charged even when the text came from
// a fallback. If the deduction leaves the score past the loss threshold,
// the round ends in a loss.
func (r *Round) AcceptHint(index int, hint string) error {
	if err := r.CanRequestHint(); err != nil {
		return err
	}
	if index != r.NextHintIndex() {
		return ErrHintOutOfOrder
	}
	r.Score -= r.HintCost(index)
	r.Hints = append(r.Hints, hint)

	if r.Score < 0 || (r.rules.HintLossAtZero && r.Score <= 0) {
		r.finish(OutcomeLose)
	}
	return nil
}

// SubmitGuess compares guess against the target city. A match wins. A
// mismatch either ends the round (sudden-death ruleset) or costs
// GuessPenalty points, losing when the score drops to zero or below.
func (r *Round) SubmitGuess(guess string) (correct bool, err error) {
	switch r.Phase {
	case PhaseNotStarted:
		return false, ErrNotStarted
	case PhaseFinished:
		return false, ErrRoundOver
	}
	if strings.TrimSpace(guess) == "" {
		return false, ErrEmptyGuess
	}

	if r.City.Matches(guess) {
		r.finish(OutcomeWin)
		return true, nil
	}

	if r.rules.WrongGuessEnds {
		r.finish(OutcomeLose)
		return false, nil
	}

	r.Score -= r.rules.GuessPenalty
	if r.Score <= 0 {
		r.finish(OutcomeLose)
	}
	return false, nil
}

// Finished reports whether the round reached a terminal state.
func (r *Round) Finished() bool { return r.Phase == PhaseFinished }

func (r *Round) finish(o Outcome) {
	r.Phase = PhaseFinished
	r.Outcome = o
}
