// Package catalog selects the target city for a round, either from the
// static pool or by delegating to the completion endpoint with a
// difficulty-scoped prompt and the session's used-city exclusion list.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"golang.org/x/sync/singleflight"

	"github.com/iamorlov/cityguesser/internal/game"
	"github.com/iamorlov/cityguesser/internal/grok"
)

// ErrSelectFailed is returned when no city could be produced: the
// external call failed and no static pool is configured. The round
// stays unstarted and the caller surfaces a retry affordance.
var ErrSelectFailed = errors.New("could not select a city")

// maxAttempts bounds the duplicate-city retry loop. Exhausting it
// accepts the duplicate rather than failing the round.
const maxAttempts = 3

// History is the slice of the session store the selector needs.
type History interface {
	UsedCities(ctx context.Context, token string) ([]string, error)
	AddUsedCity(ctx context.Context, token, nameEn string) error
}

// Selector chooses target cities. With a nil Completer every pick
// comes from the static pool; with one configured the pool is implied
// by the difficulty prompt and exclusion is asked of the generator.
type Selector struct {
	llm     grok.Completer
	history History
	static  []game.City
	logger  *slog.Logger

	// Coalesces concurrent selections per session: a second request
	// while one is in flight shares the pending result instead of
	// issuing a duplicate external call.
	group singleflight.Group
}

func NewSelector(llm grok.Completer, history History, static []game.City, logger *slog.Logger) *Selector {
	return &Selector{
		llm:     llm,
		history: history,
		static:  static,
		logger:  logger,
	}
}

// SelectCity produces the target city for a new round in the given
// session and appends its canonical name to the used-city history.
func (s *Selector) SelectCity(ctx context.Context, token string, d game.Difficulty, locale string) (game.City, error) {
	v, err, _ := s.group.Do(token, func() (any, error) {
		return s.selectOnce(ctx, token, d, locale)
	})
	if err != nil {
		return game.City{}, err
	}
	return v.(game.City), nil
}

func (s *Selector) selectOnce(ctx context.Context, token string, d game.Difficulty, locale string) (game.City, error) {
	used, err := s.history.UsedCities(ctx, token)
	if err != nil {
		return game.City{}, fmt.Errorf("loading used cities: %w", err)
	}

	city, err := s.pick(ctx, d, locale, used)
	if err != nil {
		return game.City{}, err
	}

	if err := s.history.AddUsedCity(ctx, token, city.NameEn); err != nil {
		// History is a best-effort exclusion aid; a failed append must
		// not kill an otherwise playable round.
		s.logger.Warn("recording used city failed", "city", city.NameEn, "error", err)
	}
	return city, nil
}

func (s *Selector) pick(ctx context.Context, d game.Difficulty, locale string, used []string) (game.City, error) {
	if s.llm == nil {
		return s.pickStatic()
	}

	usedSet := make(map[string]struct{}, len(used))
	for _, name := range used {
		usedSet[name] = struct{}{}
	}

	// Bounded retry: the prompt asks the generator to avoid used names,
	// but compliance is not guaranteed. After maxAttempts the duplicate
	// is accepted.
	var city game.City
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var err error
		city, err = s.generate(ctx, d, locale, used)
		if err != nil {
			s.logger.Error("city generation failed", "attempt", attempt, "error", err)
			return s.pickStatic()
		}
		if _, dup := usedSet[city.NameEn]; !dup {
			return city, nil
		}
		s.logger.Info("generator repeated a used city", "city", city.NameEn, "attempt", attempt)
	}
	return city, nil
}

func (s *Selector) pickStatic() (game.City, error) {
	if len(s.static) == 0 {
		return game.City{}, ErrSelectFailed
	}
	return s.static[rand.Intn(len(s.static))], nil
}

func (s *Selector) generate(ctx context.Context, d game.Difficulty, locale string, used []string) (game.City, error) {
	raw, err := s.llm.Complete(ctx, []grok.Message{
		{Role: "system", Content: selectSystemPrompt},
		{Role: "user", Content: buildSelectPrompt(d, locale, used)},
	}, true)
	if err != nil {
		return game.City{}, err
	}

	var city game.City
	if err := json.Unmarshal([]byte(raw), &city); err != nil {
		return game.City{}, fmt.Errorf("parsing city payload: %w", err)
	}
	if city.NameEn == "" {
		city.NameEn = city.Name
	}
	if !city.Valid() {
		return game.City{}, fmt.Errorf("generator returned invalid city %+v", city)
	}
	return city, nil
}
