// Package hints produces the escalating hint sequence for a round.
package hints

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iamorlov/cityguesser/internal/game"
	"github.com/iamorlov/cityguesser/internal/grok"
)

// MaxHints is the length of a full hint sequence.
const MaxHints = 10

// Generator is the hint contract consumed by the round manager.
type Generator interface {
	// NextHint returns the hint at index (1-based). The index must be
	// exactly len(previous)+1; anything else is a contract violation.
	// External failures are absorbed by the deterministic fallback, so
	// an error only ever signals a bad index.
	NextHint(ctx context.Context, index int, city game.City, previous []string, locale string) (string, error)
}

// GrokGenerator generates hints through the completion endpoint, with
// the locale-specific fallback list behind it. The final hint is always
// the locally computed masked reveal.
type GrokGenerator struct {
	llm    grok.Completer // nil means fallback-only operation
	logger *slog.Logger
}

func NewGrokGenerator(llm grok.Completer, logger *slog.Logger) *GrokGenerator {
	return &GrokGenerator{llm: llm, logger: logger}
}

func (g *GrokGenerator) NextHint(ctx context.Context, index int, city game.City, previous []string, locale string) (string, error) {
	if index < 1 || index > MaxHints {
		return "", fmt.Errorf("hint index %d out of range", index)
	}
	if index != len(previous)+1 {
		return "", fmt.Errorf("hint index %d does not follow %d previous hints", index, len(previous))
	}

	// The reveal hint is deterministic and never leaves the process:
	// the generator must not be trusted with the exact masking rule.
	if index == MaxHints {
		return game.MaskName(city.Name), nil
	}

	if g.llm == nil {
		return Fallback(locale, index), nil
	}

	hint, err := g.llm.Complete(ctx, []grok.Message{
		{Role: "system", Content: hintSystemPrompt},
		{Role: "user", Content: buildHintPrompt(index, city, previous, locale)},
	}, false)
	if err != nil {
		g.logger.Warn("hint generation failed, using fallback", "index", index, "error", err)
		return Fallback(locale, index), nil
	}
	return hint, nil
}
