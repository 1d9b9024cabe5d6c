// Package game defines the core domain types and round rules.
// It has no dependencies outside the standard library.
package game

import (
	"fmt"
	"strings"
)

// City is the secret target of a round. Name is rendered in the round's
// locale; NameEn is the canonical English name used for deduplication.
// Immutable once a round begins.
type City struct {
	Name   string  `json:"name"`
	NameEn string  `json:"nameEn"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// Valid reports whether the city has a name and coordinates in range.
func (c City) Valid() bool {
	return strings.TrimSpace(c.Name) != "" &&
		c.Lat >= -90 && c.Lat <= 90 &&
		c.Lng >= -180 && c.Lng <= 180
}

// Matches reports whether guess names this city. The comparison trims
// whitespace and is case-insensitive, and accepts either the localized
// or the canonical English name.
func (c City) Matches(guess string) bool {
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return false
	}
	if strings.EqualFold(guess, strings.TrimSpace(c.Name)) {
		return true
	}
	return c.NameEn != "" && strings.EqualFold(guess, strings.TrimSpace(c.NameEn))
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty string from the wire.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}
