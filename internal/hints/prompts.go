package hints

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iamorlov/cityguesser/internal/game"
)

const hintSystemPrompt = "You provide geography hints that are progressively more specific " +
	"but never reveal the city name directly."

// tierGuidance fixes the content-escalation policy for hints 1-8.
// Hint 9 (country plus character count) is built dynamically and hint
// 10 never reaches the generator: the masked reveal is computed locally.
var tierGuidance = [8]string{
	"Provide a maximally abstract hint: the continent or broad region, or an obscure piece of trivia.",
	"Stay abstract: region-level geography or little-known trivia about this city.",
	"Describe the climate of the city.",
	"Share a lesser-known historical fact about the city.",
	"Name a dish or a notable person associated with the city.",
	"Give a moderately well-known fact about the city.",
	"Describe the architecture or skyline of the city.",
	"Give fairly obvious clues: you can name famous landmarks or events of this city, as well as the country where this city is located.",
}

func buildHintPrompt(index int, city game.City, previous []string, locale string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are helping with a geography guessing game. The player needs to guess the city: %s.\n\n", city.NameEn)
	fmt.Fprintf(&sb, "Please provide hint #%d about this city.\n\n", index)

	sb.WriteString("Guidelines:\n")
	sb.WriteString("- NEVER reveal the name of the city directly\n")

	switch {
	case index == 9:
		n := utf8.RuneCountInString(city.Name)
		fmt.Fprintf(&sb, "- State the country this city is in, and mention that the city's name is exactly %d characters long\n", n)
	default:
		fmt.Fprintf(&sb, "- %s\n", tierGuidance[index-1])
	}

	fmt.Fprintf(&sb, "- Respond in %s\n", languageName(locale))
	sb.WriteString("- Keep the hint to 1-3 sentences maximum\n")
	sb.WriteString("- Ensure the hint is factually accurate\n")
	sb.WriteString("- Make the hints progressively more specific\n")

	if len(previous) > 0 {
		sb.WriteString("- DO NOT REPEAT INFORMATION FROM PREVIOUS HINTS! Previous hints were:\n")
		for i, h := range previous {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, h)
		}
	}

	sb.WriteString("\nRespond with ONLY the hint text, nothing else.")
	return sb.String()
}

var localeNames = map[string]string{
	"en": "English",
	"ru": "Russian",
	"uk": "Ukrainian",
}

func languageName(locale string) string {
	if name, ok := localeNames[locale]; ok {
		return name
	}
	return "English"
}
