package catalog

import (
	"fmt"
	"strings"

	"github.com/iamorlov/cityguesser/internal/game"
)

const selectSystemPrompt = "You are a geography expert selecting cities for a guessing game."

// difficultyPrompts maps each tier to its selection-pool instruction.
// Kept as a plain data table so the selection contract survives prompt
// rewording.
var difficultyPrompts = map[game.Difficulty]string{
	game.DifficultyEasy: "Create a list of 300 world capital cities (only national capitals " +
		"like London, Paris, Berlin, Tokyo, Washington D.C., etc.), and randomly select one city from it.",
	game.DifficultyMedium: "Create a list of 600 well-known cities from around the world, WITHOUT " +
		"CAPITAL CITIES (major cities that most people would recognize like New York, Barcelona, " +
		"Sydney, Prague, etc.), and randomly select one city from it.",
	game.DifficultyHard: "Create a list of 1,000 cities from ANY country in the world, including " +
		"smaller cities and towns that are not necessarily well-known internationally, and randomly " +
		"select one city from it. DO NOT INCLUDE CAPITAL CITIES OR VERY WELL KNOWN BIG CITIES in this list.",
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

func buildSelectPrompt(d game.Difficulty, locale string, excluded []string) string {
	var sb strings.Builder

	sb.WriteString(difficultyPrompts[d])
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "The city should be appropriate for the %s difficulty level.\n", d)
	fmt.Fprintf(&sb, "Render the \"name\" field in %s; \"nameEn\" must always be the English name.\n",
		languageName(locale))

	if len(excluded) > 0 {
		sb.WriteString("Do NOT pick any of these cities, they were already used in this session: ")
		sb.WriteString(strings.Join(excluded, ", "))
		sb.WriteString(".\n")
	}

	sb.WriteString(`Respond in valid JSON format only with this exact structure:
{"name": "CityName", "nameEn": "EnglishCityName", "lat": latitude, "lng": longitude}

Do not include any additional text or explanation in your response.`)

	return sb.String()
}
