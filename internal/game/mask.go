package game

import (
	"math/rand"
	"unicode"
)

// MaskRune replaces hidden letters in the final reveal hint.
const MaskRune = '*'

// MaskName produces the hint-10 reveal form of a city name: roughly a
// third of its letters are replaced with MaskRune. The first letter of
// each word stays visible and non-letter characters are left untouched.
// Which letters are hidden is random per call.
func MaskName(name string) string {
	return maskName(name, rand.Shuffle)
}

// maskName takes the shuffle function as a parameter so tests can pin
// the selection order.
func maskName(name string, shuffle func(n int, swap func(i, j int))) string {
	runes := []rune(name)

	var maskable []int
	letters := 0
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) {
			letters++
			if prevLetter {
				maskable = append(maskable, i)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}

	n := (letters + 2) / 3
	if n > len(maskable) {
		n = len(maskable)
	}
	if n == 0 {
		return name
	}

	shuffle(len(maskable), func(i, j int) {
		maskable[i], maskable[j] = maskable[j], maskable[i]
	})
	for _, i := range maskable[:n] {
		runes[i] = MaskRune
	}
	return string(runes)
}
