package game

import (
	"strings"
	"testing"
	"unicode"
)

func TestMaskNameHidesAboutAThird(t *testing.T) {
	names := []string{"Paris", "Rio de Janeiro", "San Francisco", "Ulaanbaatar"}

	for _, name := range names {
		masked := MaskName(name)

		if len([]rune(masked)) != len([]rune(name)) {
			t.Fatalf("%q: length changed: %q", name, masked)
		}

		letters, hidden := 0, 0
		for _, r := range name {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		for _, r := range masked {
			if r == MaskRune {
				hidden++
			}
		}
		want := (letters + 2) / 3
		if hidden != want {
			t.Errorf("%q: hid %d letters, want %d", name, hidden, want)
		}
	}
}

func TestMaskNameKeepsWordInitials(t *testing.T) {
	name := "Rio de Janeiro"

	// Repeat: the letter choice is random, the initials never are.
	for i := 0; i < 20; i++ {
		masked := MaskName(name)
		for _, idx := range []int{0, 4, 7} { // R, d, J
			if masked[idx] == byte(MaskRune) {
				t.Fatalf("word-initial letter masked in %q", masked)
			}
		}
	}
}

func TestMaskNameLeavesNonLettersAlone(t *testing.T) {
	masked := MaskName("Winston-Salem")
	if !strings.Contains(masked, "-") {
		t.Errorf("separator masked: %q", masked)
	}
	if masked[0] == byte(MaskRune) || masked[8] == byte(MaskRune) {
		t.Errorf("word-initial letter masked across hyphen: %q", masked)
	}
}

func TestMaskNameDeterministicOrder(t *testing.T) {
	// With an identity shuffle the first maskable positions are hidden.
	got := maskName("Paris", func(n int, swap func(i, j int)) {})
	if got != "P**is" {
		t.Errorf("maskName = %q, want %q", got, "P**is")
	}
}

func TestMaskNameDegenerateInputs(t *testing.T) {
	if got := MaskName(""); got != "" {
		t.Errorf("MaskName(\"\") = %q", got)
	}
	// Single letters per word: nothing is maskable.
	if got := MaskName("A B C"); got != "A B C" {
		t.Errorf("MaskName = %q, want unchanged", got)
	}
}
