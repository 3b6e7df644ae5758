package testutil

import (
	"strings"

	"pgregory.net/rapid"
)

// HarryPotterISBN is a well-formed hyphenated ISBN-13 used across tests.
const HarryPotterISBN = "978-0-7475-3269-9"

// HarryPotterKey is HarryPotterISBN with hyphens removed.
const HarryPotterKey = "9780747532699"

// ISBNDigits generates strings of exactly digits ASCII digits with random
// hyphens and spaces mixed in.
func ISBNDigits(digits int) *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		var b strings.Builder
		for i := 0; i < digits; i++ {
			for _, sep := range rapid.SliceOfN(rapid.SampledFrom([]string{"-", " "}), 0, 2).Draw(t, "sep") {
				b.WriteString(sep)
			}
			b.WriteByte(byte('0' + rapid.IntRange(0, 9).Draw(t, "digit")))
		}
		// Always draw, so zero digits still consumes data.
		for _, sep := range rapid.SliceOfN(rapid.SampledFrom([]string{"-", " "}), 0, 2).Draw(t, "trailing") {
			b.WriteString(sep)
		}
		return b.String()
	})
}

// ValidISBN generates well-formed ISBN-13 strings with separator noise.
func ValidISBN() *rapid.Generator[string] {
	return ISBNDigits(13)
}
