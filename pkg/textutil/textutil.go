// Package textutil provides pure text normalization helpers for review text.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
)

var (
	// whitespaceRun matches runs of whitespace to be collapsed.
	whitespaceRun = regexp.MustCompile(`\s+`)

	// disallowed matches everything outside the allow-set: word characters
	// (any script), whitespace, and basic punctuation . , ! ?
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?]`)
)

// emoji code point ranges stripped from review text: emoticons, symbols &
// pictographs, transport & map symbols, and regional indicator flags.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}

	return false
}

// CleanText normalizes raw review text: collapses whitespace runs to a
// single space, strips characters outside the allow-set, strips emoji,
// and trims leading/trailing whitespace. It is total: invalid input
// yields "".
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowed.ReplaceAllString(text, "")

	text = strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}

		return r
	}, text)

	return strings.TrimSpace(text)
}

// WordCount returns the number of word tokens in text, using UAX #29 word
// segmentation. Tokens without a letter or digit (bare punctuation) are
// not counted.
func WordCount(text string) int {
	count := 0

	tokens := words.FromString(text)
	for tokens.Next() {
		if isWordlike(tokens.Value()) {
			count++
		}
	}

	return count
}

func isWordlike(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

// RuneLen returns the character count of s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate shortens s to at most maxLength characters, appending an
// ellipsis when anything was cut.
func Truncate(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	runes := []rune(s)

	return string(runes[:maxLength]) + "..."
}
