package model

import (
	"strings"
	"unicode"
)

// Labeler derives a display label from a field name.
type Labeler func(name string) string

// DefaultLabeler turns the identifiers found in field-set files and OpenAPI
// schemas into labels: reply_to, replyTo and reply-to all become "Reply To",
// addressLine2 becomes "Address Line 2" and HTMLBody becomes "HTML Body".
func DefaultLabeler(name string) string {
	words := nameWords(name)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

// nameWords splits name on separators, lower-to-upper transitions, the end
// of an acronym and letter/digit changes.
func nameWords(name string) []string {
	runes := []rune(name)
	var words []string
	start := -1
	for i, r := range runes {
		if isSeparator(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start >= 0 && startsWord(runes, i) {
			words = append(words, string(runes[start:i]))
			start = i
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}
	return words
}

func startsWord(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return true
	case unicode.IsDigit(prev) != unicode.IsDigit(cur):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(cur):
		return i+1 < len(runes) && unicode.IsLower(runes[i+1])
	}
	return false
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// capitalize upper-cases the first rune of word and lower-cases the rest,
// leaving all-caps words such as acronyms untouched.
func capitalize(word string) string {
	if word == strings.ToUpper(word) {
		return word
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
