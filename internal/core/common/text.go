package common

import (
	"strings"
	"unicode"
)

// NormalizeText lowercases, drops the given filler words (whole words only),
// strips punctuation and collapses whitespace. Two findings that normalize to
// the same key are treated as the same observation.
func NormalizeText(text string, fillers []string) string {
	text = strings.ToLower(text)

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if trimmed == "" {
			continue
		}
		if isFiller(trimmed, fillers) {
			continue
		}
		kept = append(kept, stripPunct(trimmed))
	}

	return strings.Join(kept, " ")
}

func isFiller(word string, fillers []string) bool {
	for _, f := range fillers {
		if word == f {
			return true
		}
	}
	return false
}

func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsAllKeywords reports whether every whitespace-separated keyword of
// pattern appears as a substring of text. Both sides are lowercased. An empty
// pattern matches nothing.
func ContainsAllKeywords(text, pattern string) bool {
	keywords := strings.Fields(strings.ToLower(pattern))
	if len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether any of the needles is a substring of the
// lowercased text.
func ContainsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
