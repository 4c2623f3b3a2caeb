package utils

import (
	"regexp"
	"strings"
)

// Rough word utilities used for read-time and excerpt fallbacks. Markup
// punctuation is dropped before counting; the estimate is meant for display
// only.

var markupNoise = regexp.MustCompile("[#*`>\\[\\]()!]+")

// CountWords returns the number of whitespace-separated words in text,
// ignoring lightweight markup punctuation.
func CountWords(text string) int {
	return len(words(text))
}

// EstimateReadMinutes estimates reading time in whole minutes. Any non-empty
// text takes at least one minute.
func EstimateReadMinutes(text string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = 200
	}
	n := CountWords(text)
	if n == 0 {
		return 0
	}
	return (n + wordsPerMinute - 1) / wordsPerMinute
}

// TruncateWords returns the first limit words of text joined by single
// spaces, with an ellipsis when text was cut.
func TruncateWords(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	w := words(text)
	if len(w) <= limit {
		return strings.Join(w, " ")
	}
	return strings.Join(w[:limit], " ") + "…"
}

func words(text string) []string {
	return strings.Fields(markupNoise.ReplaceAllString(text, " "))
}
