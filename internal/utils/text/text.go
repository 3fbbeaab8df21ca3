// Package text provides utilities for text processing shared across the
// content pipeline: word and rune counting, slug generation for output
// filenames, and cleanup of AI responses.
package text

import (
	"strings"
	"unicode"
)

// CountRunes counts the number of Unicode characters (runes) in the given
// text. Multi-byte characters and emoji count as one each.
func CountRunes(text string) int {
	return len([]rune(text))
}

// CountWords counts whitespace-separated words. This matches how word count
// targets are expressed in generation prompts.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// maxSlugRunes caps generated slugs so filenames stay readable.
const maxSlugRunes = 60

// Slugify converts a title into a lowercase hyphen-separated slug suitable
// for filenames: "How to Care for Knives!" becomes "how-to-care-for-knives".
// Runs of non-alphanumeric characters collapse into a single hyphen and the
// result is truncated to a fixed length on a rune boundary.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if runes := []rune(slug); len(runes) > maxSlugRunes {
		slug = strings.TrimSuffix(string(runes[:maxSlugRunes]), "-")
	}
	return slug
}

// StripCodeFence removes a surrounding Markdown code fence from an AI
// response, if present. Models sometimes wrap JSON answers in ```json
// blocks even when asked not to.
func StripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop the language tag on the opening fence line.
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		first := strings.TrimSpace(trimmed[:idx])
		if first == "" || isLanguageTag(first) {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
