package text_test

import (
	"testing"

	"contentforge/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"ASCII text", "hello", 5},
		{"ASCII with spaces", "hello world", 11},
		{"Empty string", "", 0},
		{"Emoji", "Hello👋", 6},
		{"Accented", "café", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"Simple sentence", "the quick brown fox", 4},
		{"Extra whitespace", "  the   quick\tbrown\nfox  ", 4},
		{"Empty string", "", 0},
		{"Only whitespace", "   \n\t ", 0},
		{"Single word", "knife", 1},
		{"Punctuation attached", "Sharp, durable, affordable.", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountWords(tt.input); got != tt.expected {
				t.Errorf("CountWords(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple title", "How to Care for Knives", "how-to-care-for-knives"},
		{"Punctuation", "Best Knives: A Buyer's Guide!", "best-knives-a-buyer-s-guide"},
		{"Leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"Numbers kept", "Top 10 Kitchen Tools 2026", "top-10-kitchen-tools-2026"},
		{"Empty", "", ""},
		{"Only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := "this is a very long title that keeps going and going and going far past the limit"
	got := text.Slugify(long)
	if len([]rune(got)) > 60 {
		t.Errorf("Slugify did not truncate: %d runes", len([]rune(got)))
	}
	if got[len(got)-1] == '-' {
		t.Errorf("Slugify left a trailing hyphen: %q", got)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"No fence", `{"a": 1}`, `{"a": 1}`},
		{"Plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"JSON fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"Fence with whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"Unclosed fence", "```json\n{\"a\": 1}", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.StripCodeFence(tt.input); got != tt.expected {
				t.Errorf("StripCodeFence(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
