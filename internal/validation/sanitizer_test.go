package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	require.Equal(t, "hello world", Sanitize("  hello   world  "))
	require.Equal(t, "scriptalert(1)/script", Sanitize("<script>alert(1)</script>"))
	require.Equal(t, "John OBrien", Sanitize("John O'Brien"))
	require.Equal(t, "a b c", Sanitize("a\tb\n c"))
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"  hello   world  ",
		"<b>\"quoted\"</b>",
		"plain text",
		"tabs\tand\nnewlines",
		"",
	}
	for _, input := range inputs {
		once := Sanitize(input)
		require.Equal(t, once, Sanitize(once), "sanitize not idempotent for %q", input)
	}
}

func TestIsSuspicious(t *testing.T) {
	suspicious := []string{
		"<script>alert(1)</script>",
		"< SCRIPT src=x>",
		"javascript:alert(1)",
		"javascript : alert(1)",
		"<img onerror=alert(1)>",
		"data:text/html,<h1>x</h1>",
		"SELECT * FROM drivers",
		"1; DROP TABLE drivers",
		"name' -- comment",
		"a /* b */ c",
		"x || y",
		"x && y",
	}
	for _, input := range suspicious {
		require.True(t, IsSuspicious(input), "expected %q to be flagged", input)
	}

	clean := []string{
		"John O'Brien",
		"Asha Rao",
		"Main Street Stop 12",
		"Selected Street", // not the bare SQL keyword
		"a-b hyphenated",
	}
	for _, input := range clean {
		require.False(t, IsSuspicious(input), "expected %q to be clean", input)
	}
}
