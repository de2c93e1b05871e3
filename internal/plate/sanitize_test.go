package plate

import (
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase",
			input:    "kts123ab",
			expected: "KTS123AB",
		},
		{
			name:     "with spaces",
			input:    "KTS 123 AB",
			expected: "KTS123AB",
		},
		{
			name:     "with dashes",
			input:    "KTS-123-AB",
			expected: "KTS123AB",
		},
		{
			name:     "with punctuation and noise",
			input:    " kts.123*ab! ",
			expected: "KTS123AB",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "  KTS123AB  ",
			expected: "KTS123AB",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only noise",
			input:    "--- ...",
			expected: "",
		},
		{
			name:     "already canonical",
			input:    "KTS123AB",
			expected: "KTS123AB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sanitize(tt.input)
			if result != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeKeepHyphens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps hyphens",
			input:    "kts-123ab",
			expected: "KTS-123AB",
		},
		{
			name:     "drops other punctuation",
			input:    "kts-123.ab ",
			expected: "KTS-123AB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeKeepHyphens(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeKeepHyphens(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{"kts 123-ab", "FG-234-KT", "", "??"}
	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
