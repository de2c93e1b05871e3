package plate

import (
	"testing"
)

func TestCorrectPrivateLayout(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "digit confusables in letter positions",
			input:    "KT5123AB",
			expected: "KTS123AB",
		},
		{
			name:     "letter confusables in digit positions",
			input:    "KTSIZ3AB",
			expected: "KTS123AB",
		},
		{
			name:     "zero and O resolved by position",
			input:    "0TS1O3AB",
			expected: "OTS103AB",
		},
		{
			name:     "eight to B in trailing letters",
			input:    "KTS123A8",
			expected: "KTS123AB",
		},
		{
			name:     "non-confusable digit in letter position is untouched",
			input:    "K75123AB",
			expected: "K7S123AB",
		},
		{
			name:     "already correct text unchanged",
			input:    "KTS123AB",
			expected: "KTS123AB",
		},
		{
			name:     "length mismatch passes through",
			input:    "KTS123",
			expected: "KTS123",
		},
		{
			name:     "too long passes through",
			input:    "KTS123ABC",
			expected: "KTS123ABC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Correct(tt.input, grammarPrivate)
			if result != tt.expected {
				t.Errorf("Correct(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCorrectCommercialLayout(t *testing.T) {
	// Same text corrects differently under a different anchor: the
	// third position is a digit here, not a letter.
	input := "KTS123AB"
	result := Correct(input, grammarCommercial)
	if result != "KT5123AB" {
		t.Errorf("Correct(%q, commercial) = %q, want %q", input, result, "KT5123AB")
	}
}

func TestCorrectGovernmentLiteral(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		grammar  Grammar
		expected string
	}{
		{
			name:     "confused marker restored to letters",
			input:    "F62Z4KT",
			grammar:  grammarGovernmentLead,
			expected: "F6224KT", // 6 is outside the table, Z resolves toward digit
		},
		{
			name:     "trailing marker positions treated as letters",
			input:    "KT234F6",
			grammar:  grammarGovernmentTrail,
			expected: "KT234F6",
		},
		{
			name:     "clean government plate unchanged",
			input:    "FG234KT",
			grammar:  grammarGovernmentLead,
			expected: "FG234KT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Correct(tt.input, tt.grammar)
			if result != tt.expected {
				t.Errorf("Correct(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCorrectNeverTouchesNonConfusables(t *testing.T) {
	// Every character outside the confusion table must survive
	// correction byte for byte, under every grammar.
	input := "XY7Q43XW"
	for _, g := range append(append([]Grammar{}, categoryGrammars...), uniformGrammars...) {
		result := Correct(input, g)
		if g.Len() != len(input) {
			if result != input {
				t.Errorf("Correct(%q, %s) altered unanchorable text: %q", input, g.Name, result)
			}
			continue
		}
		if result != input {
			t.Errorf("Correct(%q, %s) = %q, altered characters outside the confusion table", input, g.Name, result)
		}
	}
}
