package plate

import (
	"testing"
)

func TestValidateCategoryFamily(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantValid     bool
		wantFormatted string
		wantCategory  Category
		wantStateCode string
		wantStateName string
	}{
		{
			name:          "private plate lowercase",
			input:         "kts123ab",
			wantValid:     true,
			wantFormatted: "KTS-123AB",
			wantCategory:  CategoryPrivate,
			wantStateCode: "KT",
			wantStateName: "Katsina",
		},
		{
			name:          "private plate with hyphens and spaces",
			input:         " kts-123 ab ",
			wantValid:     true,
			wantFormatted: "KTS-123AB",
			wantCategory:  CategoryPrivate,
			wantStateCode: "KT",
			wantStateName: "Katsina",
		},
		{
			name:          "private plate with confused digit in letter position",
			input:         "kt5123ab",
			wantValid:     true,
			wantFormatted: "KTS-123AB",
			wantCategory:  CategoryPrivate,
			wantStateCode: "KT",
			wantStateName: "Katsina",
		},
		{
			name:          "private plate with confused letters in digit positions",
			input:         "ktsIZ3ab",
			wantValid:     true,
			wantFormatted: "KTS-123AB",
			wantCategory:  CategoryPrivate,
			wantStateCode: "KT",
			wantStateName: "Katsina",
		},
		{
			name:          "commercial plate",
			input:         "kt234ktn",
			wantValid:     true,
			wantFormatted: "KT-234-KTN",
			wantCategory:  CategoryCommercial,
			wantStateCode: "KT",
			wantStateName: "Katsina",
		},
		{
			name:          "government plate leading marker",
			input:         "fg234kt",
			wantValid:     true,
			wantFormatted: "FG-234-KT",
			wantCategory:  CategoryGovernment,
			wantStateCode: "FG",
			wantStateName: "Federal",
		},
		{
			name:          "government plate trailing marker",
			input:         "kt456fg",
			wantValid:     true,
			wantFormatted: "KT-456-FG",
			wantCategory:  CategoryGovernment,
			wantStateCode: "FG",
			wantStateName: "Federal",
		},
		{
			name:          "unknown state code still validates",
			input:         "xyz999qw",
			wantValid:     true,
			wantFormatted: "XYZ-999QW",
			wantCategory:  CategoryPrivate,
			wantStateCode: "XY",
			wantStateName: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)
			if result.IsValid != tt.wantValid {
				t.Fatalf("Validate(%q).IsValid = %v, want %v (message: %s)", tt.input, result.IsValid, tt.wantValid, result.Message)
			}
			if result.FormattedPlate != tt.wantFormatted {
				t.Errorf("FormattedPlate = %q, want %q", result.FormattedPlate, tt.wantFormatted)
			}
			if result.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", result.Category, tt.wantCategory)
			}
			if result.StateCode != tt.wantStateCode {
				t.Errorf("StateCode = %q, want %q", result.StateCode, tt.wantStateCode)
			}
			if result.StateName != tt.wantStateName {
				t.Errorf("StateName = %q, want %q", result.StateName, tt.wantStateName)
			}
			if result.Confidence <= 0.5 {
				t.Errorf("Confidence = %v, want a per-grammar constant above 0.5", result.Confidence)
			}
			if result.RawInput != tt.input {
				t.Errorf("RawInput = %q, want %q", result.RawInput, tt.input)
			}
		})
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantMessage  string
		wantCategory Category
	}{
		{
			name:         "too short",
			input:        "INVALID",
			wantMessage:  msgUnrecognized,
			wantCategory: CategoryUnknown,
		},
		{
			name:         "shorter than any grammar",
			input:        "KTS12",
			wantMessage:  msgTooShort,
			wantCategory: CategoryUnknown,
		},
		{
			name:         "empty input",
			input:        "",
			wantMessage:  msgTooShort,
			wantCategory: CategoryUnknown,
		},
		{
			name:         "right length wrong shape",
			input:        "1234ABCD",
			wantMessage:  msgUnrecognized,
			wantCategory: CategoryUnknown,
		},
		{
			name:         "uncorrectable digit in letter position",
			input:        "K75123AB",
			wantMessage:  msgUnrecognized,
			wantCategory: CategoryUnknown,
		},
		{
			name:         "nine characters",
			input:        "KTS1234AB",
			wantMessage:  msgUnrecognized,
			wantCategory: CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)
			if result.IsValid {
				t.Fatalf("Validate(%q).IsValid = true, want false", tt.input)
			}
			if result.FormattedPlate != "" {
				t.Errorf("FormattedPlate = %q, want empty for invalid plate", result.FormattedPlate)
			}
			if result.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", result.Message, tt.wantMessage)
			}
			if result.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", result.Category, tt.wantCategory)
			}
		})
	}
}

func TestValidateBestEffortCategoryGuess(t *testing.T) {
	// "INVALID" is 7 characters and, shape-wise, could be a
	// government plate only if it carried the FG marker; it does
	// not, so the guess stays unknown with low confidence.
	result := Validate("INVALID")
	if result.Confidence >= 0.5 {
		t.Errorf("Confidence = %v, want a low diagnostic confidence", result.Confidence)
	}

	// A commercial-shaped string that fails only the corrector
	// still yields a commercial guess for diagnostics.
	guess := Validate("KT2Q4KTN")
	if guess.IsValid {
		t.Fatalf("Validate(%q) unexpectedly valid", "KT2Q4KTN")
	}
	if guess.Category != CategoryUnknown {
		t.Errorf("Category = %q, want %q for unfixable shape", guess.Category, CategoryUnknown)
	}
}

func TestValidateFixedPoint(t *testing.T) {
	// Validating a formatted plate must reproduce itself: the
	// canonical output is a fixed point of the pipeline.
	inputs := []string{"kts123ab", "kt234ktn", "fg234kt", "kt456fg"}
	for _, input := range inputs {
		first := Validate(input)
		if !first.IsValid {
			t.Fatalf("Validate(%q) invalid: %s", input, first.Message)
		}
		second := Validate(first.FormattedPlate)
		if !second.IsValid {
			t.Fatalf("Validate(%q) invalid on second pass: %s", first.FormattedPlate, second.Message)
		}
		if second.FormattedPlate != first.FormattedPlate {
			t.Errorf("fixed point violated: %q -> %q", first.FormattedPlate, second.FormattedPlate)
		}
		if second.Category != first.Category {
			t.Errorf("category changed on revalidation: %q -> %q", first.Category, second.Category)
		}
	}
}

func TestValidateUniformFamily(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantValid     bool
		wantFormatted string
	}{
		{
			name:          "standard layout",
			input:         "kts123ab",
			wantValid:     true,
			wantFormatted: "KTS-123AB",
		},
		{
			name:      "commercial layout is not part of the uniform family",
			input:     "kt234ktn",
			wantValid: false,
		},
		{
			name:      "government marker is not part of the uniform family",
			input:     "fg234kt",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateFamily(tt.input, FamilyUniform)
			if result.IsValid != tt.wantValid {
				t.Fatalf("ValidateFamily(%q, uniform).IsValid = %v, want %v", tt.input, result.IsValid, tt.wantValid)
			}
			if result.FormattedPlate != tt.wantFormatted {
				t.Errorf("FormattedPlate = %q, want %q", result.FormattedPlate, tt.wantFormatted)
			}
			if tt.wantValid && result.Category != CategoryUnknown {
				t.Errorf("Category = %q, want %q: the uniform layout does not encode a category", result.Category, CategoryUnknown)
			}
		})
	}
}

func TestGrammarsMutuallyExclusive(t *testing.T) {
	// Category grammars must never both match one canonical text,
	// otherwise classification would depend on priority alone.
	samples := []string{"KTS123AB", "KT234KTN", "FG234KT", "KT456FG", "XYZ999QW"}
	for _, text := range samples {
		matched := 0
		for _, g := range categoryGrammars {
			if len(text) == g.Len() && g.Matches(Correct(text, g)) {
				matched++
			}
		}
		if matched > 1 {
			t.Errorf("%q matched %d grammars, want at most 1", text, matched)
		}
	}
}
