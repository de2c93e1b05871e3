package plate

// ValidatedPlate is the outcome of a validation attempt. It is built
// once and returned; invalid outcomes still carry a best-effort
// category guess for diagnostics but never a formatted plate.
type ValidatedPlate struct {
	RawInput       string   `json:"raw_input"`
	CanonicalText  string   `json:"canonical_text"`
	IsValid        bool     `json:"is_valid"`
	FormattedPlate string   `json:"formatted_plate,omitempty"`
	Category       Category `json:"plate_category"`
	Confidence     float64  `json:"confidence"`
	StateCode      string   `json:"state_code,omitempty"`
	StateName      string   `json:"state_name,omitempty"`
	Message        string   `json:"message"`
}

const (
	msgTooShort     = "plate text too short"
	msgUnrecognized = "unrecognized plate format"
)

// Validate sanitizes and validates raw plate text against the default
// category-encoding grammar family.
func Validate(raw string) ValidatedPlate {
	return ValidateFamily(raw, FamilyCategory)
}

// ValidateFamily tries each grammar of the family in priority order:
// the text is corrected anchored to the candidate's layout, then
// matched exactly. The first grammar that matches wins and determines
// category, hyphenation, jurisdiction and confidence.
func ValidateFamily(raw string, family Family) ValidatedPlate {
	canonical := Sanitize(raw)

	if len(canonical) < MinLength {
		return ValidatedPlate{
			RawInput:      raw,
			CanonicalText: canonical,
			Category:      CategoryUnknown,
			Message:       msgTooShort,
		}
	}

	for _, g := range Grammars(family) {
		corrected := Correct(canonical, g)
		if !g.Matches(corrected) {
			continue
		}
		code := g.StateCode(corrected)
		vp := ValidatedPlate{
			RawInput:       raw,
			CanonicalText:  corrected,
			IsValid:        true,
			FormattedPlate: g.Format(corrected),
			Category:       g.Category,
			Confidence:     g.Confidence,
			StateCode:      code,
			Message:        "valid " + g.Name + " plate",
		}
		if code != "" {
			vp.StateName = StateName(code)
		}
		return vp
	}

	return ValidatedPlate{
		RawInput:      raw,
		CanonicalText: canonical,
		Category:      guessCategory(canonical, family),
		Confidence:    0.3,
		Message:       msgUnrecognized,
	}
}

// guessCategory is the low-confidence fallback for invalid plates: a
// structural length/class check without requiring full corrector
// agreement, so diagnostics can still say what the text looked like.
func guessCategory(canonical string, family Family) Category {
	for _, g := range Grammars(family) {
		if len(canonical) != g.Len() {
			continue
		}
		if shapeMatches(canonical, g) {
			return g.Category
		}
	}
	return CategoryUnknown
}

// shapeMatches checks class shape only, treating confusable glyphs as
// members of both classes. Literal marker positions still require the
// marker itself.
func shapeMatches(text string, g Grammar) bool {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if g.literal != nil && g.literal[i] != 0 {
			if c != g.literal[i] && toLetter[c] != g.literal[i] {
				return false
			}
			continue
		}
		switch g.layout[i] {
		case classLetter:
			if _, confusable := toLetter[c]; !confusable && !(c >= 'A' && c <= 'Z') {
				return false
			}
		case classDigit:
			if _, confusable := toDigit[c]; !confusable && !(c >= '0' && c <= '9') {
				return false
			}
		}
	}
	return true
}
