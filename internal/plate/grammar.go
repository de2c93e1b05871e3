package plate

import "regexp"

// Family selects which set of plate grammars the validator tries.
// FamilyCategory encodes the plate category in the layout itself
// (private, commercial, government marker). FamilyUniform is the
// single-layout scheme where every plate is 3 letters, 3 digits,
// 2 letters and the layout carries no category information.
type Family int

const (
	FamilyCategory Family = iota
	FamilyUniform
)

type Category string

const (
	CategoryPrivate    Category = "PRIVATE"
	CategoryCommercial Category = "COMMERCIAL"
	CategoryGovernment Category = "GOVERNMENT"
	CategoryUnknown    Category = "UNKNOWN"
)

// charClass is the expected character class at a plate position.
type charClass int

const (
	classLetter charClass = iota
	classDigit
)

// Grammar is one recognized plate layout: a fixed sequence of
// letter/digit positions, optionally pinned to a literal marker
// (e.g. the FG government prefix/suffix).
type Grammar struct {
	Name       string
	Category   Category
	Confidence float64

	// layout holds the expected class for each canonical position.
	layout []charClass
	// literal pins positions to exact characters; zero byte means free.
	literal []byte
	// hyphens lists the canonical positions after which a hyphen is
	// inserted when formatting.
	hyphens []int
	// stateCode extracts the jurisdiction code, nil if the grammar
	// does not encode one.
	stateCode func(text string) string

	pattern *regexp.Regexp
}

// Len is the canonical (unhyphenated) length of the grammar.
func (g Grammar) Len() int { return len(g.layout) }

// Matches reports whether canonical text matches the grammar exactly.
func (g Grammar) Matches(text string) bool {
	return g.pattern.MatchString(text)
}

// Format inserts the grammar's canonical hyphenation into text, which
// must already match the grammar.
func (g Grammar) Format(text string) string {
	out := make([]byte, 0, len(text)+len(g.hyphens))
	next := 0
	for i := 0; i < len(text); i++ {
		out = append(out, text[i])
		if next < len(g.hyphens) && g.hyphens[next] == i {
			out = append(out, '-')
			next++
		}
	}
	return string(out)
}

// StateCode returns the jurisdiction code encoded by the grammar, or
// an empty string when the grammar carries none.
func (g Grammar) StateCode(text string) string {
	if g.stateCode == nil {
		return ""
	}
	return g.stateCode(text)
}

func classes(letters, digits, trailing int) []charClass {
	layout := make([]charClass, 0, letters+digits+trailing)
	for i := 0; i < letters; i++ {
		layout = append(layout, classLetter)
	}
	for i := 0; i < digits; i++ {
		layout = append(layout, classDigit)
	}
	for i := 0; i < trailing; i++ {
		layout = append(layout, classLetter)
	}
	return layout
}

func leadingPair(text string) string { return text[:2] }

var (
	grammarPrivate = Grammar{
		Name:       "private",
		Category:   CategoryPrivate,
		Confidence: 0.95,
		layout:     classes(3, 3, 2),
		hyphens:    []int{2},
		stateCode:  leadingPair,
		pattern:    regexp.MustCompile(`^[A-Z]{3}[0-9]{3}[A-Z]{2}$`),
	}

	grammarCommercial = Grammar{
		Name:       "commercial",
		Category:   CategoryCommercial,
		Confidence: 0.93,
		layout:     classes(2, 3, 3),
		hyphens:    []int{1, 4},
		stateCode:  leadingPair,
		pattern:    regexp.MustCompile(`^[A-Z]{2}[0-9]{3}[A-Z]{3}$`),
	}

	grammarGovernmentLead = Grammar{
		Name:       "government-lead",
		Category:   CategoryGovernment,
		Confidence: 0.90,
		layout:     classes(2, 3, 2),
		literal:    []byte{'F', 'G', 0, 0, 0, 0, 0},
		hyphens:    []int{1, 4},
		stateCode:  func(string) string { return "FG" },
		pattern:    regexp.MustCompile(`^FG[0-9]{3}[A-Z]{2}$`),
	}

	grammarGovernmentTrail = Grammar{
		Name:       "government-trail",
		Category:   CategoryGovernment,
		Confidence: 0.90,
		layout:     classes(2, 3, 2),
		literal:    []byte{0, 0, 0, 0, 0, 'F', 'G'},
		hyphens:    []int{1, 4},
		stateCode:  func(string) string { return "FG" },
		pattern:    regexp.MustCompile(`^[A-Z]{2}[0-9]{3}FG$`),
	}

	grammarUniform = Grammar{
		Name:       "uniform",
		Category:   CategoryUnknown,
		Confidence: 0.95,
		layout:     classes(3, 3, 2),
		hyphens:    []int{2},
		stateCode:  leadingPair,
		pattern:    regexp.MustCompile(`^[A-Z]{3}[0-9]{3}[A-Z]{2}$`),
	}
)

// categoryGrammars is the fixed priority order: the first grammar that
// matches wins. The layouts are mutually exclusive by construction
// (distinct letter/digit shapes, literal markers only where the
// private/commercial shapes cannot match).
var categoryGrammars = []Grammar{
	grammarPrivate,
	grammarCommercial,
	grammarGovernmentLead,
	grammarGovernmentTrail,
}

var uniformGrammars = []Grammar{grammarUniform}

// Grammars returns the grammar priority list for a family.
func Grammars(family Family) []Grammar {
	if family == FamilyUniform {
		return uniformGrammars
	}
	return categoryGrammars
}

// MinLength is the shortest canonical length any recognized grammar
// accepts, across both families.
const MinLength = 7

// StateNames maps two-letter jurisdiction codes to registering states.
var StateNames = map[string]string{
	"LA": "Lagos",
	"KD": "Kaduna",
	"AB": "Abuja",
	"OG": "Ogun",
	"RI": "Rivers",
	"KT": "Katsina",
	"KN": "Kano",
	"FC": "Federal",
	"FG": "Federal",
}

// StateName resolves a jurisdiction code to its state name, or
// "Unknown" for codes outside the table.
func StateName(code string) string {
	if name, ok := StateNames[code]; ok {
		return name
	}
	return "Unknown"
}
