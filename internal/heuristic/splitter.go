package heuristic

import (
	"strings"

	"github.com/yeschef/hungie/internal/ruleset"
)

// Candidate is a recipe candidate assembled from one or more pages.
// Section text is verbatim page text; artifact cleanup happens later,
// when the candidate is persisted.
type Candidate struct {
	Title        string
	Ingredients  string
	Instructions string
	StartPage    int

	IsValid      bool
	RejectReason string
}

// Sections is the result of splitting one page's text at the marker phrases.
type Sections struct {
	Ingredients  string // verbatim text strictly between the two markers
	Instructions string // text after the instructions marker
	// HasMarkers is true when both marker phrases were found in order.
	HasMarkers bool
}

// FindTitle locates a recipe title: the first ALL-CAPS line within the
// length bounds that is not a known non-title keyword line.
func FindTitle(r *ruleset.Ruleset, text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isAllCapsLine(line) {
			continue
		}
		if len(line) < r.Title.MinLen || len(line) > r.Title.MaxLen {
			continue
		}
		if containsAnyFold(line, r.Title.ExcludeKeywords) {
			continue
		}
		return line, true
	}
	return "", false
}

// SplitSections splits page text at the ruleset's marker phrases.
// Ingredients are the substring strictly between the two markers, verbatim.
func SplitSections(r *ruleset.Ruleset, text string) Sections {
	ingIdx := strings.Index(text, r.Markers.IngredientsStart)
	insIdx := strings.Index(text, r.Markers.InstructionsStart)

	var s Sections
	if ingIdx >= 0 && insIdx > ingIdx {
		s.HasMarkers = true
		s.Ingredients = text[ingIdx+len(r.Markers.IngredientsStart) : insIdx]
		s.Instructions = trimAtNextCapsBlock(r, text[insIdx+len(r.Markers.InstructionsStart):])
		return s
	}

	// Only one marker present: take what we can, the continuation tracker
	// may complete the recipe from following pages.
	if ingIdx >= 0 {
		s.Ingredients = text[ingIdx+len(r.Markers.IngredientsStart):]
	}
	if insIdx >= 0 {
		s.Instructions = trimAtNextCapsBlock(r, text[insIdx+len(r.Markers.InstructionsStart):])
	}
	return s
}

// trimAtNextCapsBlock cuts instruction text at the next ALL-CAPS block,
// which marks the start of the following recipe or section.
func trimAtNextCapsBlock(r *ruleset.Ruleset, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isAllCapsLine(trimmed) && len(trimmed) >= r.Title.MinLen {
			return strings.Join(lines[:i], "\n")
		}
	}
	return text
}

// Validate applies the ruleset's size rules and fills IsValid/RejectReason.
// A candidate whose ingredient AND instruction blocks are both under the
// minimum fails regardless of title quality.
func Validate(r *ruleset.Ruleset, c *Candidate) {
	ing := strings.TrimSpace(c.Ingredients)
	ins := strings.TrimSpace(c.Instructions)

	switch {
	case strings.TrimSpace(c.Title) == "":
		c.IsValid = false
		c.RejectReason = "no title"
	case ing == "" && ins == "":
		c.IsValid = false
		c.RejectReason = "empty sections"
	case len(ing) < r.Validation.MinIngredientsChars && len(ins) < r.Validation.MinInstructionsChars:
		c.IsValid = false
		c.RejectReason = "sections too short"
	default:
		c.IsValid = true
		c.RejectReason = ""
	}
}

// containsAnyFold reports whether s contains any keyword, case-insensitively.
func containsAnyFold(s string, keywords []string) bool {
	upper := strings.ToUpper(s)
	for _, kw := range keywords {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}
