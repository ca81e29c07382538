// Package heuristic implements the rule-based page classification and
// recipe-splitting core. Everything here is a pure function of the page
// text and the active ruleset; no I/O, no hidden state.
package heuristic

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yeschef/hungie/internal/ruleset"
)

// Label is a page classification.
type Label string

const (
	LabelRecipe        Label = "recipe"
	LabelTOC           Label = "toc"
	LabelNarrative     Label = "narrative"
	LabelChapterHeader Label = "chapter_header"
	LabelEmpty         Label = "empty"
	LabelOther         Label = "other"
)

// Classification is a label plus a heuristic confidence in [0,1].
// The confidence is a weighted indicator sum, not a calibrated probability.
type Classification struct {
	Label      Label
	Confidence float64
}

// dotLeaderRe matches a TOC line: text, a run of leader dots, a page number.
var dotLeaderRe = regexp.MustCompile(`\.{3,}\s*\d+\s*$`)

// Classify labels a page of text. Identical input always yields identical
// output.
func Classify(r *ruleset.Ruleset, text string) Classification {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < r.Classifier.MinPageChars {
		return Classification{Label: LabelEmpty, Confidence: 1.0}
	}

	lower := strings.ToLower(trimmed)
	words := strings.Fields(trimmed)

	unitHits := countKeywordHits(lower, r.Classifier.UnitKeywords)
	verbHits := countKeywordHits(lower, r.Classifier.CookingVerbs)

	// Timing keywords are phrases ("total time"), so substring counting.
	timingHits := 0
	for _, kw := range r.Classifier.TimingKeywords {
		timingHits += strings.Count(lower, strings.ToLower(kw))
	}

	yieldHits := 0
	for _, kw := range r.Classifier.YieldKeywords {
		yieldHits += strings.Count(trimmed, kw)
	}

	leaderLines := 0
	capsLines := 0
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if dotLeaderRe.MatchString(line) {
			leaderLines++
		}
		if isAllCapsLine(line) && len(line) <= 60 {
			capsLines++
		}
	}

	w := r.Classifier.Weights
	recipeScore := clamp01(
		w.Unit*float64(unitHits) +
			w.Verb*float64(verbHits) +
			w.Yield*float64(yieldHits) +
			w.Timing*float64(timingHits) +
			w.Caps*float64(min(capsLines, 3)))

	tocScore := clamp01(w.Leaders * float64(leaderLines))

	switch {
	case leaderLines >= 3 || (tocScore >= 0.4 && tocScore >= recipeScore):
		return Classification{Label: LabelTOC, Confidence: tocScore}
	case recipeScore >= 0.35:
		return Classification{Label: LabelRecipe, Confidence: recipeScore}
	case len(words) < 30 && capsLines >= 1 && leaderLines == 0:
		return Classification{Label: LabelChapterHeader, Confidence: 0.5}
	case len(words) >= 60:
		return Classification{Label: LabelNarrative, Confidence: 0.5}
	default:
		return Classification{Label: LabelOther, Confidence: 0.2}
	}
}

// countKeywordHits counts whole-word occurrences of any keyword.
func countKeywordHits(lowerText string, keywords []string) int {
	hits := 0
	for _, field := range strings.FieldsFunc(lowerText, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c)
	}) {
		for _, kw := range keywords {
			if field == kw {
				hits++
				break
			}
		}
	}
	return hits
}

// isAllCapsLine reports whether a line contains letters and none of them
// are lowercase.
func isAllCapsLine(line string) bool {
	hasLetter := false
	for _, c := range line {
		if unicode.IsLower(c) {
			return false
		}
		if unicode.IsLetter(c) {
			hasLetter = true
		}
	}
	return hasLetter
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
