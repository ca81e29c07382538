// Package ruleset holds per-cookbook extraction rules.
//
// Every heuristic constant the extractor uses — marker phrases, keyword
// sets, cleanup regexes, thresholds — lives in a Ruleset rather than in
// code, so supporting a new cookbook is a YAML file, not a fork of the
// extractor.
package ruleset

import (
	"fmt"
	"regexp"
)

// Ruleset describes how to extract recipes from one source cookbook.
type Ruleset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	Title      TitleRule      `yaml:"title"`
	Markers    Markers        `yaml:"markers"`
	Classifier ClassifierRule `yaml:"classifier"`
	Cleanup    []CleanupRule  `yaml:"cleanup,omitempty"`
	TOC        TOCRule        `yaml:"toc"`
	Validation ValidationRule `yaml:"validation"`

	// LookaheadPages is how many pages past a recipe's start the tracker
	// scans for spilled-over ingredients/instructions.
	LookaheadPages int `yaml:"lookahead_pages"`
}

// TitleRule bounds the title heuristic.
type TitleRule struct {
	MinLen int `yaml:"min_len"`
	MaxLen int `yaml:"max_len"`
	// ExcludeKeywords are ALL-CAPS lines that are never titles
	// (section markers, yield lines, etc).
	ExcludeKeywords []string `yaml:"exclude_keywords,omitempty"`
}

// Markers are the phrases that delimit recipe sections on a page.
type Markers struct {
	IngredientsStart  string `yaml:"ingredients_start"`
	InstructionsStart string `yaml:"instructions_start"`
}

// ClassifierRule holds the page classifier's keyword sets and weights.
type ClassifierRule struct {
	UnitKeywords   []string `yaml:"unit_keywords"`
	CookingVerbs   []string `yaml:"cooking_verbs"`
	YieldKeywords  []string `yaml:"yield_keywords"`
	TimingKeywords []string `yaml:"timing_keywords"`

	// MinPageChars is the threshold below which a page is classified empty.
	MinPageChars int `yaml:"min_page_chars"`

	Weights ClassifierWeights `yaml:"weights"`
}

// ClassifierWeights are the per-indicator contributions to classifier
// confidence.
type ClassifierWeights struct {
	Unit    float64 `yaml:"unit"`
	Verb    float64 `yaml:"verb"`
	Yield   float64 `yaml:"yield"`
	Timing  float64 `yaml:"timing"`
	Caps    float64 `yaml:"caps"`
	Leaders float64 `yaml:"leaders"`
}

// CleanupRule is one regex substitution applied to extracted text to fix
// a known PDF/OCR artifact of the source book.
type CleanupRule struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`

	re *regexp.Regexp
}

// Apply runs the substitution. Compile must have been called first.
func (c *CleanupRule) Apply(s string) string {
	if c.re == nil {
		return s
	}
	return c.re.ReplaceAllString(s, c.Replace)
}

// TOCRule configures table-of-contents mapping.
type TOCRule struct {
	// StartPage/EndPage pin the TOC's own page range (1-indexed, inclusive).
	// Zero means detect from classifier labels.
	StartPage int `yaml:"start_page"`
	EndPage   int `yaml:"end_page"`

	// MatchThreshold is the minimum confidence for the primary pass.
	MatchThreshold float64 `yaml:"match_threshold"`
	// FuzzyThreshold is the minimum confidence for the secondary pass.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// ValidationRule sets the minimum sizes for a recipe candidate to be kept.
type ValidationRule struct {
	MinIngredientsChars  int `yaml:"min_ingredients_chars"`
	MinInstructionsChars int `yaml:"min_instructions_chars"`
}

// Compile prepares the ruleset for use: compiles cleanup regexes and fills
// zero-valued fields from the default ruleset.
func (r *Ruleset) Compile() error {
	def := Default()

	if r.Title.MinLen == 0 {
		r.Title.MinLen = def.Title.MinLen
	}
	if r.Title.MaxLen == 0 {
		r.Title.MaxLen = def.Title.MaxLen
	}
	if r.Classifier.MinPageChars == 0 {
		r.Classifier.MinPageChars = def.Classifier.MinPageChars
	}
	if r.Classifier.Weights == (ClassifierWeights{}) {
		r.Classifier.Weights = def.Classifier.Weights
	}
	if r.TOC.MatchThreshold == 0 {
		r.TOC.MatchThreshold = def.TOC.MatchThreshold
	}
	if r.TOC.FuzzyThreshold == 0 {
		r.TOC.FuzzyThreshold = def.TOC.FuzzyThreshold
	}
	if r.Validation.MinIngredientsChars == 0 {
		r.Validation.MinIngredientsChars = def.Validation.MinIngredientsChars
	}
	if r.Validation.MinInstructionsChars == 0 {
		r.Validation.MinInstructionsChars = def.Validation.MinInstructionsChars
	}
	if r.LookaheadPages == 0 {
		r.LookaheadPages = def.LookaheadPages
	}

	for i := range r.Cleanup {
		re, err := regexp.Compile(r.Cleanup[i].Pattern)
		if err != nil {
			return fmt.Errorf("ruleset %q cleanup rule %d: %w", r.Name, i, err)
		}
		r.Cleanup[i].re = re
	}
	return nil
}

// CleanText applies every cleanup rule in order.
func (r *Ruleset) CleanText(s string) string {
	for i := range r.Cleanup {
		s = r.Cleanup[i].Apply(s)
	}
	return s
}
