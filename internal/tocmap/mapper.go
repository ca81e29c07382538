package tocmap

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yeschef/hungie/internal/pdftext"
	"github.com/yeschef/hungie/internal/ruleset"
)

// Mapping is the result of locating one TOC title in the book body.
type Mapping struct {
	Title      string  `json:"title"`
	Page       int     `json:"page"`
	Confidence float64 `json:"confidence"`
	// Fuzzy is true when the match came from the looser secondary pass.
	Fuzzy bool `json:"fuzzy,omitempty"`
}

// Scoring weights: an exact substring hit outranks a punctuation-stripped
// hit, which outranks fuzzy similarity.
const (
	exactWeight      = 0.9
	strippedWeight   = 0.7
	similarityWeight = 0.5
	overlapWeight    = 0.6
	positionBonusMax = 0.05

	// tocPenalty punishes matches on pages that themselves look like TOC
	// content, so a title is mapped to its recipe, not back into the TOC.
	tocPenalty = 0.1
)

var tocLeaderRe = regexp.MustCompile(`\.{3,}\s*\d+\s*$`)

// MapTitle searches pages for the best match of a TOC title, excluding the
// TOC's own page range. Returns nil when no page clears the thresholds —
// an unmapped title, never a low-confidence guess.
func MapTitle(r *ruleset.Ruleset, title string, pages []pdftext.PageText, exclude PageRange) *Mapping {
	best := scanPages(title, pages, exclude, false)
	if best != nil && best.Confidence >= r.TOC.MatchThreshold {
		return best
	}

	// Secondary fuzzy pass: simplified title, looser threshold.
	fuzzy := scanPages(title, pages, exclude, true)
	if fuzzy != nil && fuzzy.Confidence >= r.TOC.FuzzyThreshold {
		fuzzy.Fuzzy = true
		return fuzzy
	}

	return nil
}

// MapAll maps every entry, returning mappings keyed by title. Unmapped
// titles are returned separately.
func MapAll(r *ruleset.Ruleset, entries []Entry, pages []pdftext.PageText, exclude PageRange) (mapped []Mapping, unmapped []string) {
	for _, e := range entries {
		if m := MapTitle(r, e.Title, pages, exclude); m != nil {
			mapped = append(mapped, *m)
		} else {
			unmapped = append(unmapped, e.Title)
		}
	}
	return mapped, unmapped
}

// scanPages scores every candidate page and returns the best, or nil when
// no page scores above zero.
func scanPages(title string, pages []pdftext.PageText, exclude PageRange, fuzzy bool) *Mapping {
	var best *Mapping
	for i := range pages {
		p := &pages[i]
		if p.Err != nil || strings.TrimSpace(p.Text) == "" {
			continue
		}
		if exclude.Contains(p.Num) {
			continue
		}

		var score float64
		if fuzzy {
			score = fuzzyScore(title, p.Text)
		} else {
			score = pageScore(title, p.Text)
		}
		if score <= 0 {
			continue
		}

		if best == nil || score > best.Confidence {
			best = &Mapping{Title: title, Page: p.Num, Confidence: score}
		}
	}
	return best
}

// pageScore computes the primary-pass confidence that a page contains the
// title. The component scores are alternatives, not additive: the
// strongest indicator wins, then the TOC-content penalty applies.
func pageScore(title, pageText string) float64 {
	score := 0.0

	if idx := strings.Index(pageText, title); idx >= 0 {
		score = exactWeight + positionBonus(idx, len(pageText))
	} else {
		strippedTitle := stripPunct(title)
		strippedPage := stripPunct(pageText)
		if strippedTitle != "" && strings.Contains(strippedPage, strippedTitle) {
			score = strippedWeight
		} else {
			score = fuzzyScore(title, pageText)
		}
	}

	if looksLikeTOCContent(pageText) {
		score *= tocPenalty
	}
	return score
}

// fuzzyScore is the secondary-pass score: best per-line similarity ratio
// and word-overlap ratio, each capped by its weight.
func fuzzyScore(title, pageText string) float64 {
	normTitle := normalize(title)
	if normTitle == "" {
		return 0
	}

	bestRatio := 0.0
	for _, line := range strings.Split(pageText, "\n") {
		normLine := normalize(line)
		if normLine == "" {
			continue
		}
		if ratio := similarityRatio(normTitle, normLine); ratio > bestRatio {
			bestRatio = ratio
		}
	}

	overlap := wordOverlap(normTitle, normalize(pageText))

	score := bestRatio * similarityWeight
	if o := overlap * overlapWeight; o > score {
		score = o
	}

	if looksLikeTOCContent(pageText) {
		score *= tocPenalty
	}
	return score
}

// positionBonus rewards titles appearing near the top of the page, where
// recipe titles actually sit.
func positionBonus(idx, textLen int) float64 {
	if textLen == 0 {
		return 0
	}
	frac := float64(idx) / float64(textLen)
	return positionBonusMax * (1 - frac)
}

// looksLikeTOCContent reports whether a page resembles a table of contents
// (several dot-leader lines).
func looksLikeTOCContent(text string) bool {
	leaders := 0
	for _, line := range strings.Split(text, "\n") {
		if tocLeaderRe.MatchString(strings.TrimSpace(line)) {
			leaders++
			if leaders >= 2 {
				return true
			}
		}
	}
	return false
}

// similarityRatio is a character-level sequence-matching ratio in [0,1]:
// 2*LCS / (len(a)+len(b)).
func similarityRatio(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	lcs := lcsLength(a, b)
	return 2 * float64(lcs) / float64(len(a)+len(b))
}

// lcsLength computes longest-common-subsequence length with a rolling row.
func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// wordOverlap is the fraction of title words present in the page.
func wordOverlap(normTitle, normPage string) float64 {
	titleWords := strings.Fields(normTitle)
	if len(titleWords) == 0 {
		return 0
	}
	pageWords := make(map[string]bool)
	for _, w := range strings.Fields(normPage) {
		pageWords[w] = true
	}
	hits := 0
	for _, w := range titleWords {
		if pageWords[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(titleWords))
}

// normalize lowercases and strips punctuation for fuzzy comparison.
func normalize(s string) string {
	return strings.Join(strings.Fields(stripPunct(strings.ToLower(s))), " ")
}

// stripPunct removes everything but letters, digits, and spaces.
func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case unicode.IsLetter(c) || unicode.IsNumber(c):
			b.WriteRune(c)
		case unicode.IsSpace(c):
			b.WriteRune(' ')
		}
	}
	return b.String()
}
