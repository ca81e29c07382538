package extract

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yeschef/hungie/internal/heuristic"
)

// RunStats summarizes one extraction run. Every counter is best-effort:
// page failures are counted rather than aborting the run.
type RunStats struct {
	BookID  string `json:"bookId" yaml:"bookId"`
	PDFPath string `json:"pdfPath" yaml:"pdfPath"`

	PagesScanned int                     `json:"pagesScanned" yaml:"pagesScanned"`
	PagesFailed  int                     `json:"pagesFailed" yaml:"pagesFailed"`
	PagesByLabel map[heuristic.Label]int `json:"pagesByLabel" yaml:"pagesByLabel"`

	CandidatesFound int            `json:"candidatesFound" yaml:"candidatesFound"`
	CandidatesValid int            `json:"candidatesValid" yaml:"candidatesValid"`
	Rejections      map[string]int `json:"rejections" yaml:"rejections"`

	TOCEntries  int `json:"tocEntries" yaml:"tocEntries"`
	TOCMapped   int `json:"tocMapped" yaml:"tocMapped"`
	TOCUnmapped int `json:"tocUnmapped" yaml:"tocUnmapped"`

	RecipesPersisted int           `json:"recipesPersisted" yaml:"recipesPersisted"`
	Duration         time.Duration `json:"duration" yaml:"duration"`
}

func newRunStats(pdfPath string) *RunStats {
	return &RunStats{
		PDFPath:      pdfPath,
		PagesByLabel: make(map[heuristic.Label]int),
		Rejections:   make(map[string]int),
	}
}

func (s *RunStats) reject(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	s.Rejections[reason]++
}

// Summary renders the run for terminal output.
func (s *RunStats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extraction summary for %s\n", s.PDFPath)
	fmt.Fprintf(&b, "  pages scanned:    %d (%d failed)\n", s.PagesScanned, s.PagesFailed)

	labels := make([]string, 0, len(s.PagesByLabel))
	for l := range s.PagesByLabel {
		labels = append(labels, string(l))
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Fprintf(&b, "    %-16s%d\n", l+":", s.PagesByLabel[heuristic.Label(l)])
	}

	fmt.Fprintf(&b, "  candidates:       %d found, %d valid\n", s.CandidatesFound, s.CandidatesValid)
	if len(s.Rejections) > 0 {
		reasons := make([]string, 0, len(s.Rejections))
		for r := range s.Rejections {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			fmt.Fprintf(&b, "    rejected (%s): %d\n", r, s.Rejections[r])
		}
	}

	fmt.Fprintf(&b, "  toc entries:      %d (%d mapped, %d unmapped)\n",
		s.TOCEntries, s.TOCMapped, s.TOCUnmapped)
	fmt.Fprintf(&b, "  recipes stored:   %d\n", s.RecipesPersisted)
	fmt.Fprintf(&b, "  duration:         %s\n", s.Duration.Round(time.Millisecond))
	return b.String()
}
