package extract

import (
	"context"

	"github.com/yeschef/hungie/internal/heuristic"
	"github.com/yeschef/hungie/internal/tocmap"
)

// TOCReport is the result of a mapping-only run: the TOC entries found
// in a PDF and where each one landed, with nothing persisted.
type TOCReport struct {
	PDFPath  string           `json:"pdfPath" yaml:"pdfPath"`
	TOCPages tocmap.PageRange `json:"tocPages" yaml:"tocPages"`
	Entries  int              `json:"entries" yaml:"entries"`
	Mapped   []tocmap.Mapping `json:"mapped" yaml:"mapped"`
	Unmapped []string         `json:"unmapped,omitempty" yaml:"unmapped,omitempty"`
}

// TOCReport runs extraction and TOC mapping without touching the store.
// Useful for tuning a ruleset against a new cookbook before committing
// to a full run.
func (p *Pipeline) TOCReport(ctx context.Context, pdfPath string) (*TOCReport, error) {
	pages, err := p.loadPages(pdfPath)
	if err != nil {
		return nil, err
	}

	labels := make(map[int]heuristic.Label, len(pages))
	for _, pg := range pages {
		if pg.Err != nil {
			continue
		}
		labels[pg.Num] = heuristic.Classify(p.rules, pg.Text).Label
	}

	tocRange := p.tocRange(pages, labels)
	entries := p.parseTOC(pages, labels, tocRange)
	mapped, unmapped := tocmap.MapAll(p.rules, entries, pages, tocRange)

	return &TOCReport{
		PDFPath:  pdfPath,
		TOCPages: tocRange,
		Entries:  len(entries),
		Mapped:   mapped,
		Unmapped: unmapped,
	}, nil
}
