// Package extract runs the page-by-page recipe extraction pipeline for
// one cookbook PDF: text extraction, page classification, recipe
// assembly, TOC mapping, and persistence.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/yeschef/hungie/internal/heuristic"
	"github.com/yeschef/hungie/internal/pdftext"
	"github.com/yeschef/hungie/internal/ruleset"
	"github.com/yeschef/hungie/internal/store"
	"github.com/yeschef/hungie/internal/tocmap"
)

// Options tunes one extraction run.
type Options struct {
	// BookTitle overrides the title derived from the PDF filename.
	BookTitle string
	// DryRun skips all database writes.
	DryRun bool
}

// Pipeline orchestrates one extraction run at a time. It is not safe for
// concurrent use; callers run books sequentially.
type Pipeline struct {
	store  *store.Store
	rules  *ruleset.Ruleset
	logger *slog.Logger
}

// New creates a Pipeline. store may be nil only for dry runs.
func New(st *store.Store, r *ruleset.Ruleset, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{store: st, rules: r, logger: logger}
}

// Run extracts recipes from the PDF at path and persists them. path may
// also be a directory of multi-part PDFs (book-1.pdf, book-2.pdf, ...),
// which are read as one continuous page space.
func (p *Pipeline) Run(ctx context.Context, pdfPath string, opts Options) (*RunStats, error) {
	pages, err := p.loadPages(pdfPath)
	if err != nil {
		return nil, err
	}

	book := &store.Book{
		Title:      opts.BookTitle,
		SourcePath: pdfPath,
		PageCount:  len(pages),
		Status:     store.BookProcessing,
	}
	if book.Title == "" {
		book.Title = titleFromPath(pdfPath)
	}

	if !opts.DryRun {
		if err := p.store.CreateBook(ctx, book); err != nil {
			return nil, err
		}
	}

	stats := p.ProcessPages(ctx, book, pages, opts)

	if !opts.DryRun {
		status := store.BookDone
		if stats.PagesFailed == stats.PagesScanned && stats.PagesScanned > 0 {
			status = store.BookFailed
		}
		if err := p.store.SetBookStatus(ctx, book.ID, status, len(pages)); err != nil {
			p.logger.Error("failed to update book status",
				"book_id", book.ID,
				"error", err)
		}
	}
	return stats, nil
}

// ProcessPages runs classification, recipe assembly, and TOC mapping over
// already-extracted page text. Per-page failures are logged and counted,
// never escalated.
func (p *Pipeline) ProcessPages(ctx context.Context, book *store.Book, pages []pdftext.PageText, opts Options) *RunStats {
	start := time.Now()
	stats := newRunStats(book.SourcePath)
	stats.BookID = book.ID

	labels := make(map[int]heuristic.Label, len(pages))
	confidences := make(map[int]float64, len(pages))
	pageText := make(map[int]string, len(pages))

	// Pass 1: classify every page.
	for _, pg := range pages {
		stats.PagesScanned++
		if pg.Err != nil {
			stats.PagesFailed++
			p.logger.Warn("skipping unreadable page",
				"page", pg.Num,
				"error", pg.Err)
			continue
		}
		c := heuristic.Classify(p.rules, pg.Text)
		pageText[pg.Num] = pg.Text
		labels[pg.Num] = c.Label
		confidences[pg.Num] = c.Confidence
		stats.PagesByLabel[c.Label]++
	}

	tocRange := p.tocRange(pages, labels)

	// Pass 2: assemble recipe candidates across pages.
	tracker := heuristic.NewTracker(p.rules)
	var candidates []*heuristic.Candidate
	for _, pg := range pages {
		if pg.Err != nil {
			continue
		}
		if done := tracker.Page(pg.Num, labels[pg.Num], pg.Text); done != nil {
			candidates = append(candidates, done)
		}
	}
	if done := tracker.Finish(); done != nil {
		candidates = append(candidates, done)
	}

	for _, cand := range candidates {
		stats.CandidatesFound++
		if !cand.IsValid {
			stats.reject(cand.RejectReason)
			p.logger.Debug("candidate rejected",
				"title", cand.Title,
				"page", cand.StartPage,
				"reason", cand.RejectReason)
			continue
		}
		stats.CandidatesValid++

		if opts.DryRun {
			continue
		}
		recipe := p.buildRecipe(book, cand, confidences[cand.StartPage], pageText[cand.StartPage])
		if err := p.store.InsertRecipe(ctx, recipe); err != nil {
			p.logger.Error("failed to persist recipe",
				"title", recipe.Title,
				"page", recipe.PageNumber,
				"error", err)
			continue
		}
		stats.RecipesPersisted++
	}

	// Pass 3: parse TOC entries and map them to physical pages.
	entries := p.parseTOC(pages, labels, tocRange)
	stats.TOCEntries = len(entries)
	if len(entries) > 0 {
		mapped, unmapped := tocmap.MapAll(p.rules, entries, pages, tocRange)
		stats.TOCMapped = len(mapped)
		stats.TOCUnmapped = len(unmapped)
		for _, title := range unmapped {
			p.logger.Debug("toc entry unmapped", "title", title)
		}
		if !opts.DryRun && len(mapped) > 0 {
			mappings := make([]store.TOCMapping, len(mapped))
			for i, m := range mapped {
				mappings[i] = store.TOCMapping{
					BookID:     book.ID,
					Title:      m.Title,
					PageNumber: m.Page,
					Confidence: m.Confidence,
					Fuzzy:      m.Fuzzy,
				}
			}
			if err := p.store.SaveTOCMappings(ctx, book.ID, mappings); err != nil {
				p.logger.Error("failed to persist toc mappings",
					"book_id", book.ID,
					"error", err)
			}
		}
	}

	stats.Duration = time.Since(start)
	p.logger.Info("extraction run finished",
		"book_id", book.ID,
		"pages", stats.PagesScanned,
		"recipes", stats.CandidatesValid,
		"toc_mapped", stats.TOCMapped,
		"duration", stats.Duration)
	return stats
}

// loadPages extracts page text from a single PDF, or from every part of a
// multi-part book when path is a directory.
func (p *Pipeline) loadPages(pdfPath string) ([]pdftext.PageText, error) {
	info, err := os.Stat(pdfPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := pdftext.Validate(pdfPath); err != nil {
			return nil, fmt.Errorf("pdf validation failed: %w", err)
		}
		pages, err := pdftext.ExtractPages(pdfPath, 0, p.logger)
		if err != nil {
			return nil, fmt.Errorf("text extraction failed: %w", err)
		}
		return pages, nil
	}

	matches, err := filepath.Glob(filepath.Join(pdfPath, "*.pdf"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no pdf files in %s", pdfPath)
	}
	parts, err := pdftext.BuildParts(matches)
	if err != nil {
		return nil, err
	}
	p.logger.Info("multi-part book",
		"dir", pdfPath,
		"parts", len(parts),
		"pages", parts.TotalPages())
	pages, err := parts.ExtractAll(p.logger)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	return pages, nil
}

// tocRange returns the TOC's own page range: pinned by the ruleset when
// set, otherwise the span of TOC-classified pages.
func (p *Pipeline) tocRange(pages []pdftext.PageText, labels map[int]heuristic.Label) tocmap.PageRange {
	if p.rules.TOC.StartPage > 0 {
		end := p.rules.TOC.EndPage
		if end < p.rules.TOC.StartPage {
			end = p.rules.TOC.StartPage
		}
		return tocmap.PageRange{Start: p.rules.TOC.StartPage, End: end}
	}

	var r tocmap.PageRange
	for _, pg := range pages {
		if labels[pg.Num] != heuristic.LabelTOC {
			continue
		}
		if r.Start == 0 || pg.Num < r.Start {
			r.Start = pg.Num
		}
		if pg.Num > r.End {
			r.End = pg.Num
		}
	}
	return r
}

// parseTOC pulls TOC entries from every page inside the TOC range (or
// every TOC-classified page when no range was found).
func (p *Pipeline) parseTOC(pages []pdftext.PageText, labels map[int]heuristic.Label, tocRange tocmap.PageRange) []tocmap.Entry {
	var entries []tocmap.Entry
	seen := make(map[string]bool)
	for _, pg := range pages {
		if pg.Err != nil {
			continue
		}
		inRange := tocRange.Contains(pg.Num)
		if !inRange && labels[pg.Num] != heuristic.LabelTOC {
			continue
		}
		for _, e := range tocmap.ParseEntries(pg.Num, pg.Text) {
			key := strings.ToLower(e.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, e)
		}
	}
	return entries
}

var (
	servingsRe  = regexp.MustCompile(`(?i)\b(?:serves|makes)\b[:\s]*([^\n]{1,40})`)
	totalTimeRe = regexp.MustCompile(`(?i)\btotal time\b[:\s]*([^\n]{1,40})`)
)

// buildRecipe converts a validated candidate into a storable recipe,
// applying the ruleset's artifact cleanup to both text blocks. Servings
// and timing live outside the marker-delimited sections, so they are
// scraped from the raw text of the recipe's start page.
func (p *Pipeline) buildRecipe(book *store.Book, cand *heuristic.Candidate, confidence float64, startPageText string) *store.Recipe {
	r := &store.Recipe{
		BookID:       book.ID,
		Title:        cand.Title,
		Ingredients:  strings.TrimSpace(p.rules.CleanText(cand.Ingredients)),
		Instructions: strings.TrimSpace(p.rules.CleanText(cand.Instructions)),
		Source:       book.Title,
		PageNumber:   cand.StartPage,
		Confidence:   confidence,
	}
	if m := servingsRe.FindStringSubmatch(startPageText); m != nil {
		r.Servings = strings.TrimSpace(m[1])
	}
	if m := totalTimeRe.FindStringSubmatch(startPageText); m != nil {
		r.TotalTime = strings.TrimSpace(m[1])
	}
	return r
}

// titleFromPath derives a book title from the PDF filename.
func titleFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.TrimSpace(base)
}
