// Package pdftext extracts per-page plain text from PDF files.
package pdftext

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageText holds the extracted text of a single page.
// Pages that fail to extract carry Err and empty Text; the caller decides
// whether to skip them (the extraction pipeline always does).
type PageText struct {
	Num  int // 1-indexed, cumulative across multi-part books
	Text string
	Err  error
}

// PageCount returns the number of pages in a PDF.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return count, nil
}

// Validate checks that a file is a structurally readable PDF.
// A failure here is a hard error: the whole file is unusable (a corrupt
// individual page is not — that surfaces later as a per-page Err).
func Validate(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("unreadable PDF %s: %w", path, err)
	}
	return nil
}

// ExtractPages pulls plain text for every page of a PDF.
// pageOffset shifts output page numbers for multi-part books.
// Per-page failures are recorded on the PageText, never returned as an
// error; only a file that cannot be opened at all fails the call.
func ExtractPages(path string, pageOffset int, logger *slog.Logger) ([]PageText, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not read PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages := make([]PageText, 0, numPages)

	for i := 1; i <= numPages; i++ {
		pt := PageText{Num: pageOffset + i}
		pt.Text, pt.Err = extractPage(r, i)
		if pt.Err != nil {
			logger.Warn("page text extraction failed",
				"file", path, "page", pt.Num, "error", pt.Err)
		}
		pages = append(pages, pt)
	}

	return pages, nil
}

// extractPage pulls text for one page, converting library panics into
// errors. The underlying reader panics on some malformed content streams.
func extractPage(r *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("pdf reader panic on page %d: %v", pageNum, rec)
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d has no content", pageNum)
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
	}
	return text, nil
}
