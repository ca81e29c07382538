package pdftext

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// PartInfo describes one PDF file of a multi-part book and its cumulative
// page range.
type PartInfo struct {
	Path      string
	StartPage int // 1-indexed, cumulative
	EndPage   int // inclusive
}

// PartList is a slice of PartInfo with helper methods.
type PartList []PartInfo

// TotalPages returns the page count across all parts.
func (parts PartList) TotalPages() int {
	if len(parts) == 0 {
		return 0
	}
	return parts[len(parts)-1].EndPage
}

// FindPartForPage returns the part path and page number within that part
// for a cumulative page number. Returns empty string and 0 if out of range.
func (parts PartList) FindPartForPage(pageNum int) (path string, pageInPart int) {
	for _, p := range parts {
		if pageNum >= p.StartPage && pageNum <= p.EndPage {
			return p.Path, pageNum - p.StartPage + 1
		}
	}
	return "", 0
}

// BuildParts sorts PDF paths by numeric suffix and assigns cumulative page
// ranges (e.g. book-1.pdf, book-2.pdf form one continuous page space).
func BuildParts(paths []string) (PartList, error) {
	sorted := sortPDFsByNumber(paths)

	var parts PartList
	cumulativePage := 1

	for _, path := range sorted {
		count, err := PageCount(path)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", path, err)
		}
		parts = append(parts, PartInfo{
			Path:      path,
			StartPage: cumulativePage,
			EndPage:   cumulativePage + count - 1,
		})
		cumulativePage += count
	}

	return parts, nil
}

// ExtractAll extracts text for every page of every part, in order, with
// cumulative page numbering.
func (parts PartList) ExtractAll(logger *slog.Logger) ([]PageText, error) {
	var all []PageText
	for _, p := range parts {
		pages, err := ExtractPages(p.Path, p.StartPage-1, logger)
		if err != nil {
			return nil, err
		}
		all = append(all, pages...)
	}
	return all, nil
}

// sortPDFsByNumber sorts PDF paths by their numeric suffix.
// e.g., ["book-2.pdf", "book-1.pdf", "book-10.pdf"] -> ["book-1.pdf", "book-2.pdf", "book-10.pdf"]
func sortPDFsByNumber(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	re := regexp.MustCompile(`-(\d+)\.pdf$`)

	sort.Slice(sorted, func(i, j int) bool {
		mi := re.FindStringSubmatch(strings.ToLower(sorted[i]))
		mj := re.FindStringSubmatch(strings.ToLower(sorted[j]))

		// If both have numbers, sort numerically
		if len(mi) > 1 && len(mj) > 1 {
			var ni, nj int
			fmt.Sscanf(mi[1], "%d", &ni)
			fmt.Sscanf(mj[1], "%d", &nj)
			return ni < nj
		}

		// Otherwise sort lexicographically
		return sorted[i] < sorted[j]
	})

	return sorted
}
