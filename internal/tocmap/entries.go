// Package tocmap parses table-of-contents entries and maps them to the
// pages their recipes actually appear on.
package tocmap

import (
	"regexp"
	"strconv"
	"strings"
)

// Entry is one table-of-contents line: a recipe title and the page number
// printed next to it. Entries are ephemeral; they only drive the mapping
// search.
type Entry struct {
	Title   string
	TOCPage int // the page the entry was read from, not the printed target
}

// PageRange is an inclusive 1-indexed page range.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether page falls inside the range.
func (r PageRange) Contains(page int) bool {
	return r.Start > 0 && page >= r.Start && page <= r.End
}

var (
	// "Classic Pancakes .............. 14"
	leaderEntryRe = regexp.MustCompile(`^(.*?)\s*\.{3,}\s*(\d{1,4})\s*$`)
	// "Classic Pancakes   14" (leaders lost by text extraction)
	bareEntryRe = regexp.MustCompile(`^(.+?)\s{2,}(\d{1,4})\s*$`)
)

// ParseEntries pulls TOC entries out of the text of one TOC page.
func ParseEntries(tocPage int, text string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := leaderEntryRe.FindStringSubmatch(line)
		if m == nil {
			m = bareEntryRe.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		title := strings.TrimSpace(m[1])
		if len(title) < 4 {
			continue
		}
		if _, err := strconv.Atoi(m[2]); err != nil {
			continue
		}

		entries = append(entries, Entry{Title: title, TOCPage: tocPage})
	}
	return entries
}
