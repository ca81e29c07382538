package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yeschef/hungie/internal/heuristic"
	"github.com/yeschef/hungie/internal/pdftext"
	"github.com/yeschef/hungie/internal/ruleset"
	"github.com/yeschef/hungie/internal/store"
)

const tocPageText = `Contents
Honey Butter Biscuits ........... 2
Doomed Biscuits ........... 3
Roasted Phantom ........... 9
`

const goodRecipeText = `HONEY BUTTER BISCUITS
SERVES 4
Total time: 45 minutes
PREPARE INGREDIENTS
2 cups flour
1 teaspoon salt
8 tablespoons butter
1 cup honey
START COOKING!
Whisk the flour and salt together. Cut in the butter, stir in the honey,
and bake until golden brown.
`

// A recipe page whose sections are both under the validation minimum.
const shortRecipeText = `DOOMED BISCUITS
Total time: 5 minutes
PREPARE INGREDIENTS
1 cup doom
START COOKING!
Bake.
`

func testPages() []pdftext.PageText {
	return []pdftext.PageText{
		{Num: 1, Text: tocPageText},
		{Num: 2, Text: goodRecipeText},
		{Num: 3, Text: shortRecipeText},
		{Num: 4, Err: fmt.Errorf("unreadable page")},
	}
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"), slog.Default())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProcessPages(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	p := New(s, ruleset.Default(), slog.Default())

	book := &store.Book{Title: "Test Cookbook", SourcePath: "/tmp/test.pdf"}
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	stats := p.ProcessPages(ctx, book, testPages(), Options{})

	if stats.PagesScanned != 4 {
		t.Errorf("PagesScanned = %d, want 4", stats.PagesScanned)
	}
	if stats.PagesFailed != 1 {
		t.Errorf("PagesFailed = %d, want 1", stats.PagesFailed)
	}
	if got := stats.PagesByLabel[heuristic.LabelTOC]; got != 1 {
		t.Errorf("toc pages = %d, want 1", got)
	}
	if got := stats.PagesByLabel[heuristic.LabelRecipe]; got != 2 {
		t.Errorf("recipe pages = %d, want 2", got)
	}

	if stats.CandidatesFound != 2 {
		t.Errorf("CandidatesFound = %d, want 2", stats.CandidatesFound)
	}
	if stats.CandidatesValid != 1 {
		t.Errorf("CandidatesValid = %d, want 1", stats.CandidatesValid)
	}
	if got := stats.Rejections["sections too short"]; got != 1 {
		t.Errorf("Rejections = %v, want one 'sections too short'", stats.Rejections)
	}
	if stats.RecipesPersisted != 1 {
		t.Errorf("RecipesPersisted = %d, want 1", stats.RecipesPersisted)
	}

	if stats.TOCEntries != 3 {
		t.Errorf("TOCEntries = %d, want 3", stats.TOCEntries)
	}
	if stats.TOCMapped != 2 {
		t.Errorf("TOCMapped = %d, want 2", stats.TOCMapped)
	}
	if stats.TOCUnmapped != 1 {
		t.Errorf("TOCUnmapped = %d, want 1", stats.TOCUnmapped)
	}

	recipes, err := s.RecipesForBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("RecipesForBook: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("stored %d recipes, want 1", len(recipes))
	}
	r := recipes[0]
	if r.Title != "HONEY BUTTER BISCUITS" {
		t.Errorf("title = %q", r.Title)
	}
	if r.PageNumber != 2 {
		t.Errorf("page = %d, want 2", r.PageNumber)
	}
	if r.Servings != "4" {
		t.Errorf("servings = %q, want 4", r.Servings)
	}
	if r.TotalTime != "45 minutes" {
		t.Errorf("total time = %q, want 45 minutes", r.TotalTime)
	}
	if r.Source != "Test Cookbook" {
		t.Errorf("source = %q", r.Source)
	}

	mappings, err := s.TOCMappingsForBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("TOCMappingsForBook: %v", err)
	}
	if len(mappings) != 2 {
		t.Fatalf("stored %d toc mappings, want 2: %+v", len(mappings), mappings)
	}
	for _, m := range mappings {
		if m.PageNumber == 1 {
			t.Errorf("mapping %q resolved to the TOC's own page", m.Title)
		}
	}
}

func TestProcessPages_DryRun(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	p := New(nil, ruleset.Default(), slog.Default())

	book := &store.Book{ID: "dry", Title: "Dry Run", SourcePath: "/tmp/dry.pdf"}
	stats := p.ProcessPages(ctx, book, testPages(), Options{DryRun: true})

	if stats.CandidatesValid != 1 {
		t.Errorf("CandidatesValid = %d, want 1", stats.CandidatesValid)
	}
	if stats.RecipesPersisted != 0 {
		t.Errorf("RecipesPersisted = %d, want 0 in dry run", stats.RecipesPersisted)
	}

	// Nothing should have been written anywhere.
	counts, err := s.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if counts.Recipes != 0 || counts.TOCMappings != 0 {
		t.Errorf("dry run wrote rows: %+v", counts)
	}
}

func TestProcessPages_PinnedTOCRange(t *testing.T) {
	ctx := context.Background()
	r := ruleset.Default()
	r.TOC.StartPage = 1
	r.TOC.EndPage = 1

	p := New(nil, r, slog.Default())
	book := &store.Book{ID: "pinned", SourcePath: "/tmp/pinned.pdf"}

	// Even without any TOC-classified page, the pinned range is honored.
	pages := []pdftext.PageText{
		{Num: 1, Text: "Honey Butter Biscuits   2"},
		{Num: 2, Text: goodRecipeText},
	}
	stats := p.ProcessPages(ctx, book, pages, Options{DryRun: true})

	if stats.TOCEntries != 1 {
		t.Errorf("TOCEntries = %d, want 1", stats.TOCEntries)
	}
	if stats.TOCMapped != 1 {
		t.Errorf("TOCMapped = %d, want 1", stats.TOCMapped)
	}
}

func TestRunStats_Summary(t *testing.T) {
	stats := newRunStats("/tmp/book.pdf")
	stats.PagesScanned = 10
	stats.PagesByLabel[heuristic.LabelRecipe] = 4
	stats.CandidatesFound = 4
	stats.CandidatesValid = 3
	stats.reject("no title")

	out := stats.Summary()
	for _, want := range []string{"/tmp/book.pdf", "pages scanned", "no title", "recipes stored"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/books/the-big-cookbook.pdf", "the big cookbook"},
		{"weeknight_dinners.pdf", "weeknight dinners"},
		{"Plain.pdf", "Plain"},
	}
	for _, tt := range tests {
		if got := titleFromPath(tt.path); got != tt.want {
			t.Errorf("titleFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
