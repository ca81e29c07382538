package heuristic

import (
	"strings"
	"testing"

	"github.com/yeschef/hungie/internal/ruleset"
)

func TestFindTitle(t *testing.T) {
	r := ruleset.Default()

	tests := []struct {
		name      string
		text      string
		wantTitle string
		wantOK    bool
	}{
		{
			name:      "first caps line wins",
			text:      "CLASSIC PANCAKES\nSome intro text\nANOTHER CAPS LINE",
			wantTitle: "CLASSIC PANCAKES",
			wantOK:    true,
		},
		{
			name:      "marker lines are not titles",
			text:      "PREPARE INGREDIENTS\n2 cups flour\nCHICKEN POT PIE",
			wantTitle: "CHICKEN POT PIE",
			wantOK:    true,
		},
		{
			name:   "too short rejected",
			text:   "PIE\nsome text",
			wantOK: false,
		},
		{
			name:   "too long rejected",
			text:   strings.Repeat("A", 61) + "\nsome text",
			wantOK: false,
		},
		{
			name:   "yield line is not a title",
			text:   "SERVES 4 TO 6 PEOPLE\nsome text",
			wantOK: false,
		},
		{
			name:   "no caps lines",
			text:   "just lowercase text\nmore text",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, ok := FindTitle(r, tt.text)
			if ok != tt.wantOK {
				t.Fatalf("FindTitle ok = %v, want %v (title %q)", ok, tt.wantOK, title)
			}
			if ok && title != tt.wantTitle {
				t.Errorf("FindTitle = %q, want %q", title, tt.wantTitle)
			}
		})
	}
}

// The ingredients output must be the verbatim substring strictly between
// the two marker phrases.
func TestSplitSections_VerbatimBetweenMarkers(t *testing.T) {
	r := ruleset.Default()

	ingredients := "\n2 cups flour\n1 teaspoon salt\n3 tablespoons butter\n"
	text := "HONEY BUTTER BISCUITS\nPREPARE INGREDIENTS" + ingredients +
		"START COOKING!\n1. Preheat oven to 425 degrees.\n2. Combine dry ingredients.\n"

	s := SplitSections(r, text)
	if !s.HasMarkers {
		t.Fatal("expected both markers found")
	}
	if s.Ingredients != ingredients {
		t.Errorf("ingredients not verbatim:\ngot  %q\nwant %q", s.Ingredients, ingredients)
	}
	if !strings.Contains(text, s.Ingredients) {
		t.Error("ingredients must be a substring of the page text")
	}
	if !strings.Contains(s.Instructions, "Preheat oven") {
		t.Errorf("instructions missing content: %q", s.Instructions)
	}
	if strings.Contains(s.Instructions, "START COOKING") {
		t.Error("instructions must not include the marker itself")
	}
}

func TestSplitSections_InstructionsStopAtNextCapsBlock(t *testing.T) {
	r := ruleset.Default()

	text := "PREPARE INGREDIENTS\n2 cups flour\nSTART COOKING!\n" +
		"1. Mix everything together.\n2. Bake until done.\nNEXT RECIPE TITLE\nmore text"

	s := SplitSections(r, text)
	if strings.Contains(s.Instructions, "NEXT RECIPE TITLE") {
		t.Errorf("instructions should stop at next caps block: %q", s.Instructions)
	}
	if !strings.Contains(s.Instructions, "Bake until done") {
		t.Errorf("instructions truncated too early: %q", s.Instructions)
	}
}

func TestSplitSections_SingleMarker(t *testing.T) {
	r := ruleset.Default()

	t.Run("only ingredients marker", func(t *testing.T) {
		s := SplitSections(r, "PREPARE INGREDIENTS\n2 cups flour\n1 cup milk")
		if s.HasMarkers {
			t.Error("HasMarkers should be false with one marker")
		}
		if !strings.Contains(s.Ingredients, "2 cups flour") {
			t.Errorf("expected partial ingredients, got %q", s.Ingredients)
		}
	})

	t.Run("no markers", func(t *testing.T) {
		s := SplitSections(r, "just some narrative text")
		if s.HasMarkers || s.Ingredients != "" || s.Instructions != "" {
			t.Errorf("expected empty sections, got %+v", s)
		}
	})
}

func TestValidate(t *testing.T) {
	r := ruleset.Default()

	longIng := "2 cups flour, 1 teaspoon salt, 3 tablespoons butter"
	longIns := "Mix everything together and bake until golden brown."

	tests := []struct {
		name       string
		cand       Candidate
		wantValid  bool
		wantReason string
	}{
		{
			name:      "valid recipe",
			cand:      Candidate{Title: "HONEY BISCUITS", Ingredients: longIng, Instructions: longIns},
			wantValid: true,
		},
		{
			name:       "both sections short fails regardless of title",
			cand:       Candidate{Title: "A PERFECTLY GOOD TITLE", Ingredients: "flour", Instructions: "bake"},
			wantValid:  false,
			wantReason: "sections too short",
		},
		{
			name:      "one long section passes",
			cand:      Candidate{Title: "HONEY BISCUITS", Ingredients: "x", Instructions: longIns},
			wantValid: true,
		},
		{
			name:       "missing title",
			cand:       Candidate{Ingredients: longIng, Instructions: longIns},
			wantValid:  false,
			wantReason: "no title",
		},
		{
			name:       "empty sections",
			cand:       Candidate{Title: "HONEY BISCUITS"},
			wantValid:  false,
			wantReason: "empty sections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Validate(r, &tt.cand)
			if tt.cand.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (reason %q)",
					tt.cand.IsValid, tt.wantValid, tt.cand.RejectReason)
			}
			if !tt.wantValid && tt.cand.RejectReason != tt.wantReason {
				t.Errorf("RejectReason = %q, want %q", tt.cand.RejectReason, tt.wantReason)
			}
		})
	}
}
