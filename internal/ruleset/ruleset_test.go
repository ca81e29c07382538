package ruleset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	r := Default()

	if r.Name != DefaultName {
		t.Errorf("expected name %q, got %q", DefaultName, r.Name)
	}
	if r.Markers.IngredientsStart != "PREPARE INGREDIENTS" {
		t.Errorf("unexpected ingredients marker: %q", r.Markers.IngredientsStart)
	}
	if r.Markers.InstructionsStart != "START COOKING!" {
		t.Errorf("unexpected instructions marker: %q", r.Markers.InstructionsStart)
	}
	if r.TOC.MatchThreshold != 0.6 || r.TOC.FuzzyThreshold != 0.4 {
		t.Errorf("unexpected TOC thresholds: %v / %v", r.TOC.MatchThreshold, r.TOC.FuzzyThreshold)
	}
	if r.Validation.MinIngredientsChars != 20 || r.Validation.MinInstructionsChars != 20 {
		t.Error("expected 20-char validation minimums")
	}
}

func TestRuleset_CleanText(t *testing.T) {
	r := Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "broken hyphenation",
			in:   "choco-\nlate chips",
			want: "chocolate chips",
		},
		{
			name: "missing space after period",
			in:   "bowl.Add the flour",
			want: "bowl. Add the flour",
		},
		{
			name: "number glued to unit",
			in:   "2cups sugar and 3tablespoons butter",
			want: "2 cups sugar and 3 tablespoons butter",
		},
		{
			name: "clean text untouched",
			in:   "Whisk eggs in a large bowl.",
			want: "Whisk eggs in a large bowl.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("valid ruleset", func(t *testing.T) {
		data := []byte(`
name: atk-teens
markers:
  ingredients_start: "PREPARE INGREDIENTS"
  instructions_start: "START COOKING!"
toc:
  start_page: 4
  end_page: 9
`)
		r, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if r.Name != "atk-teens" {
			t.Errorf("expected name atk-teens, got %s", r.Name)
		}
		if r.TOC.StartPage != 4 || r.TOC.EndPage != 9 {
			t.Errorf("unexpected TOC range: %d-%d", r.TOC.StartPage, r.TOC.EndPage)
		}
		// Zero-valued fields filled from defaults by Compile.
		if r.Title.MinLen != 5 || r.Title.MaxLen != 60 {
			t.Errorf("expected default title bounds, got %d-%d", r.Title.MinLen, r.Title.MaxLen)
		}
		if r.TOC.MatchThreshold != 0.6 {
			t.Errorf("expected default match threshold, got %v", r.TOC.MatchThreshold)
		}
	})

	t.Run("missing markers rejected", func(t *testing.T) {
		if _, err := Parse([]byte("name: nomarkers\n")); err == nil {
			t.Fatal("expected schema error for missing markers")
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		data := []byte(`
name: typo
markers:
  ingredients_start: "A"
  instructions_start: "B"
marker_phrases: []
`)
		if _, err := Parse(data); err == nil {
			t.Fatal("expected schema error for unknown key")
		}
	})

	t.Run("bad cleanup regex rejected", func(t *testing.T) {
		data := []byte(`
name: badre
markers:
  ingredients_start: "A"
  instructions_start: "B"
cleanup:
  - pattern: "(["
    replace: ""
`)
		if _, err := Parse(data); err == nil {
			t.Fatal("expected compile error for bad regex")
		}
	})
}

func TestStore_LoadDir(t *testing.T) {
	dir := t.TempDir()

	good := `
name: my-book
markers:
  ingredients_start: "INGREDIENTS"
  instructions_start: "METHOD"
`
	if err := os.WriteFile(filepath.Join(dir, "my-book.yaml"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-YAML files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if _, ok := s.Get("my-book"); !ok {
		t.Error("expected my-book ruleset to be registered")
	}
	if _, ok := s.Get(DefaultName); !ok {
		t.Error("expected built-in default to remain registered")
	}

	names := s.Names()
	if len(names) != 2 {
		t.Errorf("expected 2 rulesets, got %v", names)
	}
}

func TestStore_LoadDir_BadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	err := s.LoadDir(dir)
	if err == nil {
		t.Fatal("expected error for invalid ruleset file")
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("error should name the file, got: %v", err)
	}
}

func TestStore_LoadDir_MissingDir(t *testing.T) {
	s := NewStore()
	if err := s.LoadDir("/does/not/exist"); err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
}
