package store

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), slog.Default())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedBook(t *testing.T, s *Store) *Book {
	t.Helper()
	b := &Book{Title: "Big Test Cookbook", SourcePath: "/tmp/book.pdf", PageCount: 42}
	if err := s.CreateBook(context.Background(), b); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	return b
}

func TestBookLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	b := seedBook(t, s)
	if b.ID == "" {
		t.Fatal("expected generated book ID")
	}
	if b.Status != BookPending {
		t.Errorf("status = %q, want pending", b.Status)
	}

	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if got.Title != b.Title || got.PageCount != 42 {
		t.Errorf("got %+v, want title/pages from %+v", got, b)
	}

	if err := s.SetBookStatus(ctx, b.ID, BookDone, 100); err != nil {
		t.Fatalf("SetBookStatus: %v", err)
	}
	got, _ = s.GetBook(ctx, b.ID)
	if got.Status != BookDone || got.PageCount != 100 {
		t.Errorf("after update got %+v", got)
	}

	books, err := s.ListBooks(ctx)
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(books) != 1 {
		t.Errorf("ListBooks returned %d books, want 1", len(books))
	}
}

func TestGetBook_Missing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetBook(context.Background(), "no-such-id"); err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestRecipeInsertAndSearch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	b := seedBook(t, s)

	recipes := []Recipe{
		{BookID: b.ID, Title: "Honey Butter Biscuits", Ingredients: "2 cups flour\n1 stick butter\nhoney", Instructions: "Mix and bake.", PageNumber: 14, Confidence: 0.92},
		{BookID: b.ID, Title: "Roast Chicken", Ingredients: "1 whole chicken\nsalt", Instructions: "Roast at 425.", PageNumber: 88, Confidence: 0.81},
	}
	for i := range recipes {
		if err := s.InsertRecipe(ctx, &recipes[i]); err != nil {
			t.Fatalf("InsertRecipe: %v", err)
		}
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := s.GetRecipe(ctx, recipes[0].ID)
		if err != nil {
			t.Fatalf("GetRecipe: %v", err)
		}
		if got.Title != "Honey Butter Biscuits" || got.PageNumber != 14 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("search title", func(t *testing.T) {
		found, err := s.Search(ctx, "Biscuit", 10)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(found) != 1 || found[0].Title != "Honey Butter Biscuits" {
			t.Errorf("found %+v", found)
		}
	})

	t.Run("search ingredients", func(t *testing.T) {
		found, err := s.Search(ctx, "whole chicken", 10)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(found) != 1 || found[0].Title != "Roast Chicken" {
			t.Errorf("found %+v", found)
		}
	})

	t.Run("search no hits", func(t *testing.T) {
		found, err := s.Search(ctx, "octopus", 10)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(found) != 0 {
			t.Errorf("found %+v, want none", found)
		}
	})

	t.Run("recipes for book", func(t *testing.T) {
		got, err := s.RecipesForBook(ctx, b.ID)
		if err != nil {
			t.Fatalf("RecipesForBook: %v", err)
		}
		if len(got) != 2 || got[0].PageNumber != 14 {
			t.Errorf("got %+v, want 2 recipes page-ordered", got)
		}
	})
}

func TestPurgeBookRecipes_Archives(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	b := seedBook(t, s)

	r := Recipe{BookID: b.ID, Title: "Doomed Recipe", Ingredients: "stuff", Instructions: "do things", PageNumber: 5}
	if err := s.InsertRecipe(ctx, &r); err != nil {
		t.Fatalf("InsertRecipe: %v", err)
	}

	archived, err := s.PurgeBookRecipes(ctx, b.ID)
	if err != nil {
		t.Fatalf("PurgeBookRecipes: %v", err)
	}
	if archived != 1 {
		t.Errorf("archived = %d, want 1", archived)
	}

	left, _ := s.RecipesForBook(ctx, b.ID)
	if len(left) != 0 {
		t.Errorf("recipes remain after purge: %+v", left)
	}

	counts, err := s.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if counts.Archived != 1 || counts.Recipes != 0 {
		t.Errorf("counts = %+v, want 1 archived, 0 live", counts)
	}
}

func TestSaveTOCMappings_Replaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	b := seedBook(t, s)

	first := []TOCMapping{
		{Title: "Pancakes", PageNumber: 14, Confidence: 0.95},
		{Title: "Waffles", PageNumber: 20, Confidence: 0.7, Fuzzy: true},
	}
	if err := s.SaveTOCMappings(ctx, b.ID, first); err != nil {
		t.Fatalf("SaveTOCMappings: %v", err)
	}

	second := []TOCMapping{{Title: "Pancakes", PageNumber: 15, Confidence: 0.9}}
	if err := s.SaveTOCMappings(ctx, b.ID, second); err != nil {
		t.Fatalf("SaveTOCMappings replace: %v", err)
	}

	got, err := s.TOCMappingsForBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("TOCMappingsForBook: %v", err)
	}
	if len(got) != 1 || got[0].PageNumber != 15 {
		t.Errorf("got %+v, want single replaced mapping", got)
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "test.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open with nested path: %v", err)
	}
	defer s.Close()

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
