package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const recipeColumns = `id, book_id, title, ingredients, instructions,
	category, servings, total_time, source, page_number, confidence, created_at`

// InsertRecipe persists one validated recipe. A missing ID is generated.
func (s *Store) InsertRecipe(ctx context.Context, r *Recipe) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	err := s.execWrite(ctx,
		`INSERT INTO recipes
		   (id, book_id, title, ingredients, instructions, category,
		    servings, total_time, source, page_number, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.BookID, r.Title, r.Ingredients, r.Instructions, r.Category,
		r.Servings, r.TotalTime, r.Source, r.PageNumber, r.Confidence, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// GetRecipe fetches a recipe by ID. Returns sql.ErrNoRows when absent.
func (s *Store) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	return scanRecipe(row)
}

// RecipesForBook returns a book's recipes ordered by page number.
func (s *Store) RecipesForBook(ctx context.Context, bookID string) ([]Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes
		 WHERE book_id = ? ORDER BY page_number, title`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return collectRecipes(rows)
}

// Search runs a keyword LIKE query over recipe titles and ingredients.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Recipe, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	pattern := "%" + query + "%"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes
		 WHERE title LIKE ? OR ingredients LIKE ?
		 ORDER BY title LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return collectRecipes(rows)
}

// SaveTOCMappings replaces a book's TOC mappings.
func (s *Store) SaveTOCMappings(ctx context.Context, bookID string, mappings []TOCMapping) error {
	if err := s.execWrite(ctx,
		`DELETE FROM toc_mappings WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("failed to clear toc mappings: %w", err)
	}
	for _, m := range mappings {
		if err := s.execWrite(ctx,
			`INSERT INTO toc_mappings (book_id, title, page_number, confidence, fuzzy)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(book_id, title) DO UPDATE SET
			   page_number = excluded.page_number,
			   confidence = excluded.confidence,
			   fuzzy = excluded.fuzzy`,
			bookID, m.Title, m.PageNumber, m.Confidence, m.Fuzzy); err != nil {
			return fmt.Errorf("failed to insert toc mapping %q: %w", m.Title, err)
		}
	}
	return nil
}

// TOCMappingsForBook returns a book's TOC mappings ordered by page.
func (s *Store) TOCMappingsForBook(ctx context.Context, bookID string) ([]TOCMapping, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id, title, page_number, confidence, fuzzy
		 FROM toc_mappings WHERE book_id = ? ORDER BY page_number`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list toc mappings: %w", err)
	}
	defer rows.Close()

	var mappings []TOCMapping
	for rows.Next() {
		var m TOCMapping
		if err := rows.Scan(&m.BookID, &m.Title, &m.PageNumber, &m.Confidence, &m.Fuzzy); err != nil {
			return nil, fmt.Errorf("failed to scan toc mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// CountAll returns row counts across the main tables.
func (s *Store) CountAll(ctx context.Context) (*Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"books", &c.Books},
		{"recipes", &c.Recipes},
		{"toc_mappings", &c.TOCMappings},
		{"recipes_archive", &c.Archived},
	} {
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM "+q.table).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", q.table, err)
		}
	}
	return &c, nil
}

func scanRecipe(r rowScanner) (*Recipe, error) {
	var rec Recipe
	var category, servings, totalTime, source sql.NullString
	err := r.Scan(&rec.ID, &rec.BookID, &rec.Title, &rec.Ingredients,
		&rec.Instructions, &category, &servings, &totalTime, &source,
		&rec.PageNumber, &rec.Confidence, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan recipe: %w", err)
	}
	rec.Category = category.String
	rec.Servings = servings.String
	rec.TotalTime = totalTime.String
	rec.Source = source.String
	return &rec, nil
}

func collectRecipes(rows *sql.Rows) ([]Recipe, error) {
	defer rows.Close()
	var recipes []Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}
