package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateBook inserts a new book row. A missing ID is generated.
func (s *Store) CreateBook(ctx context.Context, b *Book) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	err := s.execWrite(ctx,
		`INSERT INTO books (id, title, source_path, page_count, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.SourcePath, b.PageCount, string(b.Status), b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// GetBook fetches a book by ID. Returns sql.ErrNoRows when absent.
func (s *Store) GetBook(ctx context.Context, id string) (*Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, source_path, page_count, status, created_at
		 FROM books WHERE id = ?`, id)
	return scanBook(row)
}

// ListBooks returns all books, newest first.
func (s *Store) ListBooks(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, source_path, page_count, status, created_at
		 FROM books ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

// SetBookStatus updates a book's lifecycle status and page count.
func (s *Store) SetBookStatus(ctx context.Context, id string, status BookStatus, pageCount int) error {
	err := s.execWrite(ctx,
		`UPDATE books SET status = ?, page_count = ? WHERE id = ?`,
		string(status), pageCount, id)
	if err != nil {
		return fmt.Errorf("failed to update book status: %w", err)
	}
	return nil
}

// PurgeBookRecipes archives a book's recipes into recipes_archive and
// then deletes them. Used before re-running extraction on a book so a
// bad run never silently destroys earlier results.
func (s *Store) PurgeBookRecipes(ctx context.Context, bookID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO recipes_archive
		   (id, book_id, title, ingredients, instructions, category,
		    servings, total_time, source, page_number, confidence, created_at)
		 SELECT id, book_id, title, ingredients, instructions, category,
		        servings, total_time, source, page_number, confidence, created_at
		 FROM recipes WHERE book_id = ?`, bookID)
	if err != nil {
		return 0, fmt.Errorf("failed to archive recipes: %w", err)
	}
	archived, _ := res.RowsAffected()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipes WHERE book_id = ?`, bookID); err != nil {
		return 0, fmt.Errorf("failed to delete recipes: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM toc_mappings WHERE book_id = ?`, bookID); err != nil {
		return 0, fmt.Errorf("failed to delete toc mappings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit archive transaction: %w", err)
	}

	if archived > 0 {
		s.logger.Info("archived recipes before purge",
			"book_id", bookID,
			"count", archived)
	}
	return int(archived), nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(r rowScanner) (*Book, error) {
	var b Book
	var status string
	if err := r.Scan(&b.ID, &b.Title, &b.SourcePath, &b.PageCount, &status, &b.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}
	b.Status = BookStatus(status)
	return &b, nil
}
