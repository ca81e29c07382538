package store

import "time"

// BookStatus tracks where a book is in the extraction lifecycle.
type BookStatus string

const (
	BookPending    BookStatus = "pending"
	BookProcessing BookStatus = "processing"
	BookDone       BookStatus = "done"
	BookFailed     BookStatus = "failed"
)

// Book is one processed cookbook PDF.
type Book struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	SourcePath string     `json:"sourcePath" yaml:"sourcePath"`
	PageCount  int        `json:"pageCount" yaml:"pageCount"`
	Status     BookStatus `json:"status" yaml:"status"`
	CreatedAt  time.Time  `json:"createdAt" yaml:"createdAt"`
}

// Recipe is an extracted recipe that passed validation.
type Recipe struct {
	ID           string    `json:"id" yaml:"id"`
	BookID       string    `json:"bookId" yaml:"bookId"`
	Title        string    `json:"title" yaml:"title"`
	Ingredients  string    `json:"ingredients" yaml:"ingredients"`
	Instructions string    `json:"instructions" yaml:"instructions"`
	Category     string    `json:"category,omitempty" yaml:"category,omitempty"`
	Servings     string    `json:"servings,omitempty" yaml:"servings,omitempty"`
	TotalTime    string    `json:"totalTime,omitempty" yaml:"totalTime,omitempty"`
	Source       string    `json:"source,omitempty" yaml:"source,omitempty"`
	PageNumber   int       `json:"pageNumber" yaml:"pageNumber"`
	Confidence   float64   `json:"confidence" yaml:"confidence"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

// TOCMapping records one title-to-page resolution for a book.
type TOCMapping struct {
	BookID     string  `json:"bookId" yaml:"bookId"`
	Title      string  `json:"title" yaml:"title"`
	PageNumber int     `json:"pageNumber" yaml:"pageNumber"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Fuzzy      bool    `json:"fuzzy" yaml:"fuzzy"`
}

// Counts summarizes the database contents.
type Counts struct {
	Books       int `json:"books" yaml:"books"`
	Recipes     int `json:"recipes" yaml:"recipes"`
	TOCMappings int `json:"tocMappings" yaml:"tocMappings"`
	Archived    int `json:"archived" yaml:"archived"`
}
