package store

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Books: one row per processed cookbook PDF
CREATE TABLE IF NOT EXISTS books (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    source_path TEXT NOT NULL,
    page_count INTEGER DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'pending',  -- pending, processing, done, failed
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_books_status ON books(status);

-- Recipes: extracted recipe candidates that passed validation
CREATE TABLE IF NOT EXISTS recipes (
    id TEXT PRIMARY KEY,
    book_id TEXT NOT NULL,
    title TEXT NOT NULL,
    ingredients TEXT NOT NULL,
    instructions TEXT NOT NULL,
    category TEXT,
    servings TEXT,
    total_time TEXT,
    source TEXT,
    page_number INTEGER,
    confidence REAL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (book_id) REFERENCES books(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_recipes_book ON recipes(book_id);
CREATE INDEX IF NOT EXISTS idx_recipes_title ON recipes(title);

-- Archive table: recipes are copied here before any bulk delete
CREATE TABLE IF NOT EXISTS recipes_archive (
    id TEXT NOT NULL,
    book_id TEXT NOT NULL,
    title TEXT NOT NULL,
    ingredients TEXT NOT NULL,
    instructions TEXT NOT NULL,
    category TEXT,
    servings TEXT,
    total_time TEXT,
    source TEXT,
    page_number INTEGER,
    confidence REAL,
    created_at TIMESTAMP,
    archived_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- TOC mappings: title -> physical page resolutions per book
CREATE TABLE IF NOT EXISTS toc_mappings (
    book_id TEXT NOT NULL,
    title TEXT NOT NULL,
    page_number INTEGER NOT NULL,
    confidence REAL NOT NULL,
    fuzzy BOOLEAN DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (book_id) REFERENCES books(id) ON DELETE CASCADE,
    UNIQUE(book_id, title)
);

CREATE INDEX IF NOT EXISTS idx_toc_book ON toc_mappings(book_id);
`
