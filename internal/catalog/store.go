// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists the document catalog and landmark timeline
// entries in SQLite, and maintains the FTS5 text index the fuzzy matcher
// searches.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/broepke/ortho-catalog/pkg/types"
)

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at dbPath, creating the
// schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join("catalog", "ortho.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL,
			file_path TEXT NOT NULL UNIQUE,
			size INTEGER NOT NULL DEFAULT 0,
			title TEXT,
			author TEXT,
			year INTEGER,
			journal TEXT,
			subspecialty TEXT NOT NULL,
			type TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents(filename)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_subspecialty ON documents(subspecialty)`,
		`CREATE TABLE IF NOT EXISTS landmarks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			year INTEGER NOT NULL,
			author TEXT NOT NULL,
			journal TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			subspecialty TEXT NOT NULL,
			display_order INTEGER NOT NULL,
			document_id INTEGER REFERENCES documents(id),
			match_confidence REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_landmarks_subspecialty ON landmarks(subspecialty)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over the searchable document fields, kept in
	// sync with triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='documents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE documents_fts USING fts5(
				filename, title, author, journal,
				content=documents, content_rowid=id)`,
			`CREATE TRIGGER documents_ai AFTER INSERT ON documents BEGIN
				INSERT INTO documents_fts(rowid, filename, title, author, journal)
				VALUES (new.id, new.filename, new.title, new.author, new.journal);
			END`,
			`CREATE TRIGGER documents_ad AFTER DELETE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, filename, title, author, journal)
				VALUES('delete', old.id, old.filename, old.title, old.author, old.journal);
			END`,
			`CREATE TRIGGER documents_au AFTER UPDATE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, filename, title, author, journal)
				VALUES('delete', old.id, old.filename, old.title, old.author, old.journal);
				INSERT INTO documents_fts(rowid, filename, title, author, journal)
				VALUES (new.id, new.filename, new.title, new.author, new.journal);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// UpsertDocument inserts a document record or updates the existing one
// with the same file path, returning the row ID.
func (s *Store) UpsertDocument(ctx context.Context, d *types.Document) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (filename, file_path, size, title, author, year, journal, subspecialty, type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_path) DO UPDATE SET
			filename=excluded.filename, size=excluded.size, title=excluded.title,
			author=excluded.author, year=excluded.year, journal=excluded.journal,
			subspecialty=excluded.subspecialty, type=excluded.type`,
		d.Filename, d.FilePath, d.Size, nullStr(d.Title), nullStr(d.Author),
		nullInt(d.Year), nullStr(d.Journal), string(d.Subspecialty), string(d.Type),
	)
	if err != nil {
		return 0, fmt.Errorf("upserting document %s: %w", d.FilePath, err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM documents WHERE file_path = ?`, d.FilePath,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reading document id: %w", err)
	}
	d.ID = id
	return id, nil
}

// UpdateDocument rewrites a document's name, path, and metadata after a
// rename. Empty metadata fields leave the stored values untouched.
func (s *Store) UpdateDocument(ctx context.Context, id int64, newFilename, newPath string, md types.Metadata) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE documents SET
			filename = ?,
			file_path = ?,
			author = COALESCE(NULLIF(?, ''), author),
			year = COALESCE(NULLIF(?, 0), year),
			journal = COALESCE(NULLIF(?, ''), journal),
			title = COALESCE(NULLIF(?, ''), title)
		 WHERE id = ?`,
		newFilename, newPath, md.Author, md.Year, md.Journal, md.Title, id,
	)
	if err != nil {
		return fmt.Errorf("updating document %d: %w", id, err)
	}
	return nil
}

// ListDocuments returns catalog records, optionally filtered by
// subspecialty, ordered by file path.
func (s *Store) ListDocuments(ctx context.Context, sub types.Subspecialty) ([]types.Document, error) {
	query := `SELECT id, filename, file_path, size, title, author, year, journal, subspecialty, type
		FROM documents`
	var args []any
	if sub != "" {
		query += ` WHERE subspecialty = ?`
		args = append(args, string(sub))
	}
	query += ` ORDER BY file_path`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// FindByFilename returns the first document with the given current
// filename, or nil when absent.
func (s *Store) FindByFilename(ctx context.Context, name string) (*types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, file_path, size, title, author, year, journal, subspecialty, type
		 FROM documents WHERE filename = ? ORDER BY id LIMIT 1`, name)
	if err != nil {
		return nil, fmt.Errorf("finding document %s: %w", name, err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// FindByPath returns the document at the given relative path, or nil
// when absent.
func (s *Store) FindByPath(ctx context.Context, path string) (*types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, file_path, size, title, author, year, journal, subspecialty, type
		 FROM documents WHERE file_path = ? LIMIT 1`, path)
	if err != nil {
		return nil, fmt.Errorf("finding document at %s: %w", path, err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// ClearDocuments removes every document record. The FTS index follows
// via the delete trigger.
func (s *Store) ClearDocuments(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	return nil
}

func scanDocuments(rows *sql.Rows) ([]types.Document, error) {
	var docs []types.Document
	for rows.Next() {
		var (
			d       types.Document
			title   sql.NullString
			author  sql.NullString
			year    sql.NullInt64
			journal sql.NullString
			sub     string
			typ     string
		)
		if err := rows.Scan(&d.ID, &d.Filename, &d.FilePath, &d.Size,
			&title, &author, &year, &journal, &sub, &typ); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		d.Title = title.String
		d.Author = author.String
		d.Year = int(year.Int64)
		d.Journal = journal.String
		d.Subspecialty = types.Subspecialty(sub)
		d.Type = types.DocumentType(typ)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
