// Package bibindex maintains an ephemeral SQLite index over a parsed
// bibliography for fast key and full-text queries. The .bib file is always
// the source of truth; the index is dropped and rebuilt from it on demand.
package bibindex

import (
	"database/sql"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/schedkit/syllabib/internal/apa"
	"github.com/schedkit/syllabib/internal/bib"
)

// DB wraps a SQLite index connection.
type DB struct {
	db *sql.DB
}

// Row is one indexed entry.
type Row struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Year    string `json:"year"`
	DOI     string `json:"doi,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Open opens or creates the index database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the index.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			year TEXT,
			doi TEXT,
			url TEXT
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			key,
			title,
			authors,
			year
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the index and repopulates it from parsed entries.
// Returns the number of entries indexed.
func (d *DB) Rebuild(entries map[string]bib.Entry) (int, error) {
	if _, err := d.db.Exec("DELETE FROM entries"); err != nil {
		return 0, fmt.Errorf("clearing entries: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM entries_fts"); err != nil {
		return 0, fmt.Errorf("clearing fts table: %w", err)
	}

	entryStmt, err := d.db.Prepare(`
		INSERT INTO entries (key, type, title, authors, year, doi, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer entryStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO entries_fts (key, title, authors, year)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	// Deterministic insert order makes rebuilds reproducible.
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	count := 0
	for _, k := range keys {
		row := toRow(entries[k])
		if _, err := entryStmt.Exec(row.Key, row.Type, row.Title, row.Authors, row.Year, row.DOI, row.URL); err != nil {
			return count, fmt.Errorf("inserting %s: %w", k, err)
		}
		if _, err := ftsStmt.Exec(row.Key, row.Title, row.Authors, row.Year); err != nil {
			return count, fmt.Errorf("indexing %s: %w", k, err)
		}
		count++
	}
	return count, nil
}

// GetByKey returns the indexed entry for a citation key, or nil if absent.
func (d *DB) GetByKey(key string) (*Row, error) {
	var row Row
	err := d.db.QueryRow(`
		SELECT key, type, title, authors, year, doi, url
		FROM entries WHERE key = ?
	`, key).Scan(&row.Key, &row.Type, &row.Title, &row.Authors, &row.Year, &row.DOI, &row.URL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", key, err)
	}
	return &row, nil
}

// Search runs a full-text query over key, title, authors, and year.
func (d *DB) Search(query string, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(`
		SELECT e.key, e.type, e.title, e.authors, e.year, e.doi, e.url
		FROM entries_fts f
		JOIN entries e ON e.key = f.key
		WHERE entries_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var results []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Key, &r.Type, &r.Title, &r.Authors, &r.Year, &r.DOI, &r.URL); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// toRow flattens an entry for indexing; the authors column carries the
// full APA author list so searches hit initials and prefixes.
func toRow(e bib.Entry) Row {
	var authors string
	if a := e.Field("author"); a != "" {
		authors = apa.FormatAuthors(a).Full
	}
	return Row{
		Key:     e.Key,
		Type:    e.Type,
		Title:   e.Field("title"),
		Authors: authors,
		Year:    apa.FormatYear(e),
		DOI:     e.Field("doi"),
		URL:     e.Field("url"),
	}
}
