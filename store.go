package seoblog

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// LedgerEntry is the persisted record of one published post.
type LedgerEntry struct {
	Filename        string
	Slug            string
	Date            string
	Title           string
	MetaDescription string
	Keyword         string
	Category        string
	PhotoURL        string
	PublishedAt     time.Time
}

// ScanRecord is the persisted summary of one corpus scan.
type ScanRecord struct {
	ID             int64
	Root           string
	Mode           string
	DryRun         bool
	Total          int
	Modified       int
	Warned         int
	AlreadyCorrect int
	Failed         int
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Store wraps a SQLite database recording published posts and scan runs.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    filename TEXT PRIMARY KEY,
    slug TEXT NOT NULL,
    date TEXT NOT NULL,
    title TEXT NOT NULL,
    meta_description TEXT NOT NULL,
    keyword TEXT NOT NULL,
    category TEXT NOT NULL,
    photo_url TEXT NOT NULL,
    published_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    root TEXT NOT NULL,
    mode TEXT NOT NULL,
    dry_run INTEGER NOT NULL,
    total INTEGER NOT NULL,
    modified INTEGER NOT NULL,
    warned INTEGER NOT NULL,
    already_correct INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    started_at INTEGER NOT NULL,
    finished_at INTEGER NOT NULL
);
`)
	return err
}

// SavePost upserts a ledger entry keyed by filename.
func (s *Store) SavePost(e LedgerEntry) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (filename, slug, date, title, meta_description, keyword, category, photo_url, published_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Filename, e.Slug, e.Date, e.Title, e.MetaDescription, e.Keyword, e.Category, e.PhotoURL, e.PublishedAt.Unix())
	return err
}

// GetPost returns the entry for filename, or sql.ErrNoRows.
func (s *Store) GetPost(filename string) (LedgerEntry, error) {
	row := s.db.QueryRow(`SELECT filename, slug, date, title, meta_description, keyword, category, photo_url, published_at FROM posts WHERE filename = ?`, filename)
	return scanEntry(row)
}

// ListPosts returns every entry ordered by date, newest first.
func (s *Store) ListPosts() ([]LedgerEntry, error) {
	rows, err := s.db.Query(`SELECT filename, slug, date, title, meta_description, keyword, category, photo_url, published_at FROM posts ORDER BY date DESC, published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (LedgerEntry, error) {
	var e LedgerEntry
	var published int64
	if err := r.Scan(&e.Filename, &e.Slug, &e.Date, &e.Title, &e.MetaDescription, &e.Keyword, &e.Category, &e.PhotoURL, &published); err != nil {
		return LedgerEntry{}, err
	}
	e.PublishedAt = time.Unix(published, 0).UTC()
	return e, nil
}

// RecordScan stores a scan summary and returns its id.
func (s *Store) RecordScan(r ScanRecord) (int64, error) {
	dry := 0
	if r.DryRun {
		dry = 1
	}
	res, err := s.db.Exec(`INSERT INTO scans (root, mode, dry_run, total, modified, warned, already_correct, failed, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Root, r.Mode, dry, r.Total, r.Modified, r.Warned, r.AlreadyCorrect, r.Failed, r.StartedAt.Unix(), r.FinishedAt.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListScans returns the most recent scans, newest first.
func (s *Store) ListScans(limit int) ([]ScanRecord, error) {
	rows, err := s.db.Query(`SELECT id, root, mode, dry_run, total, modified, warned, already_correct, failed, started_at, finished_at FROM scans ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []ScanRecord
	for rows.Next() {
		var r ScanRecord
		var dry int
		var started, finished int64
		if err := rows.Scan(&r.ID, &r.Root, &r.Mode, &dry, &r.Total, &r.Modified, &r.Warned, &r.AlreadyCorrect, &r.Failed, &started, &finished); err != nil {
			return nil, err
		}
		r.DryRun = dry == 1
		r.StartedAt = time.Unix(started, 0).UTC()
		r.FinishedAt = time.Unix(finished, 0).UTC()
		scans = append(scans, r)
	}
	return scans, rows.Err()
}

// EntryFor builds the ledger entry for a published post.
func EntryFor(p PublishedPost, at time.Time) LedgerEntry {
	return LedgerEntry{
		Filename:        p.Filename(),
		Slug:            p.Slug,
		Date:            DateKey(p.Date),
		Title:           p.Title,
		MetaDescription: p.MetaDescription,
		Keyword:         p.Keyword,
		Category:        p.Category,
		PhotoURL:        p.PhotoURL,
		PublishedAt:     at,
	}
}
