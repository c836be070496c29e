package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS summaries (
		id TEXT PRIMARY KEY,
		userId TEXT NOT NULL,
		fileName TEXT NOT NULL,
		transcript TEXT NOT NULL,
		summary TEXT NOT NULL,
		createdAt REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_summaries_user ON summaries(userId, createdAt);
`

type sqliteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema. ":memory:" gives a private in-memory database.
func Open(path string) (Store, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single writer; also keeps one shared connection for :memory:.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &sqliteStore{db: db, now: time.Now}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) Create(ctx context.Context, userID, fileName, transcript, summary string) (Summary, error) {
	rec := Summary{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		Transcript: transcript,
		Summary:    summary,
		CreatedAt:  s.now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (id, userId, fileName, transcript, summary, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.FileName, rec.Transcript, rec.Summary, unixFromTime(rec.CreatedAt))
	if err != nil {
		return Summary{}, fmt.Errorf("insert summary: %w", err)
	}
	return rec, nil
}

// List returns the user's summaries, newest first.
func (s *sqliteStore) List(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, userId, fileName, transcript, summary, createdAt
		FROM summaries
		WHERE userId = ?
		ORDER BY createdAt DESC, rowid DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		rec, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, rec)
	}
	return summaries, rows.Err()
}

func (s *sqliteStore) Get(ctx context.Context, userID, id string) (Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, userId, fileName, transcript, summary, createdAt
		FROM summaries
		WHERE id = ? AND userId = ?
	`, id, userID)

	rec, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Summary{}, ErrNotFound
	}
	return rec, err
}

func (s *sqliteStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM summaries WHERE id = ? AND userId = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(sc scanner) (Summary, error) {
	var rec Summary
	var createdAt float64
	if err := sc.Scan(&rec.ID, &rec.UserID, &rec.FileName, &rec.Transcript, &rec.Summary, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, err
		}
		return Summary{}, fmt.Errorf("scan summary: %w", err)
	}
	rec.CreatedAt = timeFromUnix(createdAt)
	return rec, nil
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
