// Package store keeps meeting summaries in a local SQLite database.
package store

import "time"

// Summary is one stored transcription + summary pair.
type Summary struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FileName   string    `json:"file_name"`
	Transcript string    `json:"transcript"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}
