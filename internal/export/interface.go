package export

import (
	"context"
	"time"
)

// DefaultName is used when a document has no display name.
const DefaultName = "meeting-summary"

// Document is one meeting summary ready to be written to disk.
type Document struct {
	// ID keeps exports of same-named inputs apart. Optional.
	ID         string
	Name       string
	Summary    string
	Transcript string
	CreatedAt  time.Time
}

// Exporter writes a Document in every supported format and returns the
// paths it wrote.
type Exporter interface {
	Export(ctx context.Context, doc Document) ([]string, error)
}
