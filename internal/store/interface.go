package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("summary not found")

// Store persists generated summaries per user. Every read and delete is
// scoped to the owning user.
type Store interface {
	Create(ctx context.Context, userID, fileName, transcript, summary string) (Summary, error)
	List(ctx context.Context, userID string) ([]Summary, error)
	Get(ctx context.Context, userID, id string) (Summary, error)
	Delete(ctx context.Context, userID, id string) error
	Close() error
}
