package watcher

import "context"

// Watcher monitors the input folder for new media files
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created file
type EventHandler func(ctx context.Context, filePath string) error
