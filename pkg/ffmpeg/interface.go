package ffmpeg

import (
	"context"
	"errors"
)

var (
	ErrNotLoaded   = errors.New("ffmpeg runtime not loaded")
	ErrInvalidName = errors.New("invalid virtual file name")
)

// LogFunc receives one line of ffmpeg log output
type LogFunc func(line string)

// Runtime is a single ffmpeg instance with its own scratch filesystem.
// File names are flat names inside that filesystem, never paths.
// A Runtime is not safe for concurrent use.
type Runtime interface {
	Load(ctx context.Context) error
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
	RemoveFile(name string) error
	Exec(ctx context.Context, args []string, onLog LogFunc) error
	Close() error
}
