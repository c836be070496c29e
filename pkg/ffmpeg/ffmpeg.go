package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

// Load resolves the binary, checks that it runs and creates the scratch
// directory. Calling Load on a loaded runtime is a no-op.
func (r *implRuntime) Load(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	path, err := r.lookPath(r.binary)
	if err != nil {
		return fmt.Errorf("locate %s: %w", r.binary, err)
	}

	if _, err := r.executor.Execute(ctx, path, "-hide_banner", "-version"); err != nil {
		return fmt.Errorf("run %s -version: %w", path, err)
	}

	if r.tempRoot != "" {
		if err := os.MkdirAll(r.tempRoot, 0755); err != nil {
			return fmt.Errorf("create temp root: %w", err)
		}
	}
	dir, err := os.MkdirTemp(r.tempRoot, "ffmpeg-vfs-*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}

	r.path = path
	r.dir = dir
	r.loaded = true
	return nil
}

func (r *implRuntime) WriteFile(name string, data []byte) error {
	full, err := r.resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (r *implRuntime) ReadFile(name string) ([]byte, error) {
	full, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// RemoveFile deletes name; a missing file is not an error
func (r *implRuntime) RemoveFile(name string) error {
	full, err := r.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Exec runs ffmpeg inside the scratch directory so that arguments refer to
// virtual file names. Each stderr line is passed to onLog.
func (r *implRuntime) Exec(ctx context.Context, args []string, onLog LogFunc) error {
	if !r.loaded {
		return ErrNotLoaded
	}

	full := append([]string{"-hide_banner", "-nostdin"}, args...)

	if _, err := r.executor.ExecuteInDir(ctx, r.dir, executor.LineFunc(onLog), r.path, full...); err != nil {
		return err
	}
	return nil
}

// Close removes the scratch directory. The runtime can be loaded again.
func (r *implRuntime) Close() error {
	if !r.loaded {
		return nil
	}
	r.loaded = false
	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("remove scratch dir: %w", err)
	}
	return nil
}

func (r *implRuntime) resolve(name string) (string, error) {
	if !r.loaded {
		return "", ErrNotLoaded
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(r.dir, name), nil
}
