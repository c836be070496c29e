package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// maxStderrTail bounds how much stderr is kept for error messages
const maxStderrTail = 4096

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.ExecuteInDir(ctx, "", nil, name, args...)
}

// ExecuteInDir runs an external command in a specific working directory.
// Every stderr line is passed to onStderr while the command runs.
func (e *implExecutor) ExecuteInDir(ctx context.Context, dir string, onStderr LineFunc, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	lw := &lineWriter{fn: onStderr}
	cmd.Stdout = &stdout
	cmd.Stderr = &teeWriter{buf: &stderr, lines: lw}

	err := cmd.Run()
	lw.Flush()
	if err != nil {
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(tail(stderr.String(), maxStderrTail))
		if stderrStr != "" {
			return stdout.String(), fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return stdout.String(), fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

type teeWriter struct {
	buf   *bytes.Buffer
	lines *lineWriter
}

func (t *teeWriter) Write(p []byte) (int, error) {
	t.buf.Write(p)
	return t.lines.Write(p)
}

// lineWriter splits a byte stream on '\n' and '\r'.
// ffmpeg rewrites its progress line with '\r'.
type lineWriter struct {
	fn  LineFunc
	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	if w.fn == nil {
		return len(p), nil
	}
	for _, b := range p {
		if b == '\n' || b == '\r' {
			w.emit()
			continue
		}
		w.buf = append(w.buf, b)
	}
	return len(p), nil
}

// Flush emits any trailing partial line
func (w *lineWriter) Flush() {
	if w.fn != nil {
		w.emit()
	}
}

func (w *lineWriter) emit() {
	if len(w.buf) == 0 {
		return
	}
	w.fn(string(w.buf))
	w.buf = w.buf[:0]
}
