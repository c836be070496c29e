package executor

import (
	"context"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecute(t *testing.T) {
	requireShell(t)
	ctx := context.Background()
	exec := New()

	out, err := exec.Execute(ctx, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello\n" {
		t.Errorf("Execute() = %q, want %q", out, "hello\n")
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	requireShell(t)
	ctx := context.Background()
	exec := New()

	_, err := exec.Execute(ctx, "sh", "-c", "echo boom 1>&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail for non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q should contain stderr", err)
	}
}

func TestExecuteInDirStreamsStderr(t *testing.T) {
	requireShell(t)
	ctx := context.Background()
	exec := New()
	dir := t.TempDir()

	var lines []string
	out, err := exec.ExecuteInDir(ctx, dir, func(line string) {
		lines = append(lines, line)
	}, "sh", "-c", "pwd; printf 'one\\ntwo\\rthree' 1>&2")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("command ran in %q, want %q", strings.TrimSpace(out), dir)
	}

	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("stderr lines = %v, want %v", lines, want)
	}
}

func TestLineWriter(t *testing.T) {
	tests := []struct {
		name   string
		writes []string
		want   []string
	}{
		{"single line", []string{"abc\n"}, []string{"abc"}},
		{"split across writes", []string{"ab", "c\nde", "f\n"}, []string{"abc", "def"}},
		{"blank lines skipped", []string{"\n\nx\r\n"}, []string{"x"}},
		{"trailing partial flushed", []string{"tail"}, []string{"tail"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			w := &lineWriter{fn: func(line string) { got = append(got, line) }}
			for _, s := range tt.writes {
				w.Write([]byte(s))
			}
			w.Flush()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lines = %v, want %v", got, tt.want)
			}
		})
	}
}
