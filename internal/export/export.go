package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func (e *implExporter) Export(ctx context.Context, doc Document) ([]string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	base := filepath.Join(e.outputDir, exportStem(doc))
	writers := []struct {
		ext   string
		write func(path string) error
	}{
		{".txt", func(p string) error { return os.WriteFile(p, []byte(Text(doc)), 0644) }},
		{".md", func(p string) error { return os.WriteFile(p, []byte(Markdown(doc)), 0644) }},
		{".docx", func(p string) error { return writeDocx(doc, p) }},
	}

	paths := make([]string, 0, len(writers))
	for _, w := range writers {
		path := base + w.ext
		if err := w.write(path); err != nil {
			return paths, fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
		paths = append(paths, path)
	}

	e.logger.Info(ctx, "Exported %d files to %s", len(paths), e.outputDir)
	return paths, nil
}

// FileStem turns a display name such as "standup.mp3" into a safe file
// name stem without extension.
func FileStem(name string) string {
	name = strings.TrimSpace(filepath.Base(name))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." {
		return DefaultName
	}
	return name
}

// exportStem suffixes the name stem with the short record ID, or the
// creation time when there is none, so repeated names do not overwrite.
func exportStem(doc Document) string {
	suffix := doc.CreatedAt.Format("20060102-150405")
	if id := strings.TrimSpace(doc.ID); id != "" {
		suffix = id
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
	}
	return FileStem(doc.Name) + "_" + suffix
}

// Text is the plain-text download: the summary alone.
func Text(doc Document) string {
	return strings.TrimSpace(doc.Summary) + "\n"
}

// Markdown renders the title, date, summary and transcript.
func Markdown(doc Document) string {
	title := doc.Name
	if strings.TrimSpace(title) == "" {
		title = DefaultName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "_%s_\n\n", doc.CreatedAt.Format("January 2, 2006 15:04"))
	b.WriteString("## Summary\n\n")
	b.WriteString(strings.TrimSpace(doc.Summary))
	b.WriteString("\n\n## Transcript\n\n")
	b.WriteString(strings.TrimSpace(doc.Transcript))
	b.WriteString("\n")
	return b.String()
}
