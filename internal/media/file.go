// Package media describes the uploaded recording handed to the pipeline.
package media

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned when an input exceeds the configured ceiling
var ErrSizeLimit = errors.New("file exceeds size limit")

// File is an in-memory media upload. It is never mutated after creation.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
	Size     int64
}

var mimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

// New builds a File, detecting the MIME type when mimeType is empty
func New(name, mimeType string, data []byte) File {
	if mimeType == "" {
		mimeType = DetectMIME(name, data)
	}
	return File{
		Name:     name,
		MIMEType: mimeType,
		Data:     data,
		Size:     int64(len(data)),
	}
}

// Open reads a file from disk after checking it against limit.
// A limit of zero disables the check.
func Open(path string, limit int64) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat media file: %w", err)
	}
	if err := CheckSize(info.Size(), limit); err != nil {
		return File{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read media file: %w", err)
	}
	return New(filepath.Base(path), "", data), nil
}

// Ext returns the lower-cased extension including the dot, or "".
func (f File) Ext() string {
	return Ext(f.Name)
}

// BaseName returns the name without its extension
func (f File) BaseName() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Ext returns the lower-cased extension of name including the dot
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsSupported reports whether name has an extension the pipeline accepts
func IsSupported(name string) bool {
	_, ok := mimeTypes[Ext(name)]
	return ok
}

// SupportedExtensions lists accepted extensions in no particular order
func SupportedExtensions() []string {
	exts := make([]string, 0, len(mimeTypes))
	for ext := range mimeTypes {
		exts = append(exts, ext)
	}
	return exts
}

// DetectMIME guesses a MIME type from the extension, then from content
func DetectMIME(name string, data []byte) string {
	if t, ok := mimeTypes[Ext(name)]; ok {
		return t
	}
	if t := mime.TypeByExtension(Ext(name)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// CheckSize rejects sizes above limit. A limit of zero disables the check.
func CheckSize(size, limit int64) error {
	if limit > 0 && size > limit {
		return fmt.Errorf("%w: %d bytes > %d bytes", ErrSizeLimit, size, limit)
	}
	return nil
}
