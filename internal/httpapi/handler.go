package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nguyentantai21042004/recap-flow/internal/export"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
)

const multipartMemory = 32 << 20

type transcriptionResponse struct {
	FileName   string `json:"file_name"`
	Transcript string `json:"transcript"`
}

type createSummaryRequest struct {
	FileName   string `json:"file_name"`
	Transcript string `json:"transcript"`
	Style      string `json:"style"`
	MaxLength  int    `json:"max_length"`
}

func (s *implServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *implServer) transcribeHandler(w http.ResponseWriter, r *http.Request) {
	if limit := s.cfg.Limits.MaxFileSize; limit > 0 {
		// room for the multipart envelope around the file itself
		r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, fmt.Errorf("parse upload: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	src, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer src.Close()

	if err := media.CheckSize(header.Size, s.cfg.Limits.MaxFileSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	opts := processor.TranscribeOptions{
		Recognition: transcriber.Options{
			Language: r.FormValue("language"),
			Model:    r.FormValue("model"),
		},
	}
	if v := r.FormValue("chunk_duration"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid chunk_duration %q", v))
			return
		}
		opts.ChunkDuration = d
	}

	data, err := io.ReadAll(src)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}
	file := media.New(header.Filename, header.Header.Get("Content-Type"), data)
	if file.MIMEType == "application/octet-stream" {
		file.MIMEType = media.DetectMIME(file.Name, data)
	}

	transcript, err := s.processor.Transcribe(r.Context(), file, opts)
	if err != nil {
		s.logger.Error(r.Context(), "Transcription of %s failed: %v", file.Name, err)
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, transcriptionResponse{FileName: file.Name, Transcript: transcript})
}

func (s *implServer) createSummaryHandler(w http.ResponseWriter, r *http.Request) {
	var req createSummaryRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		writeError(w, http.StatusBadRequest, summarizer.ErrEmptyTranscript)
		return
	}
	if req.MaxLength < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid max_length %d", req.MaxLength))
		return
	}

	opts := summarizer.Options{MaxLength: req.MaxLength}
	if req.Style != "" {
		opts.Style = summarizer.ParseStyle(req.Style)
	}

	rec, err := s.processor.Summarize(r.Context(), userFrom(r.Context()), req.FileName, req.Transcript, opts)
	if err != nil {
		s.logger.Error(r.Context(), "Summarization failed: %v", err)
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *implServer) listSummariesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *implServer) getSummaryHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), userFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *implServer) exportSummaryHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), userFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	doc := export.Document{Name: rec.FileName, Summary: rec.Summary, Transcript: rec.Transcript, CreatedAt: rec.CreatedAt}
	body, contentType, ext := export.Text(doc), "text/plain; charset=utf-8", ".txt"
	if r.URL.Query().Get("format") == "md" {
		body, contentType, ext = export.Markdown(doc), "text/markdown; charset=utf-8", ".md"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileStem(rec.FileName)+ext))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}

func (s *implServer) deleteSummaryHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), userFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
