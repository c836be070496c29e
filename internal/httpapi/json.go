package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/recap-flow/internal/chunker"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
)

func parseJSON(r *http.Request, model any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	return json.NewDecoder(r.Body).Decode(model)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, media.ErrSizeLimit), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, chunker.ErrInvalidInput), errors.Is(err, summarizer.ErrEmptyTranscript):
		return http.StatusBadRequest
	case errors.Is(err, chunker.ErrDurationUnknown), errors.Is(err, chunker.ErrSegmentExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, transcriber.ErrNoBackend):
		return http.StatusServiceUnavailable
	case errors.Is(err, transcriber.ErrTranscriptionRequest):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
