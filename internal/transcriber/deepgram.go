package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultDeepgramURL = "https://api.deepgram.com"

// maxErrorBody bounds how much of a failed response ends up in errors
const maxErrorBody = 2048

type deepgramBackend struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewDeepgram creates a Backend for Deepgram's pre-recorded /v1/listen API.
// Timeouts come from the request context.
func NewDeepgram(apiKey, baseURL string) Backend {
	if baseURL == "" {
		baseURL = defaultDeepgramURL
	}
	return &deepgramBackend{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

func (d *deepgramBackend) Name() string { return "deepgram" }

// deepgramResponse keeps the transcript as a pointer so an absent field
// can be told apart from an empty transcript.
type deepgramResponse struct {
	Results *struct {
		Channels []struct {
			Alternatives []struct {
				Transcript *string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (d *deepgramBackend) Transcribe(ctx context.Context, unit Unit, opts Options) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint(opts), bytes.NewReader(unit.Data))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrTranscriptionRequest, err)
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", unit.MIMEType)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTranscriptionRequest, unit.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: deepgram http %d: %s", ErrTranscriptionRequest, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var dr deepgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrTranscriptionRequest, err)
	}

	text, ok := dr.transcript()
	if !ok {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionRequest, ErrNoTranscript)
	}
	return text, nil
}

// transcript reads results.channels[0].alternatives[0].transcript
func (r deepgramResponse) transcript() (string, bool) {
	if r.Results == nil || len(r.Results.Channels) == 0 {
		return "", false
	}
	alts := r.Results.Channels[0].Alternatives
	if len(alts) == 0 || alts[0].Transcript == nil {
		return "", false
	}
	return *alts[0].Transcript, true
}

func (d *deepgramBackend) endpoint(opts Options) string {
	q := url.Values{}
	if opts.Model != "" {
		q.Set("model", opts.Model)
	}
	if opts.Language != "" {
		q.Set("language", opts.Language)
	}
	if opts.SmartFormat {
		q.Set("smart_format", strconv.FormatBool(true))
	}
	if opts.Punctuate {
		q.Set("punctuate", strconv.FormatBool(true))
	}

	u := d.baseURL + "/v1/listen"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
