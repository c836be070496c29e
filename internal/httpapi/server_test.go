package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/recap-flow/internal/chunker"
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
)

type fakeProcessor struct {
	store         store.Store
	transcript    string
	transcribeErr error
	gotFile       media.File
	gotOpts       processor.TranscribeOptions
	gotSumOpts    summarizer.Options
}

func (p *fakeProcessor) Process(context.Context, string) error { return nil }

func (p *fakeProcessor) Transcribe(_ context.Context, file media.File, opts processor.TranscribeOptions) (string, error) {
	p.gotFile = file
	p.gotOpts = opts
	return p.transcript, p.transcribeErr
}

func (p *fakeProcessor) Summarize(ctx context.Context, userID, fileName, transcript string, opts summarizer.Options) (store.Summary, error) {
	p.gotSumOpts = opts
	if fileName == "" {
		fileName = processor.TextInputName
	}
	return p.store.Create(ctx, userID, fileName, transcript, "summary: "+transcript)
}

func (p *fakeProcessor) Export(context.Context, store.Summary) ([]string, error) { return nil, nil }

func newTestServer(t *testing.T) (*httptest.Server, *fakeProcessor, store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := &config.Config{Paths: config.PathsConfig{Input: "in", Output: "out"}}
	cfg.Validate()
	cfg.Limits.MaxFileSize = 1024

	proc := &fakeProcessor{store: st, transcript: "Hello world today"}
	srv := httptest.NewServer(New(cfg, proc, st, logger.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv, proc, st
}

func do(t *testing.T, method, url, user string, body *bytes.Buffer, contentType string) *http.Response {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func uploadBody(t *testing.T, name string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", "", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRequiresUser(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/api/summaries", "", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestTranscribeUpload(t *testing.T) {
	srv, proc, _ := newTestServer(t)

	body, ct := uploadBody(t, "standup.mp3", []byte("ID3 audio"), map[string]string{
		"language":       "de",
		"chunk_duration": "120",
	})
	resp := do(t, http.MethodPost, srv.URL+"/api/transcriptions", "alice", body, ct)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got transcriptionResponse
	json.NewDecoder(resp.Body).Decode(&got)
	if got.Transcript != "Hello world today" || got.FileName != "standup.mp3" {
		t.Errorf("response = %+v", got)
	}
	if proc.gotOpts.ChunkDuration != 120 || proc.gotOpts.Recognition.Language != "de" {
		t.Errorf("options = %+v", proc.gotOpts)
	}
	if proc.gotFile.MIMEType != "audio/mpeg" {
		t.Errorf("MIME = %q, want audio/mpeg", proc.gotFile.MIMEType)
	}
}

func TestTranscribeUploadErrors(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		fields     map[string]string
		err        error
		wantStatus int
	}{
		{"too large", bytes.Repeat([]byte("a"), 2048), nil, nil, http.StatusRequestEntityTooLarge},
		{"bad chunk duration", []byte("a"), map[string]string{"chunk_duration": "-5"}, nil, http.StatusBadRequest},
		{"unsupported input", []byte("a"), nil, fmt.Errorf("chunk audio: %w", chunker.ErrInvalidInput), http.StatusBadRequest},
		{"no duration", []byte("a"), nil, fmt.Errorf("chunk audio: %w", chunker.ErrDurationUnknown), http.StatusUnprocessableEntity},
		{"backend failure", []byte("a"), nil, fmt.Errorf("transcribe chunk 1/1: %w", transcriber.ErrTranscriptionRequest), http.StatusBadGateway},
		{"runtime failure", []byte("a"), nil, fmt.Errorf("chunk audio: %w", chunker.ErrInitialization), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, proc, _ := newTestServer(t)
			proc.transcribeErr = tt.err

			body, ct := uploadBody(t, "a.wav", tt.data, tt.fields)
			resp := do(t, http.MethodPost, srv.URL+"/api/transcriptions", "alice", body, ct)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	srv, _, _ := newTestServer(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("language", "en")
	mw.Close()

	resp := do(t, http.MethodPost, srv.URL+"/api/transcriptions", "alice", &buf, mw.FormDataContentType())
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSummaryLifecycle(t *testing.T) {
	srv, proc, _ := newTestServer(t)

	body := bytes.NewBufferString(`{"transcript":"we decided things","style":"bullet","max_length":120}`)
	resp := do(t, http.MethodPost, srv.URL+"/api/summaries", "alice", body, "application/json")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created store.Summary
	json.NewDecoder(resp.Body).Decode(&created)
	if created.FileName != processor.TextInputName || created.ID == "" {
		t.Errorf("created = %+v", created)
	}
	if proc.gotSumOpts.Style != summarizer.StyleBullet || proc.gotSumOpts.MaxLength != 120 {
		t.Errorf("summary options = %+v", proc.gotSumOpts)
	}

	resp = do(t, http.MethodGet, srv.URL+"/api/summaries", "alice", nil, "")
	var list []store.Summary
	json.NewDecoder(resp.Body).Decode(&list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}

	resp = do(t, http.MethodGet, srv.URL+"/api/summaries", "bob", nil, "")
	list = nil
	json.NewDecoder(resp.Body).Decode(&list)
	if len(list) != 0 {
		t.Errorf("bob sees %d summaries", len(list))
	}

	resp = do(t, http.MethodGet, srv.URL+"/api/summaries/"+created.ID+"/export", "alice", nil, "")
	if !strings.Contains(resp.Header.Get("Content-Disposition"), `"Text Input.txt"`) {
		t.Errorf("Content-Disposition = %q", resp.Header.Get("Content-Disposition"))
	}

	resp = do(t, http.MethodDelete, srv.URL+"/api/summaries/"+created.ID, "bob", nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("delete by other user status = %d, want 404", resp.StatusCode)
	}
	resp = do(t, http.MethodDelete, srv.URL+"/api/summaries/"+created.ID, "alice", nil, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp = do(t, http.MethodGet, srv.URL+"/api/summaries/"+created.ID, "alice", nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateSummaryValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)
	for name, body := range map[string]string{
		"malformed":        `{"transcript":`,
		"empty transcript": `{"transcript":"   "}`,
		"negative length":  `{"transcript":"x","max_length":-3}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/api/summaries", "alice", bytes.NewBufferString(body), "application/json")
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{media.ErrSizeLimit, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("x: %w", store.ErrNotFound), http.StatusNotFound},
		{transcriber.ErrNoBackend, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: %w", transcriber.ErrTranscriptionRequest, transcriber.ErrNoTranscript), http.StatusBadGateway},
		{chunker.ErrSegmentExtraction, http.StatusUnprocessableEntity},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
