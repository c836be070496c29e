package chunker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/pkg/ffmpeg"
)

// fakeRuntime emulates ffmpeg: the duration run prints durationLines, every
// extraction writes "seg:<ss>:<t>" into the output file.
type fakeRuntime struct {
	files         map[string][]byte
	durationLines []string
	loadErr       error
	failAt        int
	loads         int
	durationRuns  int
	extractions   [][]string
	closed        bool
}

func newFakeRuntime(duration string) *fakeRuntime {
	return &fakeRuntime{
		files: map[string][]byte{},
		durationLines: []string{
			"Input #0, mp3, from 'input.mp3':",
			"  Duration: " + duration + ", start: 0.000000, bitrate: 128 kb/s",
			"At least one output file must be specified",
		},
		failAt: -1,
	}
}

func (f *fakeRuntime) Load(ctx context.Context) error {
	f.loads++
	return f.loadErr
}

func (f *fakeRuntime) WriteFile(name string, data []byte) error {
	f.files[name] = data
	return nil
}

func (f *fakeRuntime) ReadFile(name string) ([]byte, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("%s not found", name)
	}
	return append([]byte(nil), data...), nil
}

func (f *fakeRuntime) RemoveFile(name string) error {
	delete(f.files, name)
	return nil
}

func (f *fakeRuntime) Exec(ctx context.Context, args []string, onLog ffmpeg.LogFunc) error {
	if len(args) == 2 && args[0] == "-i" {
		f.durationRuns++
		for _, line := range f.durationLines {
			onLog(line)
		}
		return errors.New("exit status 1")
	}

	f.extractions = append(f.extractions, args)
	if len(f.extractions)-1 == f.failAt {
		return errors.New("encoder error")
	}
	out := args[len(args)-1]
	f.files[out] = []byte("seg:" + argAfter(args, "-ss") + ":" + argAfter(args, "-t"))
	return nil
}

func (f *fakeRuntime) Close() error {
	f.closed = true
	return nil
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func newTestEngine(rt ffmpeg.Runtime) Engine {
	return New(rt, Options{}, logger.Nop())
}

func testFile() media.File {
	return media.New("standup.mp3", "", []byte("ID3 fake mp3 data"))
}

func TestChunkThirteenMinuteFile(t *testing.T) {
	rt := newFakeRuntime("00:13:00.00")
	eng := newTestEngine(rt)

	chunks, err := eng.Chunk(context.Background(), testFile(), 300)
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}

	want := []struct{ start, end float64 }{{0, 300}, {300, 600}, {600, 780}}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i, w := range want {
		if chunks[i].StartTime != w.start || chunks[i].EndTime != w.end {
			t.Errorf("chunk %d = [%v,%v], want [%v,%v]", i, chunks[i].StartTime, chunks[i].EndTime, w.start, w.end)
		}
	}
	if chunks[2].Duration() >= 300 {
		t.Errorf("last chunk duration = %v, want shorter than target", chunks[2].Duration())
	}

	// Payloads are read out before the slot is overwritten.
	if string(chunks[0].Payload) != "seg:0:300" || string(chunks[2].Payload) != "seg:600:180" {
		t.Errorf("payloads = %q, %q", chunks[0].Payload, chunks[2].Payload)
	}
}

func TestChunkExtractionArgs(t *testing.T) {
	rt := newFakeRuntime("00:00:10.00")
	eng := New(rt, Options{AudioCodec: "aac", AudioBitrate: "96k"}, logger.Nop())

	if _, err := eng.Chunk(context.Background(), testFile(), 300); err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}

	args := rt.extractions[0]
	checks := map[string]string{
		"-ss":     "0",
		"-t":      "10",
		"-i":      "input.mp3",
		"-acodec": "aac",
		"-b:a":    "96k",
	}
	for flag, want := range checks {
		if got := argAfter(args, flag); got != want {
			t.Errorf("%s = %q, want %q (args %v)", flag, got, want, args)
		}
	}
	if args[len(args)-1] != "chunk.m4a" {
		t.Errorf("output = %q, want chunk.m4a", args[len(args)-1])
	}
	hasVN := false
	for _, a := range args {
		if a == "-vn" {
			hasVN = true
		}
	}
	if !hasVN {
		t.Error("extraction must strip video with -vn")
	}
}

func TestChunkCoverage(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		target   float64
		want     int
	}{
		{"shorter than target", "00:02:30.50", 300, 1},
		{"equal to target", "00:05:00.00", 300, 1},
		{"exact multiple", "00:10:00.00", 300, 2},
		{"hour long", "01:00:00.01", 600, 7},
		{"small target", "00:00:07.25", 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newFakeRuntime(tt.duration)
			chunks, err := newTestEngine(rt).Chunk(context.Background(), testFile(), tt.target)
			if err != nil {
				t.Fatalf("Chunk() error = %v", err)
			}

			duration, _ := parseDuration("Duration: " + tt.duration)
			if len(chunks) != tt.want || len(chunks) != int(math.Ceil(duration/tt.target)) {
				t.Fatalf("got %d chunks, want %d", len(chunks), tt.want)
			}
			if chunks[0].StartTime != 0 {
				t.Errorf("first chunk starts at %v, want 0", chunks[0].StartTime)
			}
			for i := 1; i < len(chunks); i++ {
				if chunks[i].StartTime != chunks[i-1].EndTime {
					t.Errorf("gap between chunk %d and %d", i-1, i)
				}
				if chunks[i-1].Duration() != tt.target {
					t.Errorf("chunk %d duration = %v, want %v", i-1, chunks[i-1].Duration(), tt.target)
				}
			}
			if last := chunks[len(chunks)-1]; last.EndTime != duration {
				t.Errorf("last chunk ends at %v, want %v", last.EndTime, duration)
			}
		})
	}
}

func TestChunkDefaultTarget(t *testing.T) {
	rt := newFakeRuntime("00:06:00.00")
	chunks, err := newTestEngine(rt).Chunk(context.Background(), testFile(), 0)
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}
	if len(chunks) != 2 || chunks[0].EndTime != DefaultTargetDuration {
		t.Errorf("default target not applied: %+v", chunks)
	}
}

func TestChunkDurationUnknown(t *testing.T) {
	rt := newFakeRuntime("N/A")

	_, err := newTestEngine(rt).Chunk(context.Background(), testFile(), 300)
	if !errors.Is(err, ErrDurationUnknown) {
		t.Fatalf("Chunk() error = %v, want ErrDurationUnknown", err)
	}
	if len(rt.extractions) != 0 {
		t.Errorf("got %d extraction calls, want 0", len(rt.extractions))
	}
}

func TestChunkExtractionFailureIsFatal(t *testing.T) {
	rt := newFakeRuntime("00:20:00.00")
	rt.failAt = 1

	chunks, err := newTestEngine(rt).Chunk(context.Background(), testFile(), 300)
	if !errors.Is(err, ErrSegmentExtraction) {
		t.Fatalf("Chunk() error = %v, want ErrSegmentExtraction", err)
	}
	if chunks != nil {
		t.Errorf("partial chunks returned: %d", len(chunks))
	}
	if len(rt.extractions) != 2 {
		t.Errorf("extraction continued after failure: %d calls", len(rt.extractions))
	}
}

func TestChunkInitializationFailure(t *testing.T) {
	rt := newFakeRuntime("00:01:00.00")
	rt.loadErr = errors.New("ffmpeg missing")

	_, err := newTestEngine(rt).Chunk(context.Background(), testFile(), 300)
	if !errors.Is(err, ErrInitialization) {
		t.Fatalf("Chunk() error = %v, want ErrInitialization", err)
	}
	if rt.durationRuns != 0 {
		t.Error("no duration run should happen when initialization fails")
	}
}

func TestChunkInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		file media.File
	}{
		{"empty data", media.New("a.mp3", "", nil)},
		{"no extension", media.New("recording", "", []byte("x"))},
		{"unsupported extension", media.New("notes.txt", "", []byte("x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newFakeRuntime("00:01:00.00")
			_, err := newTestEngine(rt).Chunk(context.Background(), tt.file, 300)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Chunk() error = %v, want ErrInvalidInput", err)
			}
			if rt.loads != 0 {
				t.Error("runtime should not load for invalid input")
			}
		})
	}
}

func TestInitializeOncePerEngine(t *testing.T) {
	rt := newFakeRuntime("00:01:00.00")
	eng := newTestEngine(rt)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := eng.Chunk(ctx, testFile(), 30); err != nil {
			t.Fatalf("Chunk() run %d error = %v", i, err)
		}
	}
	if rt.loads != 1 {
		t.Errorf("runtime loaded %d times, want 1", rt.loads)
	}
	if len(rt.files) != 0 {
		t.Errorf("virtual files left behind: %v", rt.files)
	}

	if err := eng.Close(); err != nil || !rt.closed {
		t.Errorf("Close() error = %v, closed = %v", err, rt.closed)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		line string
		want float64
		ok   bool
	}{
		{"  Duration: 00:13:00.00, start: 0.000000", 780, true},
		{"Duration: 01:02:03.50", 3723.5, true},
		{"Duration: 10:00:00", 36000, true},
		{"Duration: N/A, bitrate: N/A", 0, false},
		{"Stream #0:0: Audio: mp3", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := parseDuration(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseDuration(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	for _, d := range []float64{0.5, 1, 299.99, 300, 300.01, 780, 3601.7} {
		for _, target := range []float64{1, 60, 300} {
			t.Run(strconv.FormatFloat(d, 'f', -1, 64)+"/"+strconv.FormatFloat(target, 'f', -1, 64), func(t *testing.T) {
				windows := plan(d, target)
				if len(windows) != int(math.Ceil(d/target)) {
					t.Fatalf("plan(%v, %v) = %d windows, want %v", d, target, len(windows), math.Ceil(d/target))
				}
				prev := 0.0
				for _, w := range windows {
					if w.start != prev || w.end <= w.start {
						t.Fatalf("window %+v does not continue from %v", w, prev)
					}
					prev = w.end
				}
				if prev != d {
					t.Errorf("windows end at %v, want %v", prev, d)
				}
			})
		}
	}
}
