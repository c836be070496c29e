package chunker

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var reDuration = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// readDuration runs ffmpeg with an input and no output. ffmpeg exits
// non-zero in that case, so only the log matters.
func (e *implEngine) readDuration(ctx context.Context, inputName string) (float64, error) {
	var durationLine string
	onLog := func(line string) {
		if durationLine == "" && reDuration.MatchString(line) {
			durationLine = line
		}
	}

	if err := e.runtime.Exec(ctx, []string{"-i", inputName}, onLog); err != nil {
		e.logger.Debug(ctx, "Duration run exited with error (expected without output): %v", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDurationUnknown, err)
	}

	duration, ok := parseDuration(durationLine)
	if !ok {
		return 0, fmt.Errorf("%w: no Duration line in ffmpeg output", ErrDurationUnknown)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%w: media is empty", ErrDurationUnknown)
	}
	return duration, nil
}

// parseDuration converts "Duration: HH:MM:SS.ss" to seconds
func parseDuration(line string) (float64, bool) {
	m := reDuration.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

type bounds struct {
	start float64
	end   float64
}

// plan splits [0, duration] into ceil(duration/target) contiguous windows
func plan(duration, target float64) []bounds {
	n := int(math.Ceil(duration / target))
	windows := make([]bounds, 0, n)
	for i := 0; i < n; i++ {
		start := float64(i) * target
		end := math.Min(float64(i+1)*target, duration)
		if end <= start {
			break
		}
		windows = append(windows, bounds{start: start, end: end})
	}
	return windows
}
