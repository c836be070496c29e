package chunker

import "errors"

var (
	ErrInitialization    = errors.New("media runtime initialization failed")
	ErrInvalidInput      = errors.New("invalid media input")
	ErrDurationUnknown   = errors.New("media duration unknown")
	ErrSegmentExtraction = errors.New("segment extraction failed")
)
