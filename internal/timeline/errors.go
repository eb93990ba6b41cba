package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a malformed timeline, detected at construction.
	ErrConfiguration = errors.New("invalid timeline configuration")

	// ErrOutOfRange marks a frame query outside [0, TotalDurationFrames).
	ErrOutOfRange = errors.New("frame out of range")
)

// FrameError reports the rejected frame and the valid range.
type FrameError struct {
	Frame int
	Total int
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%v: frame %d not in [0, %d)", ErrOutOfRange, e.Frame, e.Total)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (e *FrameError) Unwrap() error {
	return ErrOutOfRange
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
