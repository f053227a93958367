package sampler

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen is returned when a frame source cannot be opened.
	ErrOpen = errors.New("sampler: cannot open source")

	// ErrInvalidParameter is returned when a policy parameter violates its precondition.
	ErrInvalidParameter = errors.New("sampler: invalid parameter")

	// ErrFrameCountUnavailable is returned when uniform sampling cannot
	// establish the total frame count.
	ErrFrameCountUnavailable = errors.New("sampler: frame count unavailable")

	// ErrFrameMissing is returned in strict mode when a target frame cannot be read.
	ErrFrameMissing = errors.New("sampler: target frame missing")
)

// OpenError reports a source that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("sampler: cannot open source %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrOpen) match.
func (e *OpenError) Is(target error) bool { return target == ErrOpen }

// InvalidParameterError reports a rejected policy parameter. Available is
// zero when the check does not involve the frame count.
type InvalidParameterError struct {
	Param     string
	Requested int
	Available int
}

func (e *InvalidParameterError) Error() string {
	if e.Available > 0 {
		return fmt.Sprintf("sampler: requested %d frames, but video only has %d frames", e.Requested, e.Available)
	}
	return fmt.Sprintf("sampler: %s must be a positive integer, got %d", e.Param, e.Requested)
}

// Is makes errors.Is(err, ErrInvalidParameter) match.
func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// FrameMissingError reports the target index a strict extraction failed on.
type FrameMissingError struct {
	Index int
	Err   error
}

func (e *FrameMissingError) Error() string {
	return fmt.Sprintf("sampler: frame %d could not be read: %v", e.Index, e.Err)
}

func (e *FrameMissingError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFrameMissing) match.
func (e *FrameMissingError) Is(target error) bool { return target == ErrFrameMissing }
