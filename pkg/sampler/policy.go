// Package sampler selects frames from a video and persists them as images.
//
// Three policies are supported: every frame, every Nth frame, and exactly N
// frames spread uniformly over the video. Output files are numbered by a
// save counter, so a run always produces a gap-free listing starting at
// 000000 no matter which source frames were picked.
package sampler

import (
	"fmt"
	"strings"
)

// Mode identifies a selection policy.
type Mode int

const (
	ModeAll Mode = iota
	ModeEveryNth
	ModeExactlyN
)

// String returns the CLI name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeEveryNth:
		return "every"
	case ModeExactlyN:
		return "uniform"
	default:
		return "unknown"
	}
}

// Policy is an immutable frame selection policy.
type Policy struct {
	mode Mode
	n    int
}

// All selects every readable frame.
func All() Policy {
	return Policy{mode: ModeAll}
}

// EveryNth selects frames 0, n, 2n, ... in read order.
func EveryNth(n int) (Policy, error) {
	if n <= 0 {
		return Policy{}, &InvalidParameterError{Param: "n", Requested: n}
	}
	return Policy{mode: ModeEveryNth, n: n}, nil
}

// ExactlyN selects n frames spaced uniformly across the video.
func ExactlyN(n int) (Policy, error) {
	if n <= 0 {
		return Policy{}, &InvalidParameterError{Param: "n", Requested: n}
	}
	return Policy{mode: ModeExactlyN, n: n}, nil
}

// ParsePolicy builds a Policy from a mode name and parameter.
// n is ignored for "all".
func ParsePolicy(mode string, n int) (Policy, error) {
	switch strings.ToLower(mode) {
	case "all", "":
		return All(), nil
	case "every", "every-nth", "nth":
		return EveryNth(n)
	case "uniform", "exactly", "exactly-n", "count":
		return ExactlyN(n)
	default:
		return Policy{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, mode)
	}
}

// Mode returns the policy mode.
func (p Policy) Mode() Mode { return p.mode }

// N returns the policy parameter; zero for ModeAll.
func (p Policy) N() int { return p.n }

// String describes the policy, e.g. "every(10)".
func (p Policy) String() string {
	if p.mode == ModeAll {
		return p.mode.String()
	}
	return fmt.Sprintf("%s(%d)", p.mode, p.n)
}

// validate rejects zero-value policies built without a constructor.
func (p Policy) validate() error {
	if p.mode != ModeAll && p.n <= 0 {
		return &InvalidParameterError{Param: "n", Requested: p.n}
	}
	return nil
}
