package orchestrator

import (
	"time"

	"github.com/user/framegrab/pkg/sampler"
)

// RunResult contains the results of a run.
type RunResult struct {
	RunID string

	// Source
	Codec       string
	TotalFrames int
	CountMethod sampler.CountMethod

	// Output
	FramesSaved   int
	OutputFiles   []string
	SourceIndices []int
	Skipped       []int
	TotalBytes    int64
	Elapsed       time.Duration

	// SummaryPath is set when a summary was written.
	SummaryPath string
}
