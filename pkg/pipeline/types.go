package pipeline

import (
	"time"

	"github.com/user/framegrab/pkg/sampler"
)

// =============================================================================
// Probe Stage Types
// =============================================================================

// ProbeInput names the video to inspect.
type ProbeInput struct {
	Path string
}

// ProbeResult is what is known about a video before extraction.
// Zero values mean unknown.
type ProbeResult struct {
	Codec         string
	Width         int
	Height        int
	MetadataCount int
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput describes the frames to pull out of a video.
type ExtractInput struct {
	Path         string
	OutputFolder string
	Policy       sampler.Policy
	Naming       sampler.Naming
	Options      sampler.Options
}

// ExtractResult is the outcome of the extract stage.
type ExtractResult struct {
	sampler.Result

	// TotalBytes is the combined size of the written files.
	TotalBytes int64
	Elapsed    time.Duration
}

// =============================================================================
// Report Stage Types
// =============================================================================

// ReportInput carries everything the report stage writes out.
type ReportInput struct {
	RunID        string
	Path         string
	OutputFolder string
	Policy       sampler.Policy
	Options      sampler.Options
	Probe        ProbeResult
	Extract      ExtractResult
	Err          error
	SummaryPath  string
	MetricsPath  string
}

// ReportResult lists the files the report stage wrote.
type ReportResult struct {
	SummaryWritten bool
	MetricsWritten bool
}
