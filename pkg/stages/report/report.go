// Package report implements the stage that publishes the outcome of a run
// as a Markdown summary and Prometheus textfile metrics.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/user/framegrab/pkg/metrics"
	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/summarizer"
)

// Stage writes the summary and metrics of a run. Both outputs are optional.
type Stage struct {
	writer   *summarizer.Writer
	recorder *metrics.Recorder
	logger   ports.Logger
	now      func() time.Time
}

// NewStage creates a new report stage. A nil recorder disables metrics.
func NewStage(writer *summarizer.Writer, recorder *metrics.Recorder, logger ports.Logger) *Stage {
	return &Stage{
		writer:   writer,
		recorder: recorder,
		logger:   logger.WithComponent("report"),
		now:      time.Now,
	}
}

// Execute records metrics for the run, then writes the requested files.
// Metrics are observed for failed runs too.
func (s *Stage) Execute(ctx context.Context, input pipeline.ReportInput) (pipeline.ReportResult, error) {
	var result pipeline.ReportResult

	res := input.Extract.Result
	if s.recorder != nil {
		s.recorder.Observe(
			input.Policy.Mode().String(),
			res.FramesSaved,
			len(res.Skipped),
			res.TotalFrames,
			input.Extract.Elapsed,
			input.Err,
		)
		if input.MetricsPath != "" {
			if err := s.recorder.WriteTextfile(input.MetricsPath); err != nil {
				return result, err
			}
			result.MetricsWritten = true
			s.logger.Info("Metrics written to %s", input.MetricsPath)
		}
	}

	if input.SummaryPath == "" || input.Err != nil {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	summary := BuildSummary(input)
	summary.GeneratedAt = s.now()
	if err := s.writer.Write(input.SummaryPath, summary); err != nil {
		return result, fmt.Errorf("write summary: %w", err)
	}
	result.SummaryWritten = true
	s.logger.Info("Summary saved to %s", input.SummaryPath)

	return result, nil
}

// BuildSummary converts a finished run into a summarizer.Summary.
func BuildSummary(input pipeline.ReportInput) *summarizer.Summary {
	res := input.Extract.Result

	total := res.TotalFrames
	method := string(res.CountMethod)
	if method == "" {
		// Sequential policies establish the count by reading the stream.
		method = "scan"
		if input.Probe.MetadataCount > 0 && input.Probe.MetadataCount == total {
			method = "metadata"
		}
	}

	return summarizer.NewBuilder().
		WithRunID(input.RunID).
		WithSource(summarizer.SourceInfo{
			Path:        input.Path,
			Codec:       input.Probe.Codec,
			Width:       input.Probe.Width,
			Height:      input.Probe.Height,
			TotalFrames: total,
			CountMethod: method,
		}).
		WithSettings(summarizer.Settings{
			Policy:   input.Policy.String(),
			Format:   input.Options.Format.String(),
			Quality:  input.Options.Quality,
			Strict:   input.Options.Strict,
			MaxWidth: input.Options.MaxWidth,
			Annotate: input.Options.Annotate,
		}).
		WithOutput(summarizer.OutputInfo{
			Folder:      input.OutputFolder,
			FramesSaved: res.FramesSaved,
			FramesRead:  res.FramesRead,
			Skipped:     res.Skipped,
			Files:       res.OutputFiles,
			TotalBytes:  input.Extract.TotalBytes,
		}).
		WithDuration(input.Extract.Elapsed).
		Build()
}
