// Package orchestrator coordinates the stages of an extraction run.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/sampler"
)

// Config contains all configuration for one run.
type Config struct {
	// Input
	Path         string
	OutputFolder string

	// Selection
	Policy sampler.Policy
	Naming sampler.Naming

	// Output
	Options sampler.Options

	// Reporting (empty disables)
	SummaryPath string
	MetricsPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputFolder: "frames",
		Policy:       sampler.All(),
		Naming:       sampler.DefaultNaming(),
		Options:      sampler.DefaultOptions(),
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	probeStage   pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult]
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	reportStage  pipeline.Stage[pipeline.ReportInput, pipeline.ReportResult]
	logger       ports.Logger
	newRunID     func() string
}

// New creates a new Orchestrator.
func New(
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult],
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	reportStage pipeline.Stage[pipeline.ReportInput, pipeline.ReportResult],
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		probeStage:   probeStage,
		extractStage: extractStage,
		reportStage:  reportStage,
		logger:       logger,
		newRunID:     func() string { return uuid.New().String() },
	}
}

// Run executes probe, extract and report. When extraction fails the report
// stage still records metrics, and the partial result is returned with the
// error.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	runID := o.newRunID()
	o.logger.Info("Run %s started", runID)

	// 1. Probe container metadata
	probe, err := o.probeStage.Execute(ctx, pipeline.ProbeInput{Path: config.Path})
	if err != nil {
		o.logger.Error("Extraction failed: %s", err)
		return RunResult{RunID: runID}, fmt.Errorf("probe stage: %w", err)
	}

	// 2. Extract frames
	o.logger.Info("Extracting %s from %s into %s", config.Policy, config.Path, config.OutputFolder)
	extracted, extractErr := o.extractStage.Execute(ctx, pipeline.ExtractInput{
		Path:         config.Path,
		OutputFolder: config.OutputFolder,
		Policy:       config.Policy,
		Naming:       config.Naming,
		Options:      config.Options,
	})
	if extractErr != nil {
		o.logger.Error("Extraction failed: %s", extractErr)
	} else {
		o.logger.Info("Saved %d frames to %s", extracted.FramesSaved, config.OutputFolder)
	}

	result := RunResult{
		RunID:         runID,
		Codec:         probe.Codec,
		TotalFrames:   extracted.TotalFrames,
		CountMethod:   extracted.CountMethod,
		FramesSaved:   extracted.FramesSaved,
		OutputFiles:   extracted.OutputFiles,
		SourceIndices: extracted.SourceIndices,
		Skipped:       extracted.Skipped,
		TotalBytes:    extracted.TotalBytes,
		Elapsed:       extracted.Elapsed,
	}

	// 3. Report
	report, reportErr := o.reportStage.Execute(ctx, pipeline.ReportInput{
		RunID:        runID,
		Path:         config.Path,
		OutputFolder: config.OutputFolder,
		Policy:       config.Policy,
		Options:      config.Options,
		Probe:        probe,
		Extract:      extracted,
		Err:          extractErr,
		SummaryPath:  config.SummaryPath,
		MetricsPath:  config.MetricsPath,
	})
	if report.SummaryWritten {
		result.SummaryPath = config.SummaryPath
	}

	if extractErr != nil {
		return result, fmt.Errorf("extract stage: %w", extractErr)
	}
	if reportErr != nil {
		o.logger.Error("Failed to write report: %s", reportErr)
		return result, fmt.Errorf("report stage: %w", reportErr)
	}

	return result, nil
}
