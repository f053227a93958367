package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/sampler"
)

// mockProbeStage is a mock for the probe stage.
type mockProbeStage struct {
	result pipeline.ProbeResult
	err    error
	calls  int
}

func (m *mockProbeStage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	m.calls++
	if m.err != nil {
		return pipeline.ProbeResult{}, m.err
	}
	return m.result, nil
}

// mockExtractStage is a mock for the extract stage.
type mockExtractStage struct {
	result pipeline.ExtractResult
	err    error
	input  pipeline.ExtractInput
	calls  int
}

func (m *mockExtractStage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	m.calls++
	m.input = input
	return m.result, m.err
}

// mockReportStage is a mock for the report stage.
type mockReportStage struct {
	result pipeline.ReportResult
	err    error
	input  pipeline.ReportInput
	calls  int
}

func (m *mockReportStage) Execute(ctx context.Context, input pipeline.ReportInput) (pipeline.ReportResult, error) {
	m.calls++
	m.input = input
	return m.result, m.err
}

func newTestOrchestrator(p *mockProbeStage, e *mockExtractStage, r *mockReportStage) *Orchestrator {
	o := New(p, e, r, logger.NewNoop())
	o.newRunID = func() string { return "run-1" }
	return o
}

func testConfig(t *testing.T) Config {
	t.Helper()
	policy, err := sampler.ExactlyN(2)
	if err != nil {
		t.Fatal(err)
	}
	config := DefaultConfig()
	config.Path = "talk.mp4"
	config.OutputFolder = "out"
	config.Policy = policy
	config.SummaryPath = "out/summary.md"
	return config
}

func TestOrchestrator_Run(t *testing.T) {
	probe := &mockProbeStage{result: pipeline.ProbeResult{Codec: "av1", MetadataCount: 10}}
	extract := &mockExtractStage{
		result: pipeline.ExtractResult{
			Result: sampler.Result{
				FramesSaved:   2,
				OutputFiles:   []string{"out/frame000000.jpg", "out/frame000001.jpg"},
				SourceIndices: []int{0, 5},
				TotalFrames:   10,
				CountMethod:   sampler.CountMetadata,
			},
			TotalBytes: 2048,
		},
	}
	report := &mockReportStage{result: pipeline.ReportResult{SummaryWritten: true}}

	result, err := newTestOrchestrator(probe, extract, report).Run(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RunID != "run-1" {
		t.Errorf("expected run id run-1, got %s", result.RunID)
	}
	if result.Codec != "av1" || result.TotalFrames != 10 || result.FramesSaved != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.SummaryPath != "out/summary.md" {
		t.Errorf("expected summary path to be reported, got %q", result.SummaryPath)
	}

	if extract.input.Path != "talk.mp4" || extract.input.OutputFolder != "out" {
		t.Errorf("unexpected extract input: %+v", extract.input)
	}
	if extract.input.Policy.N() != 2 {
		t.Errorf("expected policy to be passed through, got %s", extract.input.Policy)
	}
	if report.input.RunID != "run-1" || report.input.Probe.Codec != "av1" {
		t.Errorf("unexpected report input: %+v", report.input)
	}
	if report.input.Extract.FramesSaved != 2 {
		t.Errorf("expected extract result forwarded to report, got %d", report.input.Extract.FramesSaved)
	}
}

func TestOrchestrator_Run_ProbeError(t *testing.T) {
	probe := &mockProbeStage{err: context.Canceled}
	extract := &mockExtractStage{}
	report := &mockReportStage{}

	_, err := newTestOrchestrator(probe, extract, report).Run(context.Background(), testConfig(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if extract.calls != 0 || report.calls != 0 {
		t.Error("expected no further stages after probe failure")
	}
}

func TestOrchestrator_Run_ExtractErrorStillReports(t *testing.T) {
	probe := &mockProbeStage{}
	extract := &mockExtractStage{
		result: pipeline.ExtractResult{Result: sampler.Result{FramesSaved: 1, OutputFiles: []string{"out/frame000000.jpg"}}},
		err:    sampler.ErrFrameMissing,
	}
	report := &mockReportStage{}

	result, err := newTestOrchestrator(probe, extract, report).Run(context.Background(), testConfig(t))
	if !errors.Is(err, sampler.ErrFrameMissing) {
		t.Fatalf("expected ErrFrameMissing, got %v", err)
	}
	if result.FramesSaved != 1 {
		t.Errorf("expected partial result, got %d frames", result.FramesSaved)
	}
	if report.calls != 1 {
		t.Fatal("expected report stage to run for failed extraction")
	}
	if !errors.Is(report.input.Err, sampler.ErrFrameMissing) {
		t.Errorf("expected extraction error forwarded to report, got %v", report.input.Err)
	}
}

func TestOrchestrator_Run_ReportError(t *testing.T) {
	probe := &mockProbeStage{}
	extract := &mockExtractStage{result: pipeline.ExtractResult{Result: sampler.Result{FramesSaved: 3}}}
	report := &mockReportStage{err: errors.New("read-only")}

	result, err := newTestOrchestrator(probe, extract, report).Run(context.Background(), testConfig(t))
	if err == nil {
		t.Fatal("expected report error")
	}
	if result.FramesSaved != 3 {
		t.Errorf("expected extraction result to survive report failure, got %d", result.FramesSaved)
	}
	if result.SummaryPath != "" {
		t.Errorf("expected no summary path, got %q", result.SummaryPath)
	}
}

func TestNew_GeneratesUniqueRunIDs(t *testing.T) {
	o := New(&mockProbeStage{}, &mockExtractStage{}, &mockReportStage{}, logger.NewNoop())
	a, b := o.newRunID(), o.newRunID()
	if a == b || len(a) != 36 {
		t.Errorf("expected distinct UUIDs, got %q and %q", a, b)
	}
}
