package report

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/metrics"
	"github.com/user/framegrab/pkg/mocks"
	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/sampler"
	"github.com/user/framegrab/pkg/summarizer"
)

func uniformInput(t *testing.T) pipeline.ReportInput {
	t.Helper()
	policy, err := sampler.ExactlyN(4)
	if err != nil {
		t.Fatal(err)
	}
	return pipeline.ReportInput{
		RunID:        "run-42",
		Path:         "talk.mp4",
		OutputFolder: "frames",
		Policy:       policy,
		Options:      sampler.DefaultOptions(),
		Probe:        pipeline.ProbeResult{Codec: "h264", Width: 640, Height: 360, MetadataCount: 100},
		Extract: pipeline.ExtractResult{
			Result: sampler.Result{
				FramesSaved:   3,
				OutputFiles:   []string{"frames/frame000000.jpg", "frames/frame000001.jpg", "frames/frame000002.jpg"},
				SourceIndices: []int{0, 25, 75},
				FramesRead:    3,
				TotalFrames:   100,
				CountMethod:   sampler.CountMetadata,
				Skipped:       []int{50},
			},
			TotalBytes: 3000,
			Elapsed:    2 * time.Second,
		},
	}
}

func TestStage_WritesSummaryAndMetrics(t *testing.T) {
	fs := mocks.NewFileSystem()
	recorder := metrics.New()
	stage := NewStage(summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs), recorder, logger.NewNoop())

	input := uniformInput(t)
	input.SummaryPath = "frames/summary.md"
	input.MetricsPath = filepath.Join(t.TempDir(), "framegrab.prom")

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.SummaryWritten || !result.MetricsWritten {
		t.Errorf("expected both outputs, got %+v", result)
	}

	data, ok := fs.GetFile("frames/summary.md")
	if !ok {
		t.Fatal("expected summary to be written")
	}
	for _, want := range []string{"run-42", "talk.mp4", "uniform(4)", "Skipped: 1 (50)"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected summary to contain %q", want)
		}
	}

	if got := testutil.ToFloat64(recorder.FramesSaved); got != 3 {
		t.Errorf("expected 3 frames saved metric, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.FramesSkipped); got != 1 {
		t.Errorf("expected 1 skipped metric, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.Extractions.WithLabelValues("uniform", metrics.StatusSuccess)); got != 1 {
		t.Errorf("expected one successful extraction, got %v", got)
	}
}

func TestStage_FailedRunRecordsMetricsOnly(t *testing.T) {
	fs := mocks.NewFileSystem()
	recorder := metrics.New()
	stage := NewStage(summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs), recorder, logger.NewNoop())

	input := uniformInput(t)
	input.SummaryPath = "frames/summary.md"
	input.Err = errors.New("disk full")

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SummaryWritten {
		t.Error("expected no summary for a failed run")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected no files written")
	}
	if got := testutil.ToFloat64(recorder.Extractions.WithLabelValues("uniform", metrics.StatusFailure)); got != 1 {
		t.Errorf("expected one failed extraction, got %v", got)
	}
}

func TestStage_NothingRequested(t *testing.T) {
	fs := mocks.NewFileSystem()
	stage := NewStage(summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs), nil, logger.NewNoop())

	result, err := stage.Execute(context.Background(), uniformInput(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SummaryWritten || result.MetricsWritten {
		t.Errorf("expected no outputs, got %+v", result)
	}
}

func TestStage_SummaryWriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("read-only")
	}
	stage := NewStage(summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs), nil, logger.NewNoop())

	input := uniformInput(t)
	input.SummaryPath = "summary.md"

	if _, err := stage.Execute(context.Background(), input); err == nil {
		t.Error("expected summary write error")
	}
}

func TestBuildSummary_SequentialCountMethod(t *testing.T) {
	input := pipeline.ReportInput{
		Path:   "clip.mp4",
		Policy: sampler.All(),
		Probe:  pipeline.ProbeResult{MetadataCount: 12},
		Extract: pipeline.ExtractResult{
			Result: sampler.Result{FramesSaved: 12, FramesRead: 12, TotalFrames: 12},
		},
	}

	if got := BuildSummary(input).Source.CountMethod; got != "metadata" {
		t.Errorf("expected metadata when the stream matches the container, got %s", got)
	}

	input.Probe.MetadataCount = 0
	if got := BuildSummary(input).Source.CountMethod; got != "scan" {
		t.Errorf("expected scan without metadata, got %s", got)
	}
}
