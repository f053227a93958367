package sampler

import (
	"errors"
	"testing"

	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/mocks"
)

func TestCounter_MetadataFastPath(t *testing.T) {
	src := mocks.NewFrameSource(120, 120)
	counter := NewCounter(&mocks.SourceOpener{Source: src}, logger.NewNoop())

	count, err := counter.CountSource(src)
	if err != nil {
		t.Fatalf("CountSource failed: %v", err)
	}
	if count.Total != 120 || count.Method != CountMetadata {
		t.Errorf("expected 120 via metadata, got %d via %s", count.Total, count.Method)
	}
	if src.Reads() != 0 {
		t.Errorf("expected no frames decoded on the fast path, got %d", src.Reads())
	}
}

func TestCounter_ScanFallback(t *testing.T) {
	src := mocks.NewFrameSource(500, 0)
	counter := NewCounter(&mocks.SourceOpener{Source: src}, logger.NewNoop())

	count, err := counter.CountSource(src)
	if err != nil {
		t.Fatalf("CountSource failed: %v", err)
	}
	if count.Total != 500 {
		t.Errorf("expected 500 frames, got %d", count.Total)
	}
	if count.Method != CountScan {
		t.Errorf("expected scan method, got %s", count.Method)
	}
	if src.Cursor() != 0 {
		t.Errorf("expected cursor rewound to 0, got %d", src.Cursor())
	}
}

func TestCounter_NegativeMetadataTriggersScan(t *testing.T) {
	src := mocks.NewFrameSource(42, -1)
	counter := NewCounter(&mocks.SourceOpener{Source: src}, logger.NewNoop())

	total, err := counter.CountFrames("clip.mp4")
	if err != nil {
		t.Fatalf("CountFrames failed: %v", err)
	}
	if total != 42 {
		t.Errorf("expected 42 frames, got %d", total)
	}
}

func TestCounter_CountFramesReleasesHandle(t *testing.T) {
	src := mocks.NewFrameSource(10, 10)
	opener := &mocks.SourceOpener{Source: src}
	counter := NewCounter(opener, logger.NewNoop())

	if _, err := counter.CountFrames("clip.mp4"); err != nil {
		t.Fatalf("CountFrames failed: %v", err)
	}
	if !src.Released() {
		t.Error("expected the counter to release its own handle")
	}
	if opened := opener.Opened(); len(opened) != 1 || opened[0] != "clip.mp4" {
		t.Errorf("unexpected opened paths: %v", opened)
	}
}

func TestCounter_OpenError(t *testing.T) {
	opener := &mocks.SourceOpener{}
	counter := NewCounter(opener, logger.NewNoop())

	_, err := counter.CountFrames("missing.mp4")
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	var oe *OpenError
	if !errors.As(err, &oe) || oe.Path != "missing.mp4" {
		t.Errorf("expected OpenError for missing.mp4, got %v", err)
	}
}

func TestCounter_RewindFailure(t *testing.T) {
	src := mocks.NewFrameSource(3, 0)
	src.SeekErr = errors.New("not seekable")
	counter := NewCounter(&mocks.SourceOpener{Source: src}, logger.NewNoop())

	if _, err := counter.CountSource(src); err == nil {
		t.Error("expected rewind failure to be reported")
	}
}
