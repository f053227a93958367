package ffmpegsource

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/adapters/mp4probe"
)

func TestFindFFmpeg_CustomPathNotFound(t *testing.T) {
	_, err := FindFFmpeg(filepath.Join(t.TempDir(), "no-ffmpeg"))
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	opener := New("", mp4probe.NewProber(), logger.NewNoop())
	if _, err := opener.Open(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}

// makeVideo renders a short test pattern with ffmpeg, skipping the test
// when ffmpeg is not installed.
func makeVideo(t *testing.T, frames int) string {
	t.Helper()

	ffmpeg, err := FindFFmpeg("")
	if err != nil {
		t.Skip("ffmpeg not available")
	}

	path := filepath.Join(t.TempDir(), "pattern.mp4")
	cmd := exec.Command(ffmpeg,
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "lavfi", "-i", "testsrc=size=64x48:rate=10",
		"-frames:v", strconv.Itoa(frames),
		"-c:v", "mpeg4",
		path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("ffmpeg could not render test video: %v: %s", err, out)
	}
	return path
}

func TestSource_ReadAll(t *testing.T) {
	path := makeVideo(t, 25)

	src, err := New("", mp4probe.NewProber(), logger.NewNoop()).Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Release()

	if src.TotalFrames() != 25 {
		t.Errorf("expected metadata count 25, got %d", src.TotalFrames())
	}

	count := 0
	for {
		img, err := src.ReadNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadNext failed after %d frames: %v", count, err)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
			t.Fatalf("expected 64x48 frame, got %dx%d", b.Dx(), b.Dy())
		}
		count++
	}
	if count != 25 {
		t.Errorf("expected 25 frames, got %d", count)
	}
}

func TestSource_Seek(t *testing.T) {
	path := makeVideo(t, 20)

	src, err := New("", mp4probe.NewProber(), logger.NewNoop()).Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Release()

	for _, idx := range []int{10, 15, 3, 0} {
		if err := src.Seek(idx); err != nil {
			t.Fatalf("Seek(%d) failed: %v", idx, err)
		}
		if _, err := src.ReadNext(); err != nil {
			t.Fatalf("ReadNext after Seek(%d) failed: %v", idx, err)
		}
	}

	if err := src.Seek(50); err != nil {
		t.Fatalf("Seek(50) failed: %v", err)
	}
	if _, err := src.ReadNext(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF past the end, got %v", err)
	}
}

func TestSource_ReleaseIdempotent(t *testing.T) {
	path := makeVideo(t, 5)

	src, err := New("", mp4probe.NewProber(), logger.NewNoop()).Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := src.ReadNext(); err != nil {
		t.Fatalf("ReadNext failed: %v", err)
	}

	if err := src.Release(); err != nil {
		t.Errorf("first Release failed: %v", err)
	}
	if err := src.Release(); err != nil {
		t.Errorf("second Release failed: %v", err)
	}
	if _, err := src.ReadNext(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
}

func TestSource_NotMP4HasNoMetadataCount(t *testing.T) {
	path := makeVideo(t, 5)
	avi := filepath.Join(filepath.Dir(path), "pattern.avi")
	ffmpeg, _ := FindFFmpeg("")
	if out, err := exec.Command(ffmpeg, "-hide_banner", "-loglevel", "error", "-y",
		"-i", path, "-c:v", "copy", avi).CombinedOutput(); err != nil {
		t.Skipf("remux failed: %v: %s", err, out)
	}
	if _, err := os.Stat(avi); err != nil {
		t.Skip("remux produced no file")
	}

	src, err := New("", mp4probe.NewProber(), logger.NewNoop()).Open(avi)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Release()

	if src.TotalFrames() != 0 {
		t.Errorf("expected no metadata count for AVI, got %d", src.TotalFrames())
	}
}
