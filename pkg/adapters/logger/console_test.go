package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/framegrab/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := NewWriter(ports.LevelWarn, &stdout, &stderr)

	log.Debug("debug line %d", 1)
	log.Info("info line %d", 2)
	log.Warn("warn line %d", 3)
	log.Error("error line %d", 4)

	if stdout.Len() != 0 {
		t.Errorf("expected no stdout output, got %q", stdout.String())
	}
	out := stderr.String()
	if !strings.Contains(out, "warn line 3") {
		t.Errorf("expected warning in stderr, got %q", out)
	}
	if !strings.Contains(out, "error line 4") {
		t.Errorf("expected error in stderr, got %q", out)
	}
}

func TestConsoleLogger_Streams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := NewWriter(ports.LevelDebug, &stdout, &stderr)

	log.Info("progress %d/%d", 1, 2)
	log.Warn("careful")

	if !strings.Contains(stdout.String(), "progress 1/2") {
		t.Errorf("expected info on stdout, got %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "careful") {
		t.Error("expected warning to stay off stdout")
	}
	if !strings.Contains(stderr.String(), "careful") {
		t.Errorf("expected warning on stderr, got %q", stderr.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := NewWriter(ports.LevelDebug, &stdout, &stderr).
		WithComponent("sampler").
		WithComponent("source")

	log.Info("hello")

	if got := stdout.String(); !strings.HasPrefix(got, "[sampler/source] hello") {
		t.Errorf("expected component prefix, got %q", got)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := NewWriter(ports.LevelQuiet, &stdout, &stderr)

	log.Error("boom")

	if stdout.Len()+stderr.Len() != 0 {
		t.Error("expected quiet level to suppress everything")
	}
}

func TestNoopLogger(t *testing.T) {
	log := NewNoop()
	if log.WithComponent("x") != ports.Logger(log) {
		t.Error("expected WithComponent to return the same logger")
	}
}
