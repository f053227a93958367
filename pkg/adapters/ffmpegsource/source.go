// Package ffmpegsource opens videos as frame sources by streaming decoded
// frames out of an ffmpeg child process.
package ffmpegsource

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/framegrab/pkg/ports"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg cannot be located.
	ErrFFmpegNotFound = errors.New("ffmpegsource: ffmpeg not found")

	// ErrBadFrame is returned when the ffmpeg output cannot be parsed.
	ErrBadFrame = errors.New("ffmpegsource: malformed frame")

	// ErrReleased is returned when a released source is used.
	ErrReleased = errors.New("ffmpegsource: source released")
)

// Opener implements ports.SourceOpener with ffmpeg.
type Opener struct {
	ffmpegPath string
	prober     ports.MediaProber
	logger     ports.Logger
}

// New creates an Opener. An empty ffmpegPath searches the usual locations.
// prober supplies the metadata frame count; when nil, or when probing fails,
// TotalFrames reports 0.
func New(ffmpegPath string, prober ports.MediaProber, logger ports.Logger) *Opener {
	return &Opener{
		ffmpegPath: ffmpegPath,
		prober:     prober,
		logger:     logger.WithComponent("source"),
	}
}

// Open prepares path for reading. No process is started until the first
// read.
func (o *Opener) Open(path string) (ports.FrameSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	ffmpeg, err := FindFFmpeg(o.ffmpegPath)
	if err != nil {
		return nil, err
	}

	total := 0
	if o.prober != nil {
		if info, err := o.prober.Probe(path); err != nil {
			o.logger.Debug("No container metadata for %s: %s", path, err)
		} else {
			total = info.FrameCount
			o.logger.Debug("Probed %s: codec=%s frames=%d", path, info.Codec, info.FrameCount)
		}
	}

	return &Source{
		ffmpeg: ffmpeg,
		path:   path,
		total:  total,
		logger: o.logger,
	}, nil
}

var _ ports.SourceOpener = (*Opener)(nil)

// Source is a ports.FrameSource backed by an ffmpeg image2pipe stream.
// Seeking forward reuses the running process by skipping frames; seeking
// backward restarts ffmpeg at the target frame.
type Source struct {
	mu sync.Mutex

	ffmpeg string
	path   string
	total  int
	logger ports.Logger

	cmd    *exec.Cmd
	reader *bufio.Reader
	stderr bytes.Buffer

	// pos is the index of the next frame the running process will emit.
	pos int
	// next is the index the next ReadNext must return.
	next     int
	released bool
}

func (s *Source) TotalFrames() int {
	return s.total
}

func (s *Source) Seek(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrReleased
	}
	if index < 0 {
		return fmt.Errorf("seek to negative frame %d", index)
	}
	s.next = index
	return nil
}

func (s *Source) ReadNext() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, ErrReleased
	}

	if s.cmd == nil || s.next < s.pos {
		if err := s.start(s.next); err != nil {
			return nil, err
		}
	}

	for s.pos < s.next {
		if err := skipBMP(s.reader); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, s.finish(err)
			}
			// The stream lost alignment; restart directly at the target.
			if err := s.start(s.next); err != nil {
				return nil, err
			}
		} else {
			s.pos++
		}
	}

	data, err := readBMP(s.reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, s.finish(err)
		}
		// A malformed frame leaves the pipe misaligned. The next read
		// restarts ffmpeg after the bad frame.
		s.stop()
		s.next++
		return nil, err
	}
	s.pos++
	s.next = s.pos

	return decodeBMP(data)
}

func (s *Source) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil
	}
	s.released = true
	s.stop()
	return nil
}

// start launches ffmpeg so that its first output frame is index.
func (s *Source) start(index int) error {
	s.stop()

	s.stderr.Reset()
	cmd := exec.Command(s.ffmpeg, buildArgs(s.path, index)...)
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	s.logger.Debug("Started ffmpeg at frame %d", index)
	s.cmd = cmd
	s.reader = bufio.NewReaderSize(stdout, 1<<20)
	s.pos = index
	return nil
}

// finish translates a stream error. At a clean end of stream the process is
// reaped and a non-zero exit is reported with its stderr.
func (s *Source) finish(err error) error {
	if !errors.Is(err, io.EOF) {
		return err
	}

	cmd := s.cmd
	s.cmd = nil
	s.reader = nil
	if waitErr := cmd.Wait(); waitErr != nil {
		msg := strings.TrimSpace(s.stderr.String())
		return fmt.Errorf("ffmpeg failed: %w: %s", waitErr, msg)
	}
	return io.EOF
}

func (s *Source) stop() {
	if s.cmd == nil {
		return
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	s.cmd = nil
	s.reader = nil
}

var _ ports.FrameSource = (*Source)(nil)

// buildArgs returns ffmpeg arguments that decode path from frame index
// onward and write every frame as BMP to stdout.
func buildArgs(path string, index int) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", path,
		"-map", "0:v:0",
	}
	if index > 0 {
		args = append(args, "-vf", fmt.Sprintf(`select=gte(n\,%d)`, index))
	}
	args = append(args,
		"-vsync", "passthrough",
		"-pix_fmt", "bgr24",
		"-f", "image2pipe",
		"-c:v", "bmp",
		"-",
	)
	return args
}
