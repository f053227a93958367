package mocks

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/user/framegrab/pkg/ports"
)

// ErrUnreadable is returned by FrameSource for frames listed in Unreadable.
var ErrUnreadable = errors.New("mock: frame unreadable")

// FrameSource is an in-memory ports.FrameSource. Frame i is a solid image
// whose red channel is i%256, so tests can tell frames apart after decoding.
type FrameSource struct {
	mu sync.Mutex

	// Width and Height set the frame size; zero means 1.
	Width  int
	Height int

	// Frames is the number of readable frames in the stream.
	Frames int
	// ReportedTotal is returned by TotalFrames.
	ReportedTotal int
	// Unreadable marks indices whose read fails after a Seek.
	Unreadable map[int]bool
	// SeekErr, when set, is returned by every Seek.
	SeekErr error

	cursor    int
	released  int
	seeks     []int
	readCount int
}

// NewFrameSource creates a source with frames readable frames whose metadata
// reports reported.
func NewFrameSource(frames, reported int) *FrameSource {
	return &FrameSource{
		Frames:        frames,
		ReportedTotal: reported,
		Unreadable:    make(map[int]bool),
	}
}

func (m *FrameSource) TotalFrames() int {
	return m.ReportedTotal
}

func (m *FrameSource) Seek(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks = append(m.seeks, index)
	if m.SeekErr != nil {
		return m.SeekErr
	}
	if index < 0 {
		return fmt.Errorf("mock: negative seek %d", index)
	}
	m.cursor = index
	return nil
}

func (m *FrameSource) ReadNext() (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released > 0 {
		return nil, errors.New("mock: source released")
	}
	if m.cursor >= m.Frames {
		return nil, io.EOF
	}
	idx := m.cursor
	m.cursor++
	if m.Unreadable[idx] {
		return nil, ErrUnreadable
	}
	m.readCount++
	return frameImage(idx, m.Width, m.Height), nil
}

func (m *FrameSource) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released++
	return nil
}

// Cursor returns the current read position.
func (m *FrameSource) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Released reports whether Release was called.
func (m *FrameSource) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released > 0
}

// Seeks returns the recorded Seek targets.
func (m *FrameSource) Seeks() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.seeks...)
}

// Reads returns the number of successful reads.
func (m *FrameSource) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCount
}

var _ ports.FrameSource = (*FrameSource)(nil)

// FrameImage returns the 1x1 image FrameSource yields for index.
func FrameImage(index int) image.Image {
	return frameImage(index, 1, 1)
}

func frameImage(index, width, height int) image.Image {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := color.RGBA{R: uint8(index % 256), A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// FrameIndexOf recovers index%256 from an image produced by FrameImage.
func FrameIndexOf(img image.Image) int {
	r, _, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	return int(r >> 8)
}

// SourceOpener is a mock implementation of ports.SourceOpener.
type SourceOpener struct {
	mu sync.Mutex

	// Source is returned by Open when OpenFunc is nil.
	Source *FrameSource
	// OpenFunc overrides Open.
	OpenFunc func(path string) (ports.FrameSource, error)

	opened []string
}

func (m *SourceOpener) Open(path string) (ports.FrameSource, error) {
	m.mu.Lock()
	m.opened = append(m.opened, path)
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if m.Source == nil {
		return nil, fmt.Errorf("mock: no source for %s", path)
	}
	return m.Source, nil
}

// Opened returns the paths passed to Open.
func (m *SourceOpener) Opened() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.opened...)
}

var _ ports.SourceOpener = (*SourceOpener)(nil)
