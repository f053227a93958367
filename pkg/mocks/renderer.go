package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/framegrab/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer. By default
// EncodeImage returns "<format>:<index>" where index comes from
// FrameIndexOf, so written files identify their source frame.
type Renderer struct {
	mu sync.Mutex

	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image
	AnnotateFunc    func(img image.Image, text string) image.Image

	Annotations []string
	Resizes     [][2]int
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte(fmt.Sprintf("%s:%d", format, FrameIndexOf(img))), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.mu.Lock()
	m.Resizes = append(m.Resizes, [2]int{width, height})
	m.mu.Unlock()
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return img
}

func (m *Renderer) Annotate(img image.Image, text string) image.Image {
	m.mu.Lock()
	m.Annotations = append(m.Annotations, text)
	m.mu.Unlock()
	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(img, text)
	}
	return img
}

var _ ports.Renderer = (*Renderer)(nil)
