// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/user/framegrab/pkg/ports"
)

const (
	labelPadding = 4.0
	labelMargin  = 6.0
)

var (
	labelBackground = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	labelForeground = color.White
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// EncodeImage encodes an image to the specified format. Quality only
// applies to JPEG.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode BMP: %w", err)
		}
	case ports.FormatTIFF:
		opts := &tiff.Options{Compression: tiff.Deflate}
		if err := tiff.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode TIFF: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Annotate draws text on a translucent box in the top-left corner.
func (r *Renderer) Annotate(img image.Image, text string) image.Image {
	dc := gg.NewContextForImage(img)

	tw, th := dc.MeasureString(text)
	dc.SetColor(labelBackground)
	dc.DrawRectangle(labelMargin, labelMargin, tw+labelPadding*2, th+labelPadding*2)
	dc.Fill()

	dc.SetColor(labelForeground)
	dc.DrawStringAnchored(text, labelMargin+labelPadding, labelMargin+labelPadding+th/2, 0, 0.5)

	return dc.Image()
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
