package ports

import (
	"image"
	"strings"
)

// Renderer abstracts the image work done on a frame before it is written.
type Renderer interface {
	// EncodeImage encodes an image to the specified format.
	// quality is only honored by lossy formats.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage scales an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image

	// Annotate draws a caption in the top-left corner of a copy of img.
	Annotate(img image.Image, text string) image.Image
}

// ImageFormat specifies the still-image codec used for saved frames.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatBMP
	FormatTIFF
)

// Extension returns the file extension, including the leading dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatBMP:
		return ".bmp"
	case FormatTIFF:
		return ".tiff"
	default:
		return ".jpg"
	}
}

// String returns the format name.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// ParseImageFormat maps a format name or file extension to an ImageFormat.
// The second return value is false for unrecognized input.
func ParseImageFormat(s string) (ImageFormat, bool) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "png":
		return FormatPNG, true
	case "bmp":
		return FormatBMP, true
	case "tif", "tiff":
		return FormatTIFF, true
	default:
		return FormatJPEG, false
	}
}
