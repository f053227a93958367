package ffmpegsource

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/bmp"
)

const (
	bmpFileHeaderSize = 14
	bmpMinSize        = bmpFileHeaderSize + 40
	bmpMaxSize        = 1 << 30
)

// readBMP reads one BMP image from an image2pipe stream. The file header's
// size field delimits the image. io.EOF is returned only on a clean boundary.
func readBMP(r *bufio.Reader) ([]byte, error) {
	header := make([]byte, bmpFileHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: truncated header", ErrBadFrame)
	}
	if header[0] != 'B' || header[1] != 'M' {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadFrame, header[:2])
	}

	size := binary.LittleEndian.Uint32(header[2:6])
	if size < bmpMinSize || size > bmpMaxSize {
		return nil, fmt.Errorf("%w: invalid size %d", ErrBadFrame, size)
	}

	data := make([]byte, size)
	copy(data, header)
	if _, err := io.ReadFull(r, data[bmpFileHeaderSize:]); err != nil {
		return nil, fmt.Errorf("%w: truncated body", ErrBadFrame)
	}
	return data, nil
}

// skipBMP discards one BMP image without decoding it.
func skipBMP(r *bufio.Reader) error {
	_, err := readBMP(r)
	return err
}

func decodeBMP(data []byte) (image.Image, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	return img, nil
}
