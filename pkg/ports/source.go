// Package ports defines the interfaces framegrab uses to reach video decoders,
// the filesystem and image codecs.
package ports

import (
	"image"
)

// FrameSource is an opened video exposed as a zero-indexed sequence of frames.
// A FrameSource is owned by the operation that opened it and is not safe for
// concurrent use.
type FrameSource interface {
	// TotalFrames returns the frame count reported by the container metadata.
	// Zero or a negative value means the count is unknown.
	TotalFrames() int

	// Seek positions the read cursor so that the next ReadNext returns the
	// frame at index. Seeking is best effort and may be slow.
	Seek(index int) error

	// ReadNext decodes the frame under the cursor and advances it.
	// It returns io.EOF once the stream is exhausted.
	ReadNext() (image.Image, error)

	// Release frees the underlying decoder. Calling it more than once is allowed.
	Release() error
}

// SourceOpener opens video files as frame sources.
type SourceOpener interface {
	// Open opens the video at path.
	Open(path string) (FrameSource, error)
}
