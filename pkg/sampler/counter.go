package sampler

import (
	"errors"
	"fmt"
	"io"

	"github.com/user/framegrab/pkg/ports"
)

// CountMethod records how a frame count was established.
type CountMethod string

const (
	// CountMetadata means the container reported a usable frame count.
	CountMetadata CountMethod = "metadata"
	// CountScan means every frame was decoded and counted.
	CountScan CountMethod = "scan"
)

// Count is the outcome of a frame count.
type Count struct {
	Total  int
	Method CountMethod
}

// Counter determines the number of frames in a video.
type Counter struct {
	opener ports.SourceOpener
	logger ports.Logger
}

// NewCounter creates a Counter that opens videos with opener.
func NewCounter(opener ports.SourceOpener, logger ports.Logger) *Counter {
	return &Counter{
		opener: opener,
		logger: logger.WithComponent("counter"),
	}
}

// CountFrames returns the total number of frames in the video at path.
func (c *Counter) CountFrames(path string) (int, error) {
	count, err := c.Count(path)
	if err != nil {
		return 0, err
	}
	return count.Total, nil
}

// Count opens its own handle on path, counts the frames and releases the
// handle before returning.
func (c *Counter) Count(path string) (Count, error) {
	src, err := c.opener.Open(path)
	if err != nil {
		return Count{}, &OpenError{Path: path, Err: err}
	}
	defer c.release(src)

	return c.CountSource(src)
}

// CountSource counts the frames of an already opened source. The metadata
// count is trusted when positive. Otherwise the source is scanned to the end
// and rewound, leaving the cursor at frame 0 for the caller.
func (c *Counter) CountSource(src ports.FrameSource) (Count, error) {
	if total := src.TotalFrames(); total > 0 {
		c.logger.Debug("Metadata reports %d frames", total)
		return Count{Total: total, Method: CountMetadata}, nil
	}

	c.logger.Warn("Unable to get frame count via metadata, counting manually")

	total := 0
	for {
		if _, err := src.ReadNext(); err != nil {
			if !errors.Is(err, io.EOF) {
				c.logger.Debug("Scan stopped after %d frames: %s", total, err)
			}
			break
		}
		total++
	}

	if err := src.Seek(0); err != nil {
		return Count{}, fmt.Errorf("rewind after scan: %w", err)
	}

	c.logger.Debug("Counted %d frames by scanning", total)
	return Count{Total: total, Method: CountScan}, nil
}

func (c *Counter) release(src ports.FrameSource) {
	if err := src.Release(); err != nil {
		c.logger.Debug("Release failed: %s", err)
	}
}
