package sampler

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/user/framegrab/pkg/ports"
)

// Options controls how selected frames are written.
type Options struct {
	// Format is the still-image codec for saved frames.
	Format ports.ImageFormat
	// Quality is the encoder quality for lossy formats (1-100).
	Quality int
	// Strict fails uniform sampling when a target frame cannot be read
	// instead of skipping it.
	Strict bool
	// MaxWidth downscales wider frames, preserving aspect ratio. 0 disables.
	MaxWidth int
	// Annotate stamps the source frame index onto each saved image.
	Annotate bool
}

// DefaultOptions returns JPEG output at quality 95.
func DefaultOptions() Options {
	return Options{
		Format:  ports.FormatJPEG,
		Quality: 95,
	}
}

// Request describes a single extraction.
type Request struct {
	Path         string
	OutputFolder string
	Policy       Policy
	// Naming defaults to DefaultNaming when zero.
	Naming Naming
}

// Result reports what an extraction wrote.
type Result struct {
	// FramesSaved is the number of files written; it equals len(OutputFiles).
	FramesSaved int
	// OutputFiles lists written paths in save order.
	OutputFiles []string
	// SourceIndices holds the source frame index of each written file.
	SourceIndices []int
	// FramesRead counts successful decodes.
	FramesRead int
	// TotalFrames is the established frame count for uniform sampling and
	// the number of readable frames for sequential policies.
	TotalFrames int
	// CountMethod is set for uniform sampling.
	CountMethod CountMethod
	// Skipped lists uniform targets that could not be read.
	Skipped []int
}

// Extractor pulls frames selected by a Policy out of a video and saves them.
// An Extractor holds no per-call state; concurrent calls are safe as long as
// they target different output folders.
type Extractor struct {
	opener   ports.SourceOpener
	fs       ports.FileSystem
	renderer ports.Renderer
	counter  *Counter
	logger   ports.Logger
	opts     Options
}

// NewExtractor creates an Extractor.
func NewExtractor(
	opener ports.SourceOpener,
	fs ports.FileSystem,
	renderer ports.Renderer,
	logger ports.Logger,
	opts Options,
) *Extractor {
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultOptions().Quality
	}
	return &Extractor{
		opener:   opener,
		fs:       fs,
		renderer: renderer,
		counter:  NewCounter(opener, logger),
		logger:   logger.WithComponent("sampler"),
		opts:     opts,
	}
}

// Extract runs req. Parameter and open failures are returned before anything
// is written. On a write failure the partial Result is returned with the
// error; files written so far are left in place.
func (e *Extractor) Extract(ctx context.Context, req Request) (Result, error) {
	if err := req.Policy.validate(); err != nil {
		return Result{}, err
	}
	naming := req.Naming
	if naming == (Naming{}) {
		naming = DefaultNaming()
	}

	src, err := e.opener.Open(req.Path)
	if err != nil {
		return Result{}, &OpenError{Path: req.Path, Err: err}
	}
	defer func() {
		if err := src.Release(); err != nil {
			e.logger.Debug("Release failed: %s", err)
		}
	}()

	var (
		indices []int
		count   Count
	)
	if req.Policy.Mode() == ModeExactlyN {
		count, err = e.counter.CountSource(src)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrFrameCountUnavailable, err)
		}
		if count.Total <= 0 {
			return Result{}, fmt.Errorf("%w: %s", ErrFrameCountUnavailable, req.Path)
		}
		indices, err = UniformIndices(req.Policy.N(), count.Total)
		if err != nil {
			return Result{}, err
		}
	}

	if err := e.fs.MkdirAll(req.OutputFolder); err != nil {
		return Result{}, fmt.Errorf("create output folder: %w", err)
	}

	e.logger.Debug("Extracting %s from %s", req.Policy, req.Path)

	out := &output{folder: req.OutputFolder, naming: naming}
	switch req.Policy.Mode() {
	case ModeExactlyN:
		out.result.TotalFrames = count.Total
		out.result.CountMethod = count.Method
		err = e.extractIndices(ctx, src, indices, out)
	case ModeEveryNth:
		err = e.extractSequential(ctx, src, req.Policy.N(), out)
	default:
		err = e.extractSequential(ctx, src, 1, out)
	}
	return out.result, err
}

// output accumulates the result under the save counter.
type output struct {
	folder string
	naming Naming
	result Result
}

// extractSequential reads the stream front to back and saves every frame
// whose read counter is a multiple of step. A read failure ends the stream.
func (e *Extractor) extractSequential(ctx context.Context, src ports.FrameSource, step int, out *output) error {
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		img, err := src.ReadNext()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.logger.Warn("Stream ended early after %d frames: %s", i, err)
			}
			break
		}
		out.result.FramesRead++

		if i%step != 0 {
			continue
		}
		if err := e.save(img, i, out); err != nil {
			return err
		}
	}

	out.result.TotalFrames = out.result.FramesRead
	return nil
}

// extractIndices seeks to each target and reads one frame. Unreadable
// targets are skipped unless Strict is set.
func (e *Extractor) extractIndices(ctx context.Context, src ports.FrameSource, indices []int, out *output) error {
	for _, idx := range indices {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		img, err := readAt(src, idx)
		if err != nil {
			if e.opts.Strict {
				return &FrameMissingError{Index: idx, Err: err}
			}
			e.logger.Debug("Skipping frame %d: %s", idx, err)
			out.result.Skipped = append(out.result.Skipped, idx)
			continue
		}
		out.result.FramesRead++

		if err := e.save(img, idx, out); err != nil {
			return err
		}
	}

	if n := len(out.result.Skipped); n > 0 {
		e.logger.Warn("%d of %d target frames could not be read", n, len(indices))
	}
	return nil
}

func readAt(src ports.FrameSource, index int) (image.Image, error) {
	if err := src.Seek(index); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}
	img, err := src.ReadNext()
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return img, nil
}

// save writes img under the next save counter.
func (e *Extractor) save(img image.Image, sourceIndex int, out *output) error {
	if w := e.opts.MaxWidth; w > 0 {
		if b := img.Bounds(); b.Dx() > w {
			h := b.Dy() * w / b.Dx()
			if h < 1 {
				h = 1
			}
			img = e.renderer.ResizeImage(img, w, h)
		}
	}
	if e.opts.Annotate {
		img = e.renderer.Annotate(img, fmt.Sprintf("#%d", sourceIndex))
	}

	data, err := e.renderer.EncodeImage(img, e.opts.Format, e.opts.Quality)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", sourceIndex, err)
	}

	path := out.naming.Path(out.folder, out.result.FramesSaved)
	if err := e.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	e.logger.Debug("Saved frame %d to %s", sourceIndex, path)

	out.result.FramesSaved++
	out.result.OutputFiles = append(out.result.OutputFiles, path)
	out.result.SourceIndices = append(out.result.SourceIndices, sourceIndex)
	return nil
}
