// Package extract implements the frame extraction stage.
package extract

import (
	"context"
	"time"

	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/sampler"
)

// Stage runs the sampler against one video.
type Stage struct {
	opener   ports.SourceOpener
	fs       ports.FileSystem
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new extract stage.
func NewStage(
	opener ports.SourceOpener,
	fs ports.FileSystem,
	renderer ports.Renderer,
	logger ports.Logger,
) *Stage {
	return &Stage{
		opener:   opener,
		fs:       fs,
		renderer: renderer,
		logger:   logger,
	}
}

// Execute extracts the frames selected by input.Policy. On failure the
// partial result is returned alongside the error.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	fs := &sizeCountingFS{FileSystem: s.fs}
	extractor := sampler.NewExtractor(s.opener, fs, s.renderer, s.logger, input.Options)

	start := time.Now()
	res, err := extractor.Extract(ctx, sampler.Request{
		Path:         input.Path,
		OutputFolder: input.OutputFolder,
		Policy:       input.Policy,
		Naming:       input.Naming,
	})

	return pipeline.ExtractResult{
		Result:     res,
		TotalBytes: fs.written,
		Elapsed:    time.Since(start),
	}, err
}

// sizeCountingFS sums the bytes successfully written through it.
type sizeCountingFS struct {
	ports.FileSystem
	written int64
}

func (f *sizeCountingFS) WriteFile(path string, data []byte) error {
	if err := f.FileSystem.WriteFile(path, data); err != nil {
		return err
	}
	f.written += int64(len(data))
	return nil
}
