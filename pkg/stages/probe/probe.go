// Package probe implements the metadata stage that runs before extraction.
package probe

import (
	"context"

	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
)

// Stage reads container metadata. A video the prober cannot understand is
// not an error: the result is simply empty and extraction proceeds.
type Stage struct {
	prober ports.MediaProber
	logger ports.Logger
}

// NewStage creates a new probe stage.
func NewStage(prober ports.MediaProber, logger ports.Logger) *Stage {
	return &Stage{
		prober: prober,
		logger: logger.WithComponent("probe"),
	}
}

// Execute probes input.Path.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ProbeResult{}, err
	}

	info, err := s.prober.Probe(input.Path)
	if err != nil {
		s.logger.Debug("Metadata probe failed: %s", err)
		return pipeline.ProbeResult{}, nil
	}

	s.logger.Debug("Probed %s: codec=%s frames=%d", input.Path, info.Codec, info.FrameCount)
	return pipeline.ProbeResult{
		Codec:         info.Codec,
		Width:         info.Width,
		Height:        info.Height,
		MetadataCount: info.FrameCount,
	}, nil
}
