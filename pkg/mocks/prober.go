package mocks

import (
	"fmt"

	"github.com/user/framegrab/pkg/ports"
)

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	// Info is returned for every path unless ProbeFunc is set.
	Info      ports.MediaInfo
	ProbeFunc func(path string) (ports.MediaInfo, error)

	Probed []string
}

func (m *MediaProber) Probe(path string) (ports.MediaInfo, error) {
	m.Probed = append(m.Probed, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	if m.Info == (ports.MediaInfo{}) {
		return ports.MediaInfo{}, fmt.Errorf("mock: not a container: %s", path)
	}
	return m.Info, nil
}

var _ ports.MediaProber = (*MediaProber)(nil)
