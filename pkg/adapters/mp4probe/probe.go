// Package mp4probe reads codec and frame count metadata from MP4 files
// without decoding any samples.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framegrab/pkg/ports"
)

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecAV1     Codec = "av1"
	CodecHEVC    Codec = "hevc"
	CodecVP9     Codec = "vp9"
	CodecUnknown Codec = "unknown"
)

// ErrNoVideoTrack is returned when the file has no vide track.
var ErrNoVideoTrack = errors.New("no video track found")

// Info is the metadata of the first video track.
type Info struct {
	Codec      Codec
	FrameCount int
	Width      int
	Height     int
	Fragmented bool
}

// Probe reads the metadata of the MP4 file at path.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader reads MP4 metadata from reader. Media data is skipped, and the
// reader is rewound to the start afterwards.
func ProbeReader(reader io.ReadSeeker) (Info, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("seek: %w", err)
	}

	return inspect(mp4File)
}

func inspect(mp4File *mp4.File) (Info, error) {
	if mp4File.IsFragmented() {
		if mp4File.Init == nil || mp4File.Init.Moov == nil {
			return Info{}, ErrNoVideoTrack
		}
		trak := videoTrack(mp4File.Init.Moov.Traks)
		if trak == nil {
			return Info{}, ErrNoVideoTrack
		}
		info := describeTrack(trak)
		info.Fragmented = true
		info.FrameCount = fragmentedSamples(mp4File.Segments, trackID(trak))
		return info, nil
	}

	if mp4File.Moov == nil {
		return Info{}, ErrNoVideoTrack
	}
	trak := videoTrack(mp4File.Moov.Traks)
	if trak == nil {
		return Info{}, ErrNoVideoTrack
	}
	info := describeTrack(trak)
	info.FrameCount = progressiveSamples(trak)
	return info, nil
}

// videoTrack returns the first track whose handler is vide.
func videoTrack(traks []*mp4.TrakBox) *mp4.TrakBox {
	for _, trak := range traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		if trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func trackID(trak *mp4.TrakBox) uint32 {
	if trak.Tkhd == nil {
		return 0
	}
	return trak.Tkhd.TrackID
}

func sampleTable(trak *mp4.TrakBox) *mp4.StblBox {
	if trak.Mdia == nil || trak.Mdia.Minf == nil {
		return nil
	}
	return trak.Mdia.Minf.Stbl
}

// describeTrack fills codec and dimensions from the sample description.
func describeTrack(trak *mp4.TrakBox) Info {
	info := Info{Codec: CodecUnknown}

	stbl := sampleTable(trak)
	if stbl == nil || stbl.Stsd == nil {
		return info
	}

	for _, child := range stbl.Stsd.Children {
		codec := codecFromSampleEntry(child.Type())
		if codec == CodecUnknown {
			continue
		}
		info.Codec = codec
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		break
	}
	return info
}

func codecFromSampleEntry(boxType string) Codec {
	switch boxType {
	case "avc1", "avc3":
		return CodecH264
	case "av01":
		return CodecAV1
	case "hvc1", "hev1":
		return CodecHEVC
	case "vp09":
		return CodecVP9
	}
	return CodecUnknown
}

// progressiveSamples returns the stsz sample count of a progressive track.
func progressiveSamples(trak *mp4.TrakBox) int {
	stbl := sampleTable(trak)
	if stbl == nil || stbl.Stsz == nil {
		return 0
	}
	return int(stbl.Stsz.SampleNumber)
}

// fragmentedSamples sums the trun sample counts of the given track over all
// fragments.
func fragmentedSamples(segments []*mp4.MediaSegment, id uint32) int {
	total := 0
	for _, seg := range segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != id {
					continue
				}
				for _, trun := range traf.Truns {
					total += len(trun.Samples)
				}
			}
		}
	}
	return total
}

// Prober implements ports.MediaProber for MP4 files. Results are cached per
// path and reused while the file's size and modification time are unchanged,
// so the probe stage and the frame source share one parse.
type Prober struct {
	mu    sync.Mutex
	cache map[string]cacheEntry
	parse func(path string) (Info, error)
}

type cacheEntry struct {
	size    int64
	modTime time.Time
	info    ports.MediaInfo
	err     error
}

// NewProber creates a Prober.
func NewProber() *Prober {
	return &Prober{
		cache: make(map[string]cacheEntry),
		parse: Probe,
	}
}

// Probe implements ports.MediaProber.
func (p *Prober) Probe(path string) (ports.MediaInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.cache[path]; ok && entry.size == stat.Size() && entry.modTime.Equal(stat.ModTime()) {
		return entry.info, entry.err
	}

	entry := cacheEntry{size: stat.Size(), modTime: stat.ModTime()}
	info, err := p.parse(path)
	if err != nil {
		entry.err = err
	} else {
		entry.info = ports.MediaInfo{
			Codec:      string(info.Codec),
			Width:      info.Width,
			Height:     info.Height,
			FrameCount: info.FrameCount,
			Fragmented: info.Fragmented,
		}
	}
	p.cache[path] = entry

	return entry.info, entry.err
}

var _ ports.MediaProber = (*Prober)(nil)
