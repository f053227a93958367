package ports

// MediaInfo is container metadata read without decoding.
type MediaInfo struct {
	Codec      string
	Width      int
	Height     int
	FrameCount int
	Fragmented bool
}

// MediaProber reads container metadata.
type MediaProber interface {
	// Probe returns the metadata of the first video track in the file at path.
	// An error means the container could not be understood.
	Probe(path string) (MediaInfo, error)
}
