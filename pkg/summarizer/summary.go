package summarizer

import "time"

// Summary contains all data collected during one extraction run.
type Summary struct {
	GeneratedAt time.Time
	RunID       string

	Source   SourceInfo
	Settings Settings
	Output   OutputInfo

	DurationMs int
}

// SourceInfo describes the input video.
type SourceInfo struct {
	Path   string
	Codec  string
	Width  int
	Height int

	// TotalFrames is 0 when the frame count was not established.
	TotalFrames int
	// CountMethod is "metadata" or "scan".
	CountMethod string
}

// Settings contains the extraction configuration.
type Settings struct {
	Policy   string
	Format   string
	Quality  int
	Strict   bool
	MaxWidth int
	Annotate bool
}

// OutputInfo describes what was written.
type OutputInfo struct {
	Folder      string
	FramesSaved int
	FramesRead  int
	// Skipped lists target frames that could not be read.
	Skipped    []int
	Files      []string
	TotalBytes int64
}

// FirstFile returns the first written file, or "".
func (o OutputInfo) FirstFile() string {
	if len(o.Files) == 0 {
		return ""
	}
	return o.Files[0]
}

// LastFile returns the last written file, or "".
func (o OutputInfo) LastFile() string {
	if len(o.Files) == 0 {
		return ""
	}
	return o.Files[len(o.Files)-1]
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRunID sets the run identifier.
func (b *Builder) WithRunID(id string) *Builder {
	b.summary.RunID = id
	return b
}

// WithSource sets input video information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithSettings sets extraction settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// WithDuration sets the wall-clock duration of the run.
func (b *Builder) WithDuration(d time.Duration) *Builder {
	b.summary.DurationMs = int(d.Milliseconds())
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
