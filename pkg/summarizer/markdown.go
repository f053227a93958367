package summarizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.translate

	fmt.Fprintf(&b, "# %s\n\n", t("Extraction Summary"))
	if s.RunID != "" {
		fmt.Fprintf(&b, "- %s: `%s`\n", t("Run ID"), s.RunID)
	}
	fmt.Fprintf(&b, "- %s: %s\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))
	if s.DurationMs > 0 {
		fmt.Fprintf(&b, "- %s: %d ms\n", t("Duration"), s.DurationMs)
	}

	fmt.Fprintf(&b, "\n## %s\n\n", t("Source"))
	f.row(&b, "Path", s.Source.Path)
	f.row(&b, "Codec", orNA(s.Source.Codec))
	if s.Source.Width > 0 && s.Source.Height > 0 {
		f.row(&b, "Resolution", fmt.Sprintf("%dx%d", s.Source.Width, s.Source.Height))
	}
	if s.Source.TotalFrames > 0 {
		f.row(&b, "Total Frames", fmt.Sprintf("%d (%s)", s.Source.TotalFrames, t(countMethodLabel(s.Source.CountMethod))))
	} else {
		f.row(&b, "Total Frames", "N/A")
	}

	fmt.Fprintf(&b, "\n## %s\n\n", t("Settings"))
	f.row(&b, "Policy", s.Settings.Policy)
	f.row(&b, "Format", s.Settings.Format)
	if s.Settings.Format == "jpeg" {
		f.row(&b, "Quality", strconv.Itoa(s.Settings.Quality))
	}
	if s.Settings.MaxWidth > 0 {
		f.row(&b, "Max Width", fmt.Sprintf("%d px", s.Settings.MaxWidth))
	}
	if s.Settings.Strict {
		f.row(&b, "Strict", t("yes"))
	}
	if s.Settings.Annotate {
		f.row(&b, "Annotate", t("yes"))
	}

	fmt.Fprintf(&b, "\n## %s\n\n", t("Output"))
	f.row(&b, "Folder", s.Output.Folder)
	f.row(&b, "Frames Saved", strconv.Itoa(s.Output.FramesSaved))
	if n := len(s.Output.Skipped); n > 0 {
		f.row(&b, "Skipped", fmt.Sprintf("%d (%s)", n, joinInts(s.Output.Skipped, 10)))
	}
	if s.Output.TotalBytes > 0 {
		f.row(&b, "Total Size", formatBytes(s.Output.TotalBytes))
	}
	if first := s.Output.FirstFile(); first != "" {
		f.row(&b, "First File", "`"+first+"`")
		f.row(&b, "Last File", "`"+s.Output.LastFile()+"`")
	}

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n\nframegrab %s\n", f.version)
	}

	return b.String()
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "- %s: %s\n", f.translate(label), value)
}

func countMethodLabel(method string) string {
	switch method {
	case "metadata":
		return "from metadata"
	case "scan":
		return "counted by scanning"
	}
	return method
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// joinInts joins at most limit values, eliding the rest.
func joinInts(values []int, limit int) string {
	parts := make([]string, 0, limit+1)
	for i, v := range values {
		if i == limit {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
