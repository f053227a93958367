// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/framegrab/pkg/orchestrator"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/sampler"
)

// Config represents the full configuration for framegrab.
type Config struct {
	// Selection
	Mode string `yaml:"mode"`
	N    int    `yaml:"n"`

	// Output
	Output    string `yaml:"output"`
	Prefix    string `yaml:"prefix"`
	Format    string `yaml:"format"`
	Extension string `yaml:"extension"`
	Quality   int    `yaml:"quality"`
	MaxWidth  int    `yaml:"max_width"`
	Annotate  bool   `yaml:"annotate"`
	Strict    bool   `yaml:"strict"`

	// Decoder
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Reporting
	Summary     string `yaml:"summary"`
	MetricsFile string `yaml:"metrics_file"`
	LogLevel    string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Mode:     "all",
		Output:   "frames",
		Prefix:   sampler.DefaultPrefix,
		Format:   "jpeg",
		Quality:  sampler.DefaultOptions().Quality,
		LogLevel: "info",
	}
}

// DefaultFile is loaded from the working directory when no config file is
// named explicitly.
const DefaultFile = "framegrab.yaml"

// Discover returns the config file to load: explicit when set, otherwise
// DefaultFile when it exists. An empty path means built-in defaults.
func Discover(fs ports.FileSystem, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	ok, err := fs.Exists(DefaultFile)
	if err != nil {
		return "", fmt.Errorf("check %s: %w", DefaultFile, err)
	}
	if !ok {
		return "", nil
	}
	return DefaultFile, nil
}

// Load reads a YAML config file through fs on top of Defaults.
func Load(fs ports.FileSystem, path string) (Config, error) {
	cfg := Defaults()

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Policy returns the selection policy described by Mode and N.
func (c Config) Policy() (sampler.Policy, error) {
	return sampler.ParsePolicy(c.Mode, c.N)
}

// ImageFormat returns the output image format.
func (c Config) ImageFormat() (ports.ImageFormat, error) {
	format, ok := ports.ParseImageFormat(c.Format)
	if !ok {
		return format, fmt.Errorf("%w: unknown format %q", sampler.ErrInvalidParameter, c.Format)
	}
	return format, nil
}

// Naming returns the output file naming. The extension follows the format
// unless Extension is set.
func (c Config) Naming(format ports.ImageFormat) sampler.Naming {
	ext := c.Extension
	switch {
	case ext == "":
		ext = format.Extension()
	case ext[0] != '.':
		ext = "." + ext
	}
	return sampler.Naming{Prefix: c.Prefix, Extension: ext}
}

// Validate checks that the configuration can produce a run.
func (c Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.ImageFormat(); err != nil {
		return err
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("%w: quality must be between 1 and 100, got %d", sampler.ErrInvalidParameter, c.Quality)
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("%w: max_width must not be negative, got %d", sampler.ErrInvalidParameter, c.MaxWidth)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output folder is empty", sampler.ErrInvalidParameter)
	}
	return nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config for the video
// at path.
func (c Config) ToOrchestratorConfig(path string) (orchestrator.Config, error) {
	if err := c.Validate(); err != nil {
		return orchestrator.Config{}, err
	}

	policy, _ := c.Policy()
	format, _ := c.ImageFormat()

	summary := c.Summary
	if summary != "" && !filepath.IsAbs(summary) && filepath.Dir(summary) == "." {
		// A bare file name lands next to the frames.
		summary = filepath.Join(c.Output, summary)
	}

	return orchestrator.Config{
		Path:         path,
		OutputFolder: c.Output,
		Policy:       policy,
		Naming:       c.Naming(format),
		Options: sampler.Options{
			Format:   format,
			Quality:  c.Quality,
			Strict:   c.Strict,
			MaxWidth: c.MaxWidth,
			Annotate: c.Annotate,
		},
		SummaryPath: summary,
		MetricsPath: c.MetricsFile,
	}, nil
}
