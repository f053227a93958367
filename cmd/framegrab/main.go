// Package main provides the CLI entry point for framegrab.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/framegrab/pkg/adapters/ffmpegsource"
	"github.com/user/framegrab/pkg/adapters/ggrenderer"
	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/adapters/mp4probe"
	"github.com/user/framegrab/pkg/adapters/osfilesystem"
	"github.com/user/framegrab/pkg/config"
	"github.com/user/framegrab/pkg/metrics"
	"github.com/user/framegrab/pkg/orchestrator"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/sampler"
	"github.com/user/framegrab/pkg/stages/extract"
	"github.com/user/framegrab/pkg/stages/probe"
	"github.com/user/framegrab/pkg/stages/report"
	"github.com/user/framegrab/pkg/summarizer"
)

var version = "dev"

const envPrefix = "FRAMEGRAB_"

func main() {
	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, l10n.F("Failed to load .env: %s", err))
	}

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:    "framegrab",
		Usage:   l10n.T("Extract still frames from videos"),
		Version: version,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Value:    "info",
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				EnvVars:  []string{envPrefix + "LOG_LEVEL"},
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				EnvVars:  []string{envPrefix + "QUIET"},
				Category: l10n.T("Logging"),
			},
			&cli.StringFlag{
				Name:     "ffmpeg-path",
				Usage:    l10n.T("Path to the ffmpeg executable"),
				EnvVars:  []string{envPrefix + "FFMPEG_PATH"},
				Category: l10n.T("Decoder"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     l10n.T("Print the number of frames in a video"),
				ArgsUsage: "<video>",
				Action:    runCount,
			},
			{
				Name:      "extract",
				Usage:     l10n.T("Save selected frames of a video as images"),
				ArgsUsage: "<video>",
				Flags:     extractFlags(),
				Action:    runExtract,
			},
			{
				Name:      "probe",
				Usage:     l10n.T("Show container metadata and ffmpeg availability"),
				ArgsUsage: "<video>",
				Action:    runProbe,
			},
		},

		// Exit codes are decided in main.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func extractFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   l10n.T("YAML config file; flags override its values"),
			EnvVars: []string{envPrefix + "CONFIG"},
		},
		&cli.StringFlag{
			Name:     "mode",
			Aliases:  []string{"m"},
			Value:    "all",
			Usage:    l10n.T("Selection mode (all, every, uniform)"),
			EnvVars:  []string{envPrefix + "MODE"},
			Category: l10n.T("Selection"),
		},
		&cli.IntFlag{
			Name:     "n",
			Usage:    l10n.T("Interval for every, frame count for uniform"),
			EnvVars:  []string{envPrefix + "N"},
			Category: l10n.T("Selection"),
		},
		&cli.BoolFlag{
			Name:     "strict",
			Usage:    l10n.T("Fail when a uniform target frame cannot be read"),
			EnvVars:  []string{envPrefix + "STRICT"},
			Category: l10n.T("Selection"),
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Value:    "frames",
			Usage:    l10n.T("Output folder"),
			EnvVars:  []string{envPrefix + "OUTPUT"},
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "prefix",
			Value:    sampler.DefaultPrefix,
			Usage:    l10n.T("File name prefix"),
			EnvVars:  []string{envPrefix + "PREFIX"},
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Value:    "jpeg",
			Usage:    l10n.T("Image format (jpeg, png, bmp, tiff)"),
			EnvVars:  []string{envPrefix + "FORMAT"},
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "extension",
			Usage:    l10n.T("File extension (default: from format)"),
			EnvVars:  []string{envPrefix + "EXTENSION"},
			Category: l10n.T("Output"),
		},
		&cli.IntFlag{
			Name:     "quality",
			Aliases:  []string{"q"},
			Value:    sampler.DefaultOptions().Quality,
			Usage:    l10n.T("JPEG quality (1-100)"),
			EnvVars:  []string{envPrefix + "QUALITY"},
			Category: l10n.T("Output"),
		},
		&cli.IntFlag{
			Name:     "max-width",
			Usage:    l10n.T("Downscale frames wider than this (0 = keep size)"),
			EnvVars:  []string{envPrefix + "MAX_WIDTH"},
			Category: l10n.T("Output"),
		},
		&cli.BoolFlag{
			Name:     "annotate",
			Usage:    l10n.T("Stamp the source frame index on each image"),
			EnvVars:  []string{envPrefix + "ANNOTATE"},
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Write a Markdown summary to this path"),
			EnvVars:  []string{envPrefix + "SUMMARY"},
			Category: l10n.T("Reporting"),
		},
		&cli.StringFlag{
			Name:     "metrics-file",
			Usage:    l10n.T("Write Prometheus textfile metrics to this path"),
			EnvVars:  []string{envPrefix + "METRICS_FILE"},
			Category: l10n.T("Reporting"),
		},
	}
}

// newLogger creates the logger selected by the global flags.
func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	level := cfg.LogLevel
	if c.IsSet("log-level") || level == "" {
		level = c.String("log-level")
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func videoArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit(l10n.T("exactly one video path is required"), 2)
	}
	return c.Args().First(), nil
}

// resolveConfig merges defaults, the config file and flags, in that order
// of precedence. Without --config, framegrab.yaml in the working directory
// is used when present.
func resolveConfig(c *cli.Context, fs ports.FileSystem) (config.Config, error) {
	cfg := config.Defaults()
	path, err := config.Discover(fs, c.String("config"))
	if err != nil {
		return cfg, err
	}
	if path != "" {
		loaded, err := config.Load(fs, path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("n") {
		cfg.N = c.Int("n")
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("prefix") {
		cfg.Prefix = c.String("prefix")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("extension") {
		cfg.Extension = c.String("extension")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("max-width") {
		cfg.MaxWidth = c.Int("max-width")
	}
	if c.IsSet("annotate") {
		cfg.Annotate = c.Bool("annotate")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}

	return cfg, nil
}

func runCount(c *cli.Context) error {
	path, err := videoArg(c)
	if err != nil {
		return err
	}

	log := newLogger(c, config.Defaults())
	opener := ffmpegsource.New(c.String("ffmpeg-path"), mp4probe.NewProber(), log)
	counter := sampler.NewCounter(opener, log)

	log.Info("Counting frames in %s", path)
	count, err := counter.Count(path)
	if err != nil {
		return err
	}
	log.Info("%s has %d frames (%s)", path, count.Total, count.Method)

	fmt.Fprintln(c.App.Writer, count.Total)
	return nil
}

func runExtract(c *cli.Context) error {
	path, err := videoArg(c)
	if err != nil {
		return err
	}

	fs := osfilesystem.New()
	cfg, err := resolveConfig(c, fs)
	if err != nil {
		return err
	}
	orchConfig, err := cfg.ToOrchestratorConfig(path)
	if err != nil {
		return cli.Exit(err, 2)
	}

	log := newLogger(c, cfg)
	ctx, cancel := signalContext(log)
	defer cancel()

	// Create adapters
	renderer := ggrenderer.New()
	prober := mp4probe.NewProber()
	opener := ffmpegsource.New(cfg.FFmpegPath, prober, log)

	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.New()
	}
	writer := summarizer.NewWriter(
		summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		),
		fs,
	)

	// Create stages
	orch := orchestrator.New(
		probe.NewStage(prober, log),
		extract.NewStage(opener, fs, renderer, log),
		report.NewStage(writer, recorder, log),
		log,
	)

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	for _, f := range result.OutputFiles {
		fmt.Fprintln(c.App.Writer, f)
	}
	return nil
}

func runProbe(c *cli.Context) error {
	path, err := videoArg(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	info, probeErr := mp4probe.NewProber().Probe(path)
	if probeErr != nil {
		fmt.Fprintln(w, l10n.F("metadata: unavailable (%s)", probeErr))
	} else {
		fmt.Fprintln(w, l10n.F("codec: %s", info.Codec))
		fmt.Fprintln(w, l10n.F("resolution: %dx%d", info.Width, info.Height))
		fmt.Fprintln(w, l10n.F("frames (metadata): %d", info.FrameCount))
		fmt.Fprintln(w, l10n.F("fragmented: %t", info.Fragmented))
	}

	ffmpeg, err := ffmpegsource.FindFFmpeg(c.String("ffmpeg-path"))
	if err != nil {
		fmt.Fprintln(w, l10n.F("ffmpeg: not found (%s)", err))
		return err
	}
	fmt.Fprintln(w, l10n.F("ffmpeg: %s", ffmpeg))
	return nil
}

// exitCode maps errors to process exit codes: 2 for invalid input, 1 for
// everything else.
func exitCode(err error) int {
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	if errors.Is(err, sampler.ErrInvalidParameter) {
		return 2
	}
	return 1
}
