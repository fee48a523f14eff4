package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	xhtmlnorm "github.com/alnah/go-xhtmlnorm"
	"github.com/alnah/go-xhtmlnorm/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoTarget = errors.New("usage: xhtmlnorm [flags] <file.xhtml | directory>")
)

// settings is the merged result of config file and flags. Flags win.
type settings struct {
	target      string
	singleLines bool
	indent      string
	exclude     []string
	coverOut    string
	coverOpts   []xhtmlnorm.CoverOption
}

// run executes the CLI according to parsed flags. Errors are mapped to
// exit codes by the caller.
func run(ctx context.Context, flags *cliFlags, deps *Dependencies) error {
	if flags.version {
		fmt.Fprintf(deps.Stdout, "xhtmlnorm %s\n", Version)
		return nil
	}

	logger := newLogger(deps.Stderr, flags.verbose)

	if flags.doctor {
		return runDoctor(deps)
	}

	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	s := mergeSettings(cfg, flags)

	if flags.cover != "" {
		return runCover(ctx, flags.cover, s, deps, logger)
	}

	if s.target == "" {
		return ErrNoTarget
	}
	return runNormalize(ctx, s, logger)
}

// runNormalize processes the target document or directory through the
// normalization pipeline, aborting the whole batch on the first failure.
func runNormalize(ctx context.Context, s settings, logger *log.Logger) error {
	opts := []xhtmlnorm.Option{xhtmlnorm.WithIndent(s.indent)}
	if s.singleLines {
		opts = append(opts, xhtmlnorm.WithSingleLines())
	}

	// A missing xmllint surfaces here, before any document is touched.
	norm, err := xhtmlnorm.NewNormalizer(opts...)
	if err != nil {
		return err
	}

	targets, isDir, err := discoverTargets(s.target)
	if err != nil {
		return err
	}

	// The exclusion policy protects documents with intentionally
	// significant whitespace, and only applies when a directory batch
	// would unwrap lines. An explicitly named file is never excluded.
	if isDir && s.singleLines {
		targets = excludeFromBatch(targets, s.exclude, logger)
	}

	for _, path := range targets {
		changed, err := norm.NormalizeFile(ctx, path)
		if err != nil {
			// Fail fast: a parse failure usually indicates a defect
			// worth fixing before processing the rest of the batch.
			return err
		}
		if changed {
			logger.Info("normalized", "path", path)
		} else {
			logger.Debug("unchanged", "path", path)
		}
	}

	return nil
}

// runCover rasterizes an SVG cover and writes the embeddable JPEG.
func runCover(ctx context.Context, svgPath string, s settings, deps *Dependencies, logger *log.Logger) error {
	builder, err := xhtmlnorm.NewCoverBuilder(s.coverOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := builder.Close(); cerr != nil {
			logger.Debug("closing browser", "err", cerr)
		}
	}()

	outDir := s.coverOut
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(svgPath), "images")
	}

	outPath, err := builder.Build(ctx, svgPath, outDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created %s\n", outPath)
	return nil
}

// mergeSettings combines config file values with flags; flags win.
func mergeSettings(cfg *config.Config, flags *cliFlags) settings {
	s := settings{
		target:      flags.target,
		singleLines: flags.singleLines || cfg.Normalize.SingleLines,
		indent:      flags.indent,
		exclude:     flags.exclude,
		coverOut:    flags.coverOut,
	}

	if s.indent == "" {
		s.indent = cfg.Normalize.Indent
	}
	if s.indent == "" {
		s.indent = xhtmlnorm.DefaultIndent
	}
	if len(s.exclude) == 0 {
		s.exclude = cfg.Normalize.Exclude
	}
	if s.coverOut == "" {
		s.coverOut = cfg.Cover.OutputDir
	}

	if cfg.Cover.Width > 0 && cfg.Cover.Height > 0 {
		s.coverOpts = append(s.coverOpts, xhtmlnorm.WithCoverSize(cfg.Cover.Width, cfg.Cover.Height))
	}
	if cfg.Cover.Quality > 0 {
		s.coverOpts = append(s.coverOpts, xhtmlnorm.WithCoverQuality(cfg.Cover.Quality))
	}

	return s
}

// newLogger builds the stderr diagnostic logger. Verbose mode lowers the
// level to debug; otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
