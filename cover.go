package xhtmlnorm

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-xhtmlnorm/internal/fileutil"
)

// Default cover raster dimensions (2:3 portrait) and JPEG quality.
const (
	DefaultCoverWidth   = 1400
	DefaultCoverHeight  = 2100
	DefaultCoverQuality = 90
)

// defaultRasterTimeout bounds the page-load wait during rasterization.
const defaultRasterTimeout = 30 * time.Second

// Local raster image reference in src or xlink:href attributes.
var rasterRef = regexp.MustCompile(`(src|xlink:href)="([^"]+\.(?:png|jpe?g|gif))"`)

// CoverOption configures a CoverBuilder.
type CoverOption func(*CoverBuilder)

// coverConfig holds internal configuration for CoverBuilder.
type coverConfig struct {
	width   int
	height  int
	quality int
	timeout time.Duration
}

// WithCoverSize sets the raster dimensions in pixels.
func WithCoverSize(width, height int) CoverOption {
	return func(b *CoverBuilder) {
		b.cfg.width = width
		b.cfg.height = height
	}
}

// WithCoverQuality sets the JPEG encoding quality (1-100).
func WithCoverQuality(quality int) CoverOption {
	return func(b *CoverBuilder) {
		b.cfg.quality = quality
	}
}

// WithCoverTimeout sets the rasterization page-load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithCoverTimeout(d time.Duration) CoverOption {
	if d <= 0 {
		panic("xhtmlnorm: WithCoverTimeout duration must be positive")
	}
	return func(b *CoverBuilder) {
		b.cfg.timeout = d
	}
}

// CoverBuilder prepares vector cover and titlepage art for embedding. It
// rasterizes SVG sources via headless Chrome, re-encodes the result so no
// source metadata survives, and rewrites raster references in markup to
// base64 data URIs.
//
// This pipeline is independent of document normalization and shares no
// state with it.
type CoverBuilder struct {
	cfg        coverConfig
	rasterizer svgRasterizer
}

// NewCoverBuilder creates a CoverBuilder with default configuration.
// The browser connects lazily on first Build; call Close when done.
func NewCoverBuilder(opts ...CoverOption) (*CoverBuilder, error) {
	b := &CoverBuilder{
		cfg: coverConfig{
			width:   DefaultCoverWidth,
			height:  DefaultCoverHeight,
			quality: DefaultCoverQuality,
			timeout: defaultRasterTimeout,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.cfg.width <= 0 || b.cfg.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCoverSize, b.cfg.width, b.cfg.height)
	}
	if b.cfg.quality < 1 || b.cfg.quality > 100 {
		return nil, fmt.Errorf("%w: %d (must be between 1 and 100)", ErrInvalidCoverQuality, b.cfg.quality)
	}

	if b.rasterizer == nil {
		b.rasterizer = newRodRasterizer(b.cfg.timeout)
	}

	return b, nil
}

// Close releases resources (headless Chrome browser).
func (b *CoverBuilder) Close() error {
	if b.rasterizer != nil {
		return b.rasterizer.Close()
	}
	return nil
}

// Build rasterizes the SVG at svgPath and writes a metadata-free JPEG into
// outDir, creating the directory if needed. Returns the output path.
func (b *CoverBuilder) Build(ctx context.Context, svgPath, outDir string) (string, error) {
	if !fileutil.FileExists(svgPath) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, svgPath)
	}

	abs, err := filepath.Abs(svgPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", svgPath, err)
	}

	raw, err := b.rasterizer.RasterizeFile(ctx, abs, b.cfg.width, b.cfg.height)
	if err != nil {
		return "", err
	}

	// Decode and re-encode so source metadata never reaches the output.
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDirectoryCreate, outDir, err)
	}

	base := strings.TrimSuffix(filepath.Base(svgPath), filepath.Ext(svgPath))
	outPath := filepath.Join(outDir, base+".jpg")

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: b.cfg.quality}); err != nil {
		return "", fmt.Errorf("encoding %s: %w", outPath, err)
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}

	return outPath, nil
}

// EmbedRasterImages rewrites local raster references (src and xlink:href
// attributes pointing at PNG, JPEG, or GIF files) in doc to base64 data
// URIs. Relative references resolve against baseDir. Remote references are
// left untouched. Returns ErrSourceNotFound if a referenced file cannot be
// read.
func EmbedRasterImages(doc, baseDir string) (string, error) {
	var embedErr error

	out := rasterRef.ReplaceAllStringFunc(doc, func(m string) string {
		if embedErr != nil {
			return m
		}

		parts := rasterRef.FindStringSubmatch(m)
		attr, ref := parts[1], parts[2]

		if strings.Contains(ref, "://") {
			return m
		}

		p := ref
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, ref)
		}

		raw, err := os.ReadFile(p) // #nosec G304 -- reference taken from the document being processed
		if err != nil {
			embedErr = fmt.Errorf("%w: %s", ErrSourceNotFound, p)
			return m
		}

		uri := "data:" + mimeForExt(filepath.Ext(ref)) + ";base64," + base64.StdEncoding.EncodeToString(raw)
		return attr + `="` + uri + `"`
	})

	if embedErr != nil {
		return "", embedErr
	}
	return out, nil
}

// mimeForExt maps a raster file extension to its MIME type.
func mimeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
