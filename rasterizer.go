package xhtmlnorm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// svgRasterizer abstracts SVG rasterization to enable testing without a
// browser.
type svgRasterizer interface {
	RasterizeFile(ctx context.Context, filePath string, width, height int) ([]byte, error)
	Close() error
}

// Compile-time interface check
var _ svgRasterizer = (*rodRasterizer)(nil)

// rodRasterizer implements svgRasterizer using headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRasterizer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRasterizer creates a rodRasterizer with the given page-load timeout.
func newRodRasterizer(timeout time.Duration) *rodRasterizer {
	return &rodRasterizer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRasterizer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRasterizer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RasterizeFile opens a local SVG file in headless Chrome and captures a
// PNG screenshot at the requested pixel dimensions.
func (r *rodRasterizer) RasterizeFile(ctx context.Context, filePath string, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	// Respect the context deadline if tighter than the configured timeout
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	return buf, nil
}
