package main

import (
	"errors"
	"os"

	xhtmlnorm "github.com/alnah/go-xhtmlnorm"
	"github.com/alnah/go-xhtmlnorm/internal/config"
)

// Exit codes for the xhtmlnorm CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitEngine  = 4 // Missing or failing external engine (xmllint, Chrome)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External engine errors (exit 4)
	if errors.Is(err, xhtmlnorm.ErrEngineMissing) ||
		errors.Is(err, xhtmlnorm.ErrParse) ||
		errors.Is(err, xhtmlnorm.ErrFormat) ||
		errors.Is(err, xhtmlnorm.ErrBrowserConnect) ||
		errors.Is(err, xhtmlnorm.ErrPageCreate) ||
		errors.Is(err, xhtmlnorm.ErrPageLoad) ||
		errors.Is(err, xhtmlnorm.ErrRasterize) {
		return ExitEngine
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, xhtmlnorm.ErrDirectoryCreate) ||
		errors.Is(err, xhtmlnorm.ErrSourceNotFound) ||
		errors.Is(err, xhtmlnorm.ErrImageDecode) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoTarget) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidExclude) ||
		errors.Is(err, config.ErrInvalidIndent) ||
		errors.Is(err, config.ErrInvalidCover) ||
		errors.Is(err, xhtmlnorm.ErrEmptyDocument) ||
		errors.Is(err, xhtmlnorm.ErrInvalidIndent) ||
		errors.Is(err, xhtmlnorm.ErrInvalidCoverSize) ||
		errors.Is(err, xhtmlnorm.ErrInvalidCoverQuality) {
		return ExitUsage
	}

	return ExitGeneral
}
