package xhtmlnorm

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDocument = errors.New("document content cannot be empty")
	ErrEngineMissing = errors.New("xmllint binary not found on PATH")
	ErrParse         = errors.New("canonicalization failed")
	ErrFormat        = errors.New("pretty-printing failed")
	ErrInvalidIndent = errors.New("invalid indent string")

	// Cover pipeline errors.
	ErrInvalidCoverSize    = errors.New("invalid cover dimensions")
	ErrInvalidCoverQuality = errors.New("invalid JPEG quality")

	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrRasterize       = errors.New("SVG rasterization failed")
	ErrImageDecode     = errors.New("raster image decoding failed")
	ErrDirectoryCreate = errors.New("failed to create output directory")
	ErrSourceNotFound  = errors.New("source file not found")
)
