// Package config loads project-level normalization settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-xhtmlnorm/internal/fileutil"
	"github.com/alnah/go-xhtmlnorm/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidExclude  = errors.New("exclude entries must be bare filenames")
	ErrInvalidIndent   = errors.New("indent must contain only tabs and spaces")
	ErrInvalidCover    = errors.New("invalid cover settings")
)

// DefaultExclude names the documents whose whitespace is intentionally
// significant and which therefore skip line unwrapping in directory
// batches.
var DefaultExclude = []string{"colophon.xhtml"}

// Config holds all configuration for normalization and cover preparation.
type Config struct {
	Normalize NormalizeConfig `yaml:"normalize"`
	Cover     CoverConfig     `yaml:"cover"`
}

// NormalizeConfig defines document pipeline options.
type NormalizeConfig struct {
	SingleLines bool     `yaml:"singleLines"` // Unwrap hard line breaks before canonicalization
	Indent      string   `yaml:"indent"`      // Pretty-print indent unit (empty = single tab)
	Exclude     []string `yaml:"exclude"`     // Filenames excluded from single-lines directory batches
}

// CoverConfig defines cover art options.
type CoverConfig struct {
	Width     int    `yaml:"width"`     // Raster width in pixels (0 = default)
	Height    int    `yaml:"height"`    // Raster height in pixels (0 = default)
	Quality   int    `yaml:"quality"`   // JPEG quality 1-100 (0 = default)
	OutputDir string `yaml:"outputDir"` // Output directory (empty = images/ beside the SVG)
}

// DefaultConfig returns a neutral configuration: no line unwrapping, tab
// indentation, the standard exclusion list, and default cover settings.
func DefaultConfig() *Config {
	return &Config{
		Normalize: NormalizeConfig{
			SingleLines: false,
			Indent:      "",
			Exclude:     append([]string(nil), DefaultExclude...),
		},
		Cover: CoverConfig{},
	}
}

// Validate checks cross-field constraints not expressible in YAML tags.
func (c *Config) Validate() error {
	if c.Normalize.Indent != "" && strings.Trim(c.Normalize.Indent, " \t") != "" {
		return fmt.Errorf("%w: %q", ErrInvalidIndent, c.Normalize.Indent)
	}
	for _, name := range c.Normalize.Exclude {
		if !fileutil.IsBareName(name) {
			return fmt.Errorf("%w: %q", ErrInvalidExclude, name)
		}
	}
	if c.Cover.Width < 0 || c.Cover.Height < 0 {
		return fmt.Errorf("%w: dimensions must be positive", ErrInvalidCover)
	}
	if c.Cover.Quality < 0 || c.Cover.Quality > 100 {
		return fmt.Errorf("%w: quality %d (must be between 1 and 100)", ErrInvalidCover, c.Cover.Quality)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-xhtmlnorm/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-xhtmlnorm", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
