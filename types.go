package xhtmlnorm

import (
	"fmt"
	"strings"
)

// DefaultIndent is the pretty-print indent unit: a single tab per nesting
// level.
const DefaultIndent = "\t"

// Option configures a Normalizer.
type Option func(*Normalizer)

// normalizerConfig holds internal configuration for Normalizer.
type normalizerConfig struct {
	singleLines bool
	indent      string
}

// WithSingleLines enables the line-unwrap stage: hard line breaks are
// replaced with spaces and whitespace runs collapsed before
// canonicalization.
func WithSingleLines() Option {
	return func(n *Normalizer) {
		n.cfg.singleLines = true
	}
}

// WithIndent sets the pretty-print indent unit. The default is a single
// tab. Only tabs and spaces are accepted; NewNormalizer returns
// ErrInvalidIndent otherwise.
func WithIndent(indent string) Option {
	return func(n *Normalizer) {
		n.cfg.indent = indent
	}
}

// WithEngine replaces the external xmllint engine. Intended for tests and
// alternate canonicalizers; when set, NewNormalizer skips the PATH lookup.
func WithEngine(e Engine) Option {
	return func(n *Normalizer) {
		n.engine = e
	}
}

// validateIndent checks that the indent unit is non-empty whitespace.
func validateIndent(indent string) error {
	if indent == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIndent)
	}
	if strings.Trim(indent, " \t") != "" {
		return fmt.Errorf("%w: %q (only tabs and spaces)", ErrInvalidIndent, indent)
	}
	return nil
}
