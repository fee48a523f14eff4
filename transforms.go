package xhtmlnorm

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Precompiled regex patterns for the pure transform stages.
var (
	// Any line break flavor: CRLF first so it counts as one break
	lineBreak = regexp.MustCompile(`\r\n|[\r\n]`)

	// Runs of whitespace left over after line breaks become spaces
	whitespaceRun = regexp.MustCompile(`\s+`)

	// Doctype declaration, including internal subsets spanning multiple
	// lines. The optional bracketed subset is consumed before looking for
	// the closing >, so entity declarations inside the subset do not end
	// the match early.
	doctypeDecl = regexp.MustCompile(`(?is)<!DOCTYPE[^>\[]*(?:\[.*?\])?[^>]*>\n?`)
)

// XMLDeclaration is the header every normalized document must begin with.
// Canonicalization strips the declaration; the target format requires it.
const XMLDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// UnwrapLines removes hard line-wrapping: every line break becomes a single
// space, then every run of whitespace collapses to exactly one space. Used
// before canonicalization so diffing tools operate on reformattable text.
func UnwrapLines(content string) string {
	content = lineBreak.ReplaceAllString(content, " ")
	return whitespaceRun.ReplaceAllString(content, " ")
}

// ResolveEntities decodes all named and numeric character references to
// literal Unicode, then re-escapes the literal & back to its entity form.
// The target format requires UTF-8 literal text but forbids named entities
// other than the XML built-ins; decoding and then re-escaping only the
// ampersand achieves this without double-escaping any other decoded
// character.
func ResolveEntities(content string) string {
	content = html.UnescapeString(content)
	return strings.ReplaceAll(content, "&", "&amp;")
}

// StripDoctype removes any <!DOCTYPE ...> declaration. Some canonicalizers
// hang on XHTML doctypes with external entity references; stripping is safe
// because the output format does not carry a doctype.
func StripDoctype(content string) string {
	return doctypeDecl.ReplaceAllString(content, "")
}
