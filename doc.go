// Package xhtmlnorm normalizes XHTML source documents into a canonical,
// deterministic textual form suitable for clean diffs and reproducible
// ebook builds.
//
// # Quick Start
//
// Create a normalizer and process a file in place:
//
//	norm, err := xhtmlnorm.NewNormalizer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	changed, err := norm.NormalizeFile(ctx, "/book/src/chapter-1.xhtml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// NormalizeFile reports whether the file was rewritten. A document already
// in canonical form produces zero write operations.
//
// # Normalization Pipeline
//
// Each document passes through a fixed sequence of stages:
//
//  1. Line unwrapping (optional, see WithSingleLines)
//  2. Entity resolution (named and numeric references become literal UTF-8)
//  3. Doctype stripping
//  4. Canonicalization via xmllint (external engine)
//  5. XML declaration reinsertion
//  6. Pretty-printing via xmllint with tab indentation (external engine)
//  7. Byte-for-byte change detection before any write
//
// Stage order is mandatory; each stage's output is the next stage's only
// input. The pipeline is idempotent: normalizing an already-normalized
// document yields the same bytes and performs no write.
//
// # Configuration
//
// Use functional options to customize the normalizer:
//
//	norm, err := xhtmlnorm.NewNormalizer(
//	    xhtmlnorm.WithSingleLines(),
//	    xhtmlnorm.WithIndent("  "),
//	)
//
// # Cover Art
//
// The separate CoverBuilder pipeline rasterizes SVG cover and titlepage
// art via headless Chrome and embeds raster assets as base64 data URIs:
//
//	builder, err := xhtmlnorm.NewCoverBuilder()
//	defer builder.Close()
//	outPath, err := builder.Build(ctx, "/book/src/cover.svg", "/book/dist/images")
//
// # External Requirements
//
// Normalization requires the xmllint binary (libxml2) on PATH; its absence
// is reported as ErrEngineMissing before any document is touched. Cover
// rasterization requires Chrome/Chromium; the go-rod library downloads a
// managed Chromium instance on first run (~/.cache/rod/browser/). For
// containers and CI set ROD_NO_SANDBOX=1 to disable the Chrome sandbox.
package xhtmlnorm
