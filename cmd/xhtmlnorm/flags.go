package main

import (
	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line flags plus the positional target.
type cliFlags struct {
	target      string
	singleLines bool
	indent      string
	exclude     []string
	config      string
	cover       string
	coverOut    string
	verbose     bool
	version     bool
	doctor      bool
}

// parseFlags parses args (including the program name at args[0]).
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("xhtmlnorm", flag.ContinueOnError)
	fs.BoolVarP(&f.singleLines, "single-lines", "s", false, "unwrap hard line breaks before canonicalization")
	fs.StringVar(&f.indent, "indent", "", "pretty-print indent unit (default: one tab)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "filenames excluded from single-lines directory batches")
	fs.StringVarP(&f.config, "config", "c", "", "config file path or name")
	fs.StringVar(&f.cover, "cover", "", "rasterize this SVG instead of normalizing documents")
	fs.StringVar(&f.coverOut, "cover-out", "", "output directory for cover art (default: images/ beside the SVG)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log per-document progress to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVar(&f.doctor, "doctor", false, "check external dependencies and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	f.target = fs.Arg(0)
	return f, nil
}
