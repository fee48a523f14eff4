package xhtmlnorm

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Engine abstracts the external XML engine so the pipeline can be tested
// without the xmllint binary. Both methods are deterministic: bytes in,
// bytes or diagnostic out, no shared state between invocations.
type Engine interface {
	// Canonicalize returns the canonical-XML form of doc. The canonical
	// form carries no XML declaration.
	Canonicalize(ctx context.Context, doc string) (string, error)

	// Format pretty-prints doc, indenting one indent unit per nesting level.
	Format(ctx context.Context, doc, indent string) (string, error)
}

// CommandRunner abstracts command execution to enable testing without real
// subprocesses. The full input is written to the child's stdin; stdout and
// stderr are captured through private, non-shared buffers.
type CommandRunner interface {
	Run(ctx context.Context, name, stdin string, env []string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name, stdin string, env []string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Extra variables ride on the child's environment only; the parent
	// process environment is never mutated.
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// XMLLint invokes the xmllint binary (libxml2) for canonicalization and
// pretty-printing.
type XMLLint struct {
	Runner CommandRunner
	path   string
}

// NewXMLLint locates xmllint on PATH. Returns ErrEngineMissing if the
// binary cannot be found, before any document is touched.
func NewXMLLint() (*XMLLint, error) {
	path, err := exec.LookPath("xmllint")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineMissing, err)
	}
	return &XMLLint{Runner: &ExecRunner{}, path: path}, nil
}

// Canonicalize returns the canonical-XML form of doc. Any non-whitespace
// diagnostic output is fatal: a canonical form derived from silently
// repaired input would drift from the source.
func (x *XMLLint) Canonicalize(ctx context.Context, doc string) (string, error) {
	stdout, stderr, err := x.Runner.Run(ctx, x.path, doc, nil, "--nonet", "--c14n", "-")
	diag := strings.TrimSpace(stderr)
	if err != nil {
		if diag != "" {
			return "", fmt.Errorf("%w: %s", ErrParse, diag)
		}
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	if diag != "" {
		return "", fmt.Errorf("%w: %s", ErrParse, diag)
	}
	return stdout, nil
}

// Format pretty-prints canonical XML. The indent unit is supplied to the
// child process via XMLLINT_INDENT on its private environment.
func (x *XMLLint) Format(ctx context.Context, doc, indent string) (string, error) {
	env := []string{"XMLLINT_INDENT=" + indent}
	stdout, stderr, err := x.Runner.Run(ctx, x.path, doc, env, "--nonet", "--format", "-")
	if err != nil {
		diag := strings.TrimSpace(stderr)
		if diag != "" {
			return "", fmt.Errorf("%w: %s", ErrFormat, diag)
		}
		return "", fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return stdout, nil
}
