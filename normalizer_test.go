package xhtmlnorm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeEngine mimics the external engine closely enough for pipeline tests:
// canonicalization strips any XML declaration and trims outer whitespace,
// formatting appends a trailing newline when missing. Both record their
// inputs so stage ordering can be asserted.
type fakeEngine struct {
	canonInput  string
	formatInput string
	gotIndent   string

	canonErr  error
	formatErr error
}

func (e *fakeEngine) Canonicalize(_ context.Context, doc string) (string, error) {
	e.canonInput = doc
	if e.canonErr != nil {
		return "", e.canonErr
	}
	doc = strings.TrimPrefix(doc, XMLDeclaration)
	return strings.TrimSpace(doc), nil
}

func (e *fakeEngine) Format(_ context.Context, doc, indent string) (string, error) {
	e.formatInput = doc
	e.gotIndent = indent
	if e.formatErr != nil {
		return "", e.formatErr
	}
	if !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	return doc, nil
}

func TestNewNormalizer(t *testing.T) {
	t.Run("rejects invalid indent", func(t *testing.T) {
		_, err := NewNormalizer(WithEngine(&fakeEngine{}), WithIndent("abc"))
		if !errors.Is(err, ErrInvalidIndent) {
			t.Errorf("NewNormalizer() error = %v, want ErrInvalidIndent", err)
		}
	})

	t.Run("rejects empty indent", func(t *testing.T) {
		_, err := NewNormalizer(WithEngine(&fakeEngine{}), WithIndent(""))
		if !errors.Is(err, ErrInvalidIndent) {
			t.Errorf("NewNormalizer() error = %v, want ErrInvalidIndent", err)
		}
	})

	t.Run("injected engine skips PATH lookup", func(t *testing.T) {
		if _, err := NewNormalizer(WithEngine(&fakeEngine{})); err != nil {
			t.Errorf("NewNormalizer() error = %v", err)
		}
	})
}

func TestNormalizeHeaderReinstatement(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "input with declaration", input: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<html/>"},
		{name: "input with doctype", input: "<!DOCTYPE html>\n<html/>"},
		{name: "bare input", input: "<html/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm, err := NewNormalizer(WithEngine(&fakeEngine{}))
			if err != nil {
				t.Fatalf("NewNormalizer() error = %v", err)
			}

			got, err := norm.Normalize(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !strings.HasPrefix(got, XMLDeclaration) {
				t.Errorf("Normalize() = %q, want prefix %q", got, XMLDeclaration)
			}
			if strings.Contains(got, "<!DOCTYPE") {
				t.Errorf("Normalize() = %q, doctype not stripped", got)
			}
		})
	}
}

func TestNormalizeEmptyDocument(t *testing.T) {
	norm, err := NewNormalizer(WithEngine(&fakeEngine{}))
	if err != nil {
		t.Fatalf("NewNormalizer() error = %v", err)
	}

	if _, err := norm.Normalize(context.Background(), ""); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("Normalize(\"\") error = %v, want ErrEmptyDocument", err)
	}
}

func TestNormalizeSingleLinesGating(t *testing.T) {
	input := "<p>\n  Hello\n  World\n</p>"

	t.Run("enabled collapses before canonicalization", func(t *testing.T) {
		engine := &fakeEngine{}
		norm, err := NewNormalizer(WithEngine(engine), WithSingleLines())
		if err != nil {
			t.Fatalf("NewNormalizer() error = %v", err)
		}
		if _, err := norm.Normalize(context.Background(), input); err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if strings.Contains(engine.canonInput, "\n") {
			t.Errorf("canonicalizer saw newlines: %q", engine.canonInput)
		}
		if strings.Contains(engine.canonInput, "  ") {
			t.Errorf("canonicalizer saw a space run: %q", engine.canonInput)
		}
	})

	t.Run("disabled preserves line breaks", func(t *testing.T) {
		engine := &fakeEngine{}
		norm, err := NewNormalizer(WithEngine(engine))
		if err != nil {
			t.Fatalf("NewNormalizer() error = %v", err)
		}
		if _, err := norm.Normalize(context.Background(), input); err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if !strings.Contains(engine.canonInput, "\n") {
			t.Errorf("line breaks collapsed despite option off: %q", engine.canonInput)
		}
	})
}

func TestNormalizeIndentReachesEngine(t *testing.T) {
	engine := &fakeEngine{}
	norm, err := NewNormalizer(WithEngine(engine), WithIndent("  "))
	if err != nil {
		t.Fatalf("NewNormalizer() error = %v", err)
	}
	if _, err := norm.Normalize(context.Background(), "<html/>"); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if engine.gotIndent != "  " {
		t.Errorf("engine indent = %q, want two spaces", engine.gotIndent)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	norm, err := NewNormalizer(WithEngine(&fakeEngine{}))
	if err != nil {
		t.Fatalf("NewNormalizer() error = %v", err)
	}

	input := "<!DOCTYPE html>\n<html><p>one&mdash;two &amp; three</p></html>"
	once, err := norm.Normalize(context.Background(), input)
	if err != nil {
		t.Fatalf("first Normalize() error = %v", err)
	}
	twice, err := norm.Normalize(context.Background(), once)
	if err != nil {
		t.Fatalf("second Normalize() error = %v", err)
	}

	if once != twice {
		t.Errorf("pipeline not idempotent:\nfirst  %q\nsecond %q", once, twice)
	}
}

func TestNormalizeFile(t *testing.T) {
	t.Run("rewrites a non-canonical document", func(t *testing.T) {
		path := writeTempDoc(t, "<!DOCTYPE html>\n<html/>")
		norm, err := NewNormalizer(WithEngine(&fakeEngine{}))
		if err != nil {
			t.Fatalf("NewNormalizer() error = %v", err)
		}

		changed, err := norm.NormalizeFile(context.Background(), path)
		if err != nil {
			t.Fatalf("NormalizeFile() error = %v", err)
		}
		if !changed {
			t.Error("NormalizeFile() changed = false, want true")
		}

		content := readDoc(t, path)
		if !strings.HasPrefix(content, XMLDeclaration) {
			t.Errorf("file content %q missing declaration", content)
		}
		if strings.Contains(content, "<!DOCTYPE") {
			t.Errorf("file content %q still carries doctype", content)
		}
	})

	t.Run("second run performs no write", func(t *testing.T) {
		path := writeTempDoc(t, "<!DOCTYPE html>\n<html/>")
		norm, err := NewNormalizer(WithEngine(&fakeEngine{}))
		if err != nil {
			t.Fatalf("NewNormalizer() error = %v", err)
		}

		if _, err := norm.NormalizeFile(context.Background(), path); err != nil {
			t.Fatalf("first NormalizeFile() error = %v", err)
		}
		before := readDoc(t, path)

		changed, err := norm.NormalizeFile(context.Background(), path)
		if err != nil {
			t.Fatalf("second NormalizeFile() error = %v", err)
		}
		if changed {
			t.Error("second NormalizeFile() changed = true, want false")
		}
		if after := readDoc(t, path); after != before {
			t.Errorf("stable document mutated:\nbefore %q\nafter  %q", before, after)
		}
	})

	t.Run("parse failure names the path and leaves the file untouched", func(t *testing.T) {
		original := "<p>Hello</div>"
		path := writeTempDoc(t, original)
		engine := &fakeEngine{canonErr: errors.New("parser error : Opening and ending tag mismatch")}
		norm, err := NewNormalizer(WithEngine(engine))
		if err != nil {
			t.Fatalf("NewNormalizer() error = %v", err)
		}

		_, err = norm.NormalizeFile(context.Background(), path)
		if err == nil {
			t.Fatal("NormalizeFile() error = nil, want parse failure")
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q does not name the document path", err)
		}
		if got := readDoc(t, path); got != original {
			t.Errorf("failed document was written: %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		norm, err := NewNormalizer(WithEngine(&fakeEngine{}))
		if err != nil {
			t.Fatalf("NewNormalizer() error = %v", err)
		}

		_, err = norm.NormalizeFile(context.Background(), filepath.Join(t.TempDir(), "absent.xhtml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("NormalizeFile() error = %v, want os.ErrNotExist", err)
		}
	})
}

func writeTempDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xhtml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(raw)
}
