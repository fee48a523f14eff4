// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than
// a bare name. A string containing path separators (/, \) is treated as a
// path.
//
// Examples:
//   - "ebook" -> false (name)
//   - "./book.yaml" -> true (relative path)
//   - "/etc/xhtmlnorm/book.yaml" -> true (absolute)
//   - "C:\books\config.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsBareName returns true if the string is a plain filename with no path
// separators or traversal, usable in an exclusion list.
func IsBareName(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00")
}
