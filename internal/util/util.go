// Package util provides common utility functions used across the converter.
package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeFilename replaces characters that commonly break paths or
// downstream tooling (spaces, colons, path separators) with
// underscores.
func SanitizeFilename(s string) string {
	for _, c := range []string{" ", ":", "/", "\\"} {
		s = strings.ReplaceAll(s, c, "_")
	}
	return s
}

// FileStem returns the base name of path without its extension,
// e.g. "/data/missions.json" -> "missions".
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// StripBOM removes a leading UTF-8 byte order mark. Some editors
// prepend one, and encoding/json rejects it.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

// WriteFileAtomic writes through a temporary file in the target
// directory and renames it into place, so a failed run never leaves a
// truncated output file. The parent directory is created if missing.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmpFile); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	success = true
	return nil
}
