// Package audio prepares recordings for transcription: duration probing,
// format normalization, PCM decoding, and size-bounded chunk planning.
package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Source identifies an audio file on disk.
// A Source is immutable: normalization returns a new Source pointing at a
// temporary file rather than mutating the original.
type Source struct {
	Path string // Absolute or relative path to the file.
	Ext  string // Lowercase extension without the leading dot.
	Size int64  // File size in bytes.
}

// NewSource stats path and builds a Source from it.
func NewSource(path string, statter fileStatter) (Source, error) {
	info, err := statter.Stat(path)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return Source{
		Path: path,
		Ext:  strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Size: info.Size(),
	}, nil
}

// Stat returns a Source using the real filesystem.
func Stat(path string) (Source, error) {
	return NewSource(path, osFileStatter{})
}
