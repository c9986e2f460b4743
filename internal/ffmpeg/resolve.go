// Package ffmpeg locates and runs the ffmpeg/ffprobe binaries.
// All audio decoding, probing, and transcoding in this repository goes
// through these two tools.
package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
)

// Environment variables for custom binary paths.
const (
	EnvFFmpegPath  = "FFMPEG_PATH"
	EnvFFprobePath = "FFPROBE_PATH"
)

// Paths holds the resolved locations of the ffmpeg and ffprobe binaries.
// FFprobe may be empty: metadata probing then falls back to a full decode.
type Paths struct {
	FFmpeg  string
	FFprobe string
}

// Resolver finds ffmpeg and ffprobe with injectable lookups for testing.
type Resolver struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLookPath sets the binary lookup function (for testing).
func WithLookPath(fn func(string) (string, error)) ResolverOption {
	return func(r *Resolver) { r.lookPath = fn }
}

// WithGetenv sets the environment lookup function (for testing).
func WithGetenv(fn func(string) string) ResolverOption {
	return func(r *Resolver) { r.getenv = fn }
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve locates ffmpeg and ffprobe.
// Environment variables take precedence over PATH lookup.
// A missing ffmpeg is fatal; a missing ffprobe is tolerated because the
// duration probe has a decode-based fallback that only needs ffmpeg.
func (r *Resolver) Resolve() (Paths, error) {
	var p Paths

	if custom := r.getenv(EnvFFmpegPath); custom != "" {
		p.FFmpeg = custom
	} else {
		path, err := r.lookPath("ffmpeg")
		if err != nil {
			return Paths{}, fmt.Errorf("%w: install ffmpeg or set %s", ErrNotFound, EnvFFmpegPath)
		}
		p.FFmpeg = path
	}

	if custom := r.getenv(EnvFFprobePath); custom != "" {
		p.FFprobe = custom
	} else if path, err := r.lookPath("ffprobe"); err == nil {
		p.FFprobe = path
	}

	return p, nil
}
