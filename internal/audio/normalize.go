package audio

import (
	"context"
	"fmt"
)

// SupportedFormats lists the container/codec extensions accepted by the
// transcription service. Anything else is transcoded to MP3 first.
// Source: https://platform.openai.com/docs/guides/speech-to-text
var SupportedFormats = map[string]bool{
	"mp3":  true,
	"mp4":  true,
	"mpeg": true,
	"mpga": true,
	"m4a":  true,
	"wav":  true,
	"webm": true,
}

// Normalizer guarantees a source is in a format the transcription service
// accepts, transcoding to MP3 when it is not.
type Normalizer struct {
	ffmpegPath string
	accepted   map[string]bool
	warn       WarnFunc

	cmd      commandRunner
	tempFile tempFileCreator
	files    fileRemover
	statter  fileStatter
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithAcceptedFormats replaces the accepted format set.
func WithAcceptedFormats(formats map[string]bool) NormalizerOption {
	return func(n *Normalizer) { n.accepted = formats }
}

// WithNormalizerWarnFunc sets a callback for conversion notices.
func WithNormalizerWarnFunc(fn WarnFunc) NormalizerOption {
	return func(n *Normalizer) { n.warn = fn }
}

// WithNormalizerCommandRunner sets the command runner (for testing).
func WithNormalizerCommandRunner(r commandRunner) NormalizerOption {
	return func(n *Normalizer) { n.cmd = r }
}

// WithNormalizerTempFileCreator sets the temp file creator (for testing).
func WithNormalizerTempFileCreator(t tempFileCreator) NormalizerOption {
	return func(n *Normalizer) { n.tempFile = t }
}

// WithNormalizerFileRemover sets the file remover (for testing).
func WithNormalizerFileRemover(f fileRemover) NormalizerOption {
	return func(n *Normalizer) { n.files = f }
}

// WithNormalizerFileStatter sets the file statter (for testing).
func WithNormalizerFileStatter(s fileStatter) NormalizerOption {
	return func(n *Normalizer) { n.statter = s }
}

// NewNormalizer creates a Normalizer using the ffmpeg binary at ffmpegPath.
func NewNormalizer(ffmpegPath string, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		ffmpegPath: ffmpegPath,
		accepted:   SupportedFormats,
		cmd:        osCommandRunner{},
		tempFile:   osTempFileCreator{},
		files:      osFileRemover{},
		statter:    osFileStatter{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns a source in an accepted format plus a cleanup func.
//
// When the source is already accepted this is a no-op: the identical source
// comes back, no temp file is created, and cleanup does nothing. Otherwise
// the source is transcoded to MP3 into a new temporary file and the returned
// source points at it; the caller owns that file and must run cleanup exactly
// once on every exit path of the overall transcription call.
func (n *Normalizer) Normalize(ctx context.Context, src Source) (Source, func(), error) {
	noop := func() {}

	if n.accepted[src.Ext] {
		return src, noop, nil
	}

	if n.warn != nil {
		n.warn(fmt.Sprintf("Unsupported format %q, converting to mp3", src.Ext))
	}

	f, err := n.tempFile.CreateTemp("", "audiodigest-*.mp3")
	if err != nil {
		return Source{}, noop, fmt.Errorf("%w: create temp file: %v", ErrConversionFailed, err)
	}
	tempPath := f.Name()
	if err := f.Close(); err != nil {
		_ = n.files.Remove(tempPath)
		return Source{}, noop, fmt.Errorf("%w: close temp file: %v", ErrConversionFailed, err)
	}

	args := []string{
		"-y",
		"-i", src.Path,
		"-codec:a", "libmp3lame",
		"-q:a", "2",
		tempPath,
	}
	if _, err := n.cmd.Output(ctx, n.ffmpegPath, args); err != nil {
		_ = n.files.Remove(tempPath)
		return Source{}, noop, fmt.Errorf("%w: %s: %v", ErrConversionFailed, src.Path, err)
	}

	info, err := n.statter.Stat(tempPath)
	if err != nil {
		_ = n.files.Remove(tempPath)
		return Source{}, noop, fmt.Errorf("%w: stat converted file: %v", ErrConversionFailed, err)
	}

	normalized := Source{Path: tempPath, Ext: "mp3", Size: info.Size()}
	cleanup := func() { _ = n.files.Remove(tempPath) }
	return normalized, cleanup, nil
}
