package audio

import "errors"

// ErrFileNotFound indicates the specified input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrDurationUnavailable indicates every duration probe strategy failed.
// Duration is required downstream (speaking speed) and has no safe default.
var ErrDurationUnavailable = errors.New("audio duration unavailable")

// ErrConversionFailed indicates transcoding to a supported format failed.
var ErrConversionFailed = errors.New("format conversion failed")

// ErrDecodeFailed indicates the audio stream could not be decoded to PCM.
var ErrDecodeFailed = errors.New("audio decode failed")

// ErrChunkPlanning indicates the size budget and bitrate produce a degenerate
// chunk duration. Detected before the chunk loop to avoid non-termination.
var ErrChunkPlanning = errors.New("chunk planning failed")
