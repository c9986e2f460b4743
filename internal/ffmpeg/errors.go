package ffmpeg

import "errors"

// ErrNotFound indicates the ffmpeg or ffprobe binary is not installed.
var ErrNotFound = errors.New("ffmpeg not found")

// ErrExecFailed indicates an ffmpeg/ffprobe invocation exited with an error.
var ErrExecFailed = errors.New("ffmpeg execution failed")
