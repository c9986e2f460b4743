package transcribe

import "errors"

// ErrRequestFailed indicates a transcription request (whole-file or a single
// chunk) failed. Fail-fast: no partial output is returned and no retry is
// attempted at this layer.
var ErrRequestFailed = errors.New("transcription request failed")
