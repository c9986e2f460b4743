package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Output runs a binary and returns its stdout.
// Stderr is folded into the error: ffmpeg writes its diagnostics there,
// and on failure that text is the only useful signal.
func Output(ctx context.Context, path string, args []string) ([]byte, error) {
	// #nosec G204 -- path and args are built by this repository, not user input
	cmd := exec.CommandContext(ctx, path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v\nOutput: %s", ErrExecFailed, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Pipe runs a binary with stdin fed from the given bytes and returns stdout.
// Used for in-memory PCM encode/decode without touching the filesystem.
func Pipe(ctx context.Context, path string, args []string, stdin []byte) ([]byte, error) {
	// #nosec G204 -- path and args are built by this repository, not user input
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v\nOutput: %s", ErrExecFailed, err, stderr.String())
	}
	return stdout.Bytes(), nil
}
