package audio

import (
	"context"
	"os"

	"github.com/ivolkov/audiodigest/internal/ffmpeg"
)

// commandRunner executes an external command and returns its stdout.
type commandRunner interface {
	Output(ctx context.Context, name string, args []string) ([]byte, error)
}

// pipeRunner executes an external command with bytes on stdin, returning stdout.
type pipeRunner interface {
	Pipe(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error)
}

// fileStatter retrieves file information.
type fileStatter interface {
	Stat(name string) (os.FileInfo, error)
}

// tempFileCreator creates temporary files.
type tempFileCreator interface {
	CreateTemp(dir, pattern string) (*os.File, error)
}

// fileRemover removes files.
type fileRemover interface {
	Remove(name string) error
}

// --- Default implementations using real OS functions ---

// osCommandRunner implements commandRunner via the ffmpeg executor.
type osCommandRunner struct{}

func (osCommandRunner) Output(ctx context.Context, name string, args []string) ([]byte, error) {
	return ffmpeg.Output(ctx, name, args)
}

// osPipeRunner implements pipeRunner via the ffmpeg executor.
type osPipeRunner struct{}

func (osPipeRunner) Pipe(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	return ffmpeg.Pipe(ctx, name, args, stdin)
}

// osFileStatter implements fileStatter using os.Stat.
type osFileStatter struct{}

func (osFileStatter) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// osTempFileCreator implements tempFileCreator using os.CreateTemp.
type osTempFileCreator struct{}

func (osTempFileCreator) CreateTemp(dir, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

// osFileRemover implements fileRemover using os.Remove.
type osFileRemover struct{}

func (osFileRemover) Remove(name string) error {
	return os.Remove(name)
}
