package audio_test

import (
	"context"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/ivolkov/audiodigest/internal/audio"
)

// ---------------------------------------------------------------------------
// Mock commandRunner
// ---------------------------------------------------------------------------

type mockCommandRunner struct {
	OutputFunc func(ctx context.Context, name string, args []string) ([]byte, error)

	mu    sync.Mutex
	calls []commandCall
}

type commandCall struct {
	Name string
	Args []string
}

func (m *mockCommandRunner) Output(ctx context.Context, name string, args []string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, commandCall{Name: name, Args: args})
	m.mu.Unlock()

	if m.OutputFunc != nil {
		return m.OutputFunc(ctx, name, args)
	}
	return nil, nil
}

func (m *mockCommandRunner) Calls() []commandCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]commandCall(nil), m.calls...)
}

// ---------------------------------------------------------------------------
// Mock pipeRunner
// ---------------------------------------------------------------------------

type mockPipeRunner struct {
	PipeFunc func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error)

	mu     sync.Mutex
	stdins [][]byte
}

func (m *mockPipeRunner) Pipe(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	m.mu.Lock()
	m.stdins = append(m.stdins, append([]byte(nil), stdin...))
	m.mu.Unlock()

	if m.PipeFunc != nil {
		return m.PipeFunc(ctx, name, args, stdin)
	}
	return nil, nil
}

func (m *mockPipeRunner) Stdins() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.stdins...)
}

// ---------------------------------------------------------------------------
// Mock fileStatter
// ---------------------------------------------------------------------------

type mockFileStatter struct {
	StatFunc func(name string) (os.FileInfo, error)
}

func (m *mockFileStatter) Stat(name string) (os.FileInfo, error) {
	if m.StatFunc != nil {
		return m.StatFunc(name)
	}
	return fakeFileInfo{name: name}, nil
}

// fakeFileInfo is a minimal os.FileInfo for statter mocks.
type fakeFileInfo struct {
	name string
	size int64
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

// ---------------------------------------------------------------------------
// Mock tempFileCreator / fileRemover
// ---------------------------------------------------------------------------

// mockTempFileCreator creates real files under a test directory so the
// returned *os.File behaves normally, and counts creations.
type mockTempFileCreator struct {
	Dir        string
	CreateErr  error
	mu         sync.Mutex
	creations  int
	lastCreate string
}

func (m *mockTempFileCreator) CreateTemp(_, pattern string) (*os.File, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	f, err := os.CreateTemp(m.Dir, pattern)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.creations++
	m.lastCreate = f.Name()
	m.mu.Unlock()
	return f, nil
}

func (m *mockTempFileCreator) Creations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creations
}

func (m *mockTempFileCreator) LastCreate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCreate
}

type mockFileRemover struct {
	RemoveFunc func(name string) error

	mu      sync.Mutex
	removed []string
}

func (m *mockFileRemover) Remove(name string) error {
	m.mu.Lock()
	m.removed = append(m.removed, name)
	m.mu.Unlock()

	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	return nil
}

func (m *mockFileRemover) Removed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

// Compile-time checks that mocks satisfy the exported seam aliases.
var (
	_ audio.CommandRunner   = (*mockCommandRunner)(nil)
	_ audio.PipeRunner      = (*mockPipeRunner)(nil)
	_ audio.FileStatter     = (*mockFileStatter)(nil)
	_ audio.TempFileCreator = (*mockTempFileCreator)(nil)
	_ audio.FileRemover     = (*mockFileRemover)(nil)
)
