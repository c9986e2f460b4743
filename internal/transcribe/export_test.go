package transcribe

// Export internal seams for black-box testing.
// This file is only compiled during tests (suffix _test.go).

// AudioClient exports audioClient for testing.
type AudioClient = audioClient

// ChunkFileName exports chunkFileName for testing.
const ChunkFileName = chunkFileName
