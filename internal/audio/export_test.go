package audio

// Export internal functions and seams for black-box testing.
// This file is only compiled during tests (suffix _test.go).

// ParseProbeSeconds exports parseProbeSeconds for testing.
var ParseProbeSeconds = parseProbeSeconds

// DecodeArgs exports decodeArgs for testing.
var DecodeArgs = decodeArgs

// PCMBytesPerSecond exports the decoded byte rate for building test fixtures.
const PCMBytesPerSecond = pcmBytesPerSecond

// --- Dependency injection seam exports ---

// CommandRunner exports commandRunner for testing.
type CommandRunner = commandRunner

// PipeRunner exports pipeRunner for testing.
type PipeRunner = pipeRunner

// FileStatter exports fileStatter for testing.
type FileStatter = fileStatter

// TempFileCreator exports tempFileCreator for testing.
type TempFileCreator = tempFileCreator

// FileRemover exports fileRemover for testing.
type FileRemover = fileRemover

// NewMetadataProbeWithRunner builds a MetadataProbe with an injected runner.
func NewMetadataProbeWithRunner(ffprobePath string, cmd commandRunner) *MetadataProbe {
	return &MetadataProbe{ffprobePath: ffprobePath, cmd: cmd}
}

// NewDecodeProbeWithRunner builds a DecodeProbe with an injected runner.
func NewDecodeProbeWithRunner(ffmpegPath string, cmd commandRunner) *DecodeProbe {
	return &DecodeProbe{ffmpegPath: ffmpegPath, cmd: cmd}
}
