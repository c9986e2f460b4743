package audio

import (
	"context"
	"fmt"
	"time"
)

// Decode parameters. 16kHz mono s16le is sufficient for speech and keeps
// the in-memory PCM buffer small (~1.9MB per minute).
const (
	decodeSampleRate = 16000
	decodeChannels   = 1
	bytesPerSample   = 2

	// frameSize is the byte length of one PCM frame across all channels.
	frameSize = decodeChannels * bytesPerSample

	// pcmBytesPerSecond is the decoded byte rate.
	pcmBytesPerSecond = decodeSampleRate * frameSize
)

// decodeArgs builds the ffmpeg arguments for decoding a file to raw PCM on stdout.
func decodeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-i", path,
		"-f", "s16le",
		"-ar", fmt.Sprint(decodeSampleRate),
		"-ac", fmt.Sprint(decodeChannels),
		"-",
	}
}

// pcmDuration converts a decoded byte count to a duration.
func pcmDuration(n int) time.Duration {
	return time.Duration(n) * time.Second / pcmBytesPerSecond
}

// Decoded holds a fully decoded audio stream as raw PCM.
type Decoded struct {
	Data []byte
}

// Duration returns the total duration of the decoded audio.
func (d Decoded) Duration() time.Duration {
	return pcmDuration(len(d.Data))
}

// BytesPerMs returns the decoded byte rate per millisecond.
// Zero when the stream is empty.
func (d Decoded) BytesPerMs() float64 {
	ms := d.Duration().Milliseconds()
	if ms == 0 {
		return 0
	}
	return float64(len(d.Data)) / float64(ms)
}

// Slice returns the PCM bytes covering [start, end), aligned to frame
// boundaries and clamped to the stream length.
func (d Decoded) Slice(start, end time.Duration) []byte {
	from := frameOffset(start)
	to := frameOffset(end)
	if from > len(d.Data) {
		from = len(d.Data)
	}
	if to > len(d.Data) {
		to = len(d.Data)
	}
	if from >= to {
		return nil
	}
	return d.Data[from:to]
}

// frameOffset converts a timestamp to a frame-aligned byte offset.
func frameOffset(t time.Duration) int {
	samples := int(t.Milliseconds()) * decodeSampleRate / 1000
	return samples * frameSize
}

// Decoder decodes audio files to PCM and re-encodes PCM slices to MP3.
type Decoder struct {
	ffmpegPath string
	cmd        commandRunner
	pipe       pipeRunner
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithDecoderCommandRunner sets the command runner (for testing).
func WithDecoderCommandRunner(r commandRunner) DecoderOption {
	return func(d *Decoder) { d.cmd = r }
}

// WithDecoderPipeRunner sets the pipe runner (for testing).
func WithDecoderPipeRunner(r pipeRunner) DecoderOption {
	return func(d *Decoder) { d.pipe = r }
}

// NewDecoder creates a Decoder using the ffmpeg binary at ffmpegPath.
func NewDecoder(ffmpegPath string, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		ffmpegPath: ffmpegPath,
		cmd:        osCommandRunner{},
		pipe:       osPipeRunner{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode fully decodes the file at path to raw PCM.
func (d *Decoder) Decode(ctx context.Context, path string) (Decoded, error) {
	out, err := d.cmd.Output(ctx, d.ffmpegPath, decodeArgs(path))
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	if len(out) == 0 {
		return Decoded{}, fmt.Errorf("%w: %s: empty stream", ErrDecodeFailed, path)
	}
	return Decoded{Data: out}, nil
}

// EncodeMP3 encodes a PCM slice to MP3 entirely in memory.
func (d *Decoder) EncodeMP3(ctx context.Context, pcm []byte) ([]byte, error) {
	args := []string{
		"-v", "error",
		"-f", "s16le",
		"-ar", fmt.Sprint(decodeSampleRate),
		"-ac", fmt.Sprint(decodeChannels),
		"-i", "-",
		"-f", "mp3",
		"-codec:a", "libmp3lame",
		"-q:a", "5",
		"-",
	}
	out, err := d.pipe.Pipe(ctx, d.ffmpegPath, args, pcm)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3 encode: %v", ErrConversionFailed, err)
	}
	return out, nil
}
