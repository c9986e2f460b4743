package audio

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ivolkov/audiodigest/internal/ffmpeg"
)

// ProbeStrategy determines the duration of an audio file.
// Strategies are tried in order; the first success wins.
type ProbeStrategy interface {
	// Name identifies the strategy in warnings and combined errors.
	Name() string
	// Duration returns the audio duration of the file at path.
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// Compile-time interface implementation checks.
var (
	_ ProbeStrategy = (*MetadataProbe)(nil)
	_ ProbeStrategy = (*DecodeProbe)(nil)
)

// WarnFunc is a callback for warning messages during probing.
type WarnFunc func(msg string)

// MetadataProbe reads duration from container metadata via ffprobe.
// Fast (no decode), but some containers carry missing or bogus metadata.
type MetadataProbe struct {
	ffprobePath string
	cmd         commandRunner
}

// NewMetadataProbe creates a MetadataProbe. ffprobePath may be empty,
// in which case every probe fails and the caller's next strategy runs.
func NewMetadataProbe(ffprobePath string) *MetadataProbe {
	return &MetadataProbe{ffprobePath: ffprobePath, cmd: osCommandRunner{}}
}

// Name implements ProbeStrategy.
func (p *MetadataProbe) Name() string { return "metadata" }

// Duration implements ProbeStrategy using ffprobe's format duration entry.
func (p *MetadataProbe) Duration(ctx context.Context, path string) (time.Duration, error) {
	if p.ffprobePath == "" {
		return 0, fmt.Errorf("ffprobe unavailable: %w", ffmpeg.ErrNotFound)
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := p.cmd.Output(ctx, p.ffprobePath, args)
	if err != nil {
		return 0, err
	}
	return parseProbeSeconds(string(out))
}

// parseProbeSeconds parses ffprobe's decimal-seconds output.
func parseProbeSeconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("unparseable duration %q", s)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// DecodeProbe determines duration by fully decoding the audio stream and
// dividing the decoded sample count by the sample rate. Slow but reliable.
type DecodeProbe struct {
	ffmpegPath string
	cmd        commandRunner
}

// NewDecodeProbe creates a DecodeProbe.
func NewDecodeProbe(ffmpegPath string) *DecodeProbe {
	return &DecodeProbe{ffmpegPath: ffmpegPath, cmd: osCommandRunner{}}
}

// Name implements ProbeStrategy.
func (p *DecodeProbe) Name() string { return "decode" }

// Duration implements ProbeStrategy by decoding to raw PCM and counting bytes.
func (p *DecodeProbe) Duration(ctx context.Context, path string) (time.Duration, error) {
	out, err := p.cmd.Output(ctx, p.ffmpegPath, decodeArgs(path))
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("decoded zero bytes from %s", path)
	}
	return pcmDuration(len(out)), nil
}

// Prober runs an ordered list of probe strategies.
type Prober struct {
	strategies []ProbeStrategy
	warn       WarnFunc
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithStrategies replaces the default strategy list.
func WithStrategies(strategies ...ProbeStrategy) ProberOption {
	return func(p *Prober) { p.strategies = strategies }
}

// WithWarnFunc sets a callback invoked when a strategy fails and the
// prober moves on to the next one. Nil suppresses warnings.
func WithWarnFunc(fn WarnFunc) ProberOption {
	return func(p *Prober) { p.warn = fn }
}

// NewProber creates a Prober with the default two-tier strategy:
// metadata read first, full decode as fallback.
func NewProber(paths ffmpeg.Paths, opts ...ProberOption) *Prober {
	p := &Prober{
		strategies: []ProbeStrategy{
			NewMetadataProbe(paths.FFprobe),
			NewDecodeProbe(paths.FFmpeg),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Duration returns the duration of the file at path.
// Strategies run in order; the metadata result is preferred whenever
// available because it avoids a full decode pass. When all strategies
// fail, the combined failure wraps ErrDurationUnavailable.
func (p *Prober) Duration(ctx context.Context, path string) (time.Duration, error) {
	var failures []error
	for i, s := range p.strategies {
		d, err := s.Duration(ctx, path)
		if err == nil {
			return d, nil
		}
		failures = append(failures, fmt.Errorf("%s: %w", s.Name(), err))
		if p.warn != nil && i < len(p.strategies)-1 {
			p.warn(fmt.Sprintf("%s duration probe failed, trying %s", s.Name(), p.strategies[i+1].Name()))
		}
	}
	return 0, fmt.Errorf("%w: %w", ErrDurationUnavailable, errors.Join(failures...))
}

// Minutes converts a duration to fractional minutes.
func Minutes(d time.Duration) float64 {
	return d.Minutes()
}
