// Package cli wires the audiodigest commands: analyze, report, products,
// and config. Commands receive their dependencies through Env so tests can
// substitute every external collaborator.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ivolkov/audiodigest/internal/analyze"
	"github.com/ivolkov/audiodigest/internal/audio"
	"github.com/ivolkov/audiodigest/internal/config"
	"github.com/ivolkov/audiodigest/internal/ffmpeg"
	"github.com/ivolkov/audiodigest/internal/products"
	"github.com/ivolkov/audiodigest/internal/report"
	"github.com/ivolkov/audiodigest/internal/transcribe"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing commands in isolation.
//
// All fields have production defaults via DefaultEnv(). Tests override
// specific fields using the With* options.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	ConfigLoader   ConfigLoader
	FFmpegResolver FFmpegResolver
	Pipeline       PipelineFactory
	Collaborators  CollaboratorFactory
}

// ConfigLoader loads user configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// FFmpegResolver locates the ffmpeg/ffprobe binaries.
type FFmpegResolver interface {
	Resolve() (ffmpeg.Paths, error)
}

// Prober determines audio duration.
type Prober interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// Normalizer guarantees a source is in an accepted format.
// The returned func releases the temporary file, if one was created.
type Normalizer interface {
	Normalize(ctx context.Context, src audio.Source) (audio.Source, func(), error)
}

// Orchestrator runs the transcription pipeline for one source.
type Orchestrator interface {
	Run(ctx context.Context, src audio.Source) (string, error)
}

// PipelineFactory creates the audio pipeline components.
type PipelineFactory interface {
	NewProber(paths ffmpeg.Paths, warn audio.WarnFunc) Prober
	NewNormalizer(ffmpegPath string, warn audio.WarnFunc) Normalizer
	NewOrchestrator(apiKey, ffmpegPath string, progress transcribe.Progress) Orchestrator
}

// CollaboratorFactory creates the downstream text-generation collaborators.
type CollaboratorFactory interface {
	NewSummarizer(apiKey string) analyze.Summarizer
	NewAnalyzer(apiKey string) analyze.Analyzer
	NewReportGenerator(apiKey string) report.Generator
	NewProductFilter(apiKey string) products.Filter
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) { e.Stdout = w }
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) { e.Stderr = w }
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) { e.Getenv = fn }
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) { e.Now = fn }
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) { e.ConfigLoader = l }
}

// WithFFmpegResolver sets the ffmpeg resolver.
func WithFFmpegResolver(r FFmpegResolver) EnvOption {
	return func(e *Env) { e.FFmpegResolver = r }
}

// WithPipelineFactory sets the pipeline factory.
func WithPipelineFactory(f PipelineFactory) EnvOption {
	return func(e *Env) { e.Pipeline = f }
}

// WithCollaboratorFactory sets the collaborator factory.
func WithCollaboratorFactory(f CollaboratorFactory) EnvOption {
	return func(e *Env) { e.Collaborators = f }
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Getenv:         os.Getenv,
		Now:            time.Now,
		ConfigLoader:   &defaultConfigLoader{},
		FFmpegResolver: ffmpeg.NewResolver(),
		Pipeline:       &defaultPipelineFactory{},
		Collaborators:  &defaultCollaboratorFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultPipelineFactory implements PipelineFactory using the audio and
// transcribe packages.
type defaultPipelineFactory struct{}

func (defaultPipelineFactory) NewProber(paths ffmpeg.Paths, warn audio.WarnFunc) Prober {
	return audio.NewProber(paths, audio.WithWarnFunc(warn))
}

func (defaultPipelineFactory) NewNormalizer(ffmpegPath string, warn audio.WarnFunc) Normalizer {
	return audio.NewNormalizer(ffmpegPath, audio.WithNormalizerWarnFunc(warn))
}

func (defaultPipelineFactory) NewOrchestrator(apiKey, ffmpegPath string, progress transcribe.Progress) Orchestrator {
	client := openai.NewClient(apiKey)
	transcriber := transcribe.NewOpenAITranscriber(client)
	decoder := audio.NewDecoder(ffmpegPath)
	return transcribe.NewOrchestrator(transcriber, decoder, transcribe.WithProgress(progress))
}

// defaultCollaboratorFactory implements CollaboratorFactory using OpenAI.
type defaultCollaboratorFactory struct{}

func (defaultCollaboratorFactory) NewSummarizer(apiKey string) analyze.Summarizer {
	return analyze.NewOpenAISummarizer(openai.NewClient(apiKey))
}

func (defaultCollaboratorFactory) NewAnalyzer(apiKey string) analyze.Analyzer {
	return analyze.NewOpenAIAnalyzer(openai.NewClient(apiKey))
}

func (defaultCollaboratorFactory) NewReportGenerator(apiKey string) report.Generator {
	return report.NewOpenAIGenerator(openai.NewClient(apiKey))
}

func (defaultCollaboratorFactory) NewProductFilter(apiKey string) products.Filter {
	return products.NewOpenAIFilter(openai.NewClient(apiKey))
}

// Compile-time interface verification.
var (
	_ ConfigLoader        = (*defaultConfigLoader)(nil)
	_ PipelineFactory     = (*defaultPipelineFactory)(nil)
	_ CollaboratorFactory = (*defaultCollaboratorFactory)(nil)
)
