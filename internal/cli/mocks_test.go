package cli_test

import (
	"context"
	"sync"
	"time"

	"github.com/ivolkov/audiodigest/internal/analyze"
	"github.com/ivolkov/audiodigest/internal/audio"
	"github.com/ivolkov/audiodigest/internal/cli"
	"github.com/ivolkov/audiodigest/internal/config"
	"github.com/ivolkov/audiodigest/internal/ffmpeg"
	"github.com/ivolkov/audiodigest/internal/products"
	"github.com/ivolkov/audiodigest/internal/report"
	"github.com/ivolkov/audiodigest/internal/transcribe"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{ResultsDir: "results"}, nil
}

// ---------------------------------------------------------------------------
// Mock FFmpegResolver
// ---------------------------------------------------------------------------

type mockFFmpegResolver struct {
	ResolveFunc func() (ffmpeg.Paths, error)
}

func (m *mockFFmpegResolver) Resolve() (ffmpeg.Paths, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc()
	}
	return ffmpeg.Paths{FFmpeg: "/usr/bin/ffmpeg", FFprobe: "/usr/bin/ffprobe"}, nil
}

// ---------------------------------------------------------------------------
// Mock pipeline components
// ---------------------------------------------------------------------------

type mockProber struct {
	DurationFunc func(ctx context.Context, path string) (time.Duration, error)
}

func (m *mockProber) Duration(ctx context.Context, path string) (time.Duration, error) {
	if m.DurationFunc != nil {
		return m.DurationFunc(ctx, path)
	}
	return time.Minute, nil
}

type mockNormalizer struct {
	NormalizeFunc func(ctx context.Context, src audio.Source) (audio.Source, func(), error)

	mu           sync.Mutex
	cleanupCalls int
}

func (m *mockNormalizer) Normalize(ctx context.Context, src audio.Source) (audio.Source, func(), error) {
	cleanup := func() {
		m.mu.Lock()
		m.cleanupCalls++
		m.mu.Unlock()
	}
	if m.NormalizeFunc != nil {
		normalized, _, err := m.NormalizeFunc(ctx, src)
		return normalized, cleanup, err
	}
	return src, cleanup, nil
}

func (m *mockNormalizer) CleanupCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanupCalls
}

type mockOrchestrator struct {
	RunFunc func(ctx context.Context, src audio.Source) (string, error)

	mu       sync.Mutex
	runCalls int
}

func (m *mockOrchestrator) Run(ctx context.Context, src audio.Source) (string, error) {
	m.mu.Lock()
	m.runCalls++
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, src)
	}
	return "", nil
}

func (m *mockOrchestrator) RunCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runCalls
}

// mockPipelineFactory hands out fixed pipeline mocks.
type mockPipelineFactory struct {
	Prober       *mockProber
	Normalizer   *mockNormalizer
	Orchestrator *mockOrchestrator
}

func (m *mockPipelineFactory) NewProber(ffmpeg.Paths, audio.WarnFunc) cli.Prober {
	return m.Prober
}

func (m *mockPipelineFactory) NewNormalizer(string, audio.WarnFunc) cli.Normalizer {
	return m.Normalizer
}

func (m *mockPipelineFactory) NewOrchestrator(string, string, transcribe.Progress) cli.Orchestrator {
	return m.Orchestrator
}

// ---------------------------------------------------------------------------
// Mock collaborators
// ---------------------------------------------------------------------------

type mockSummarizer struct {
	SummarizeFunc func(ctx context.Context, text string) (string, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}
	return "summary", nil
}

type mockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, plainText string, durationMinutes float64) (analyze.Analysis, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, plainText string, durationMinutes float64) (analyze.Analysis, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, plainText, durationMinutes)
	}
	return analyze.Analysis{}, nil
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, name, description string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, name, description string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, name, description)
	}
	return "report", nil
}

type mockFilter struct {
	FilterFunc func(ctx context.Context, catalog []products.Product, request string) ([]products.Product, error)
}

func (m *mockFilter) Filter(ctx context.Context, catalog []products.Product, request string) ([]products.Product, error) {
	if m.FilterFunc != nil {
		return m.FilterFunc(ctx, catalog, request)
	}
	return nil, nil
}

// mockCollaboratorFactory hands out fixed collaborator mocks.
type mockCollaboratorFactory struct {
	Summarizer *mockSummarizer
	Analyzer   *mockAnalyzer
	Generator  *mockGenerator
	Filter     *mockFilter

	mu      sync.Mutex
	apiKeys []string
}

func (m *mockCollaboratorFactory) record(apiKey string) {
	m.mu.Lock()
	m.apiKeys = append(m.apiKeys, apiKey)
	m.mu.Unlock()
}

func (m *mockCollaboratorFactory) NewSummarizer(apiKey string) analyze.Summarizer {
	m.record(apiKey)
	if m.Summarizer != nil {
		return m.Summarizer
	}
	return &mockSummarizer{}
}

func (m *mockCollaboratorFactory) NewAnalyzer(apiKey string) analyze.Analyzer {
	m.record(apiKey)
	if m.Analyzer != nil {
		return m.Analyzer
	}
	return &mockAnalyzer{}
}

func (m *mockCollaboratorFactory) NewReportGenerator(apiKey string) report.Generator {
	m.record(apiKey)
	if m.Generator != nil {
		return m.Generator
	}
	return &mockGenerator{}
}

func (m *mockCollaboratorFactory) NewProductFilter(apiKey string) products.Filter {
	m.record(apiKey)
	if m.Filter != nil {
		return m.Filter
	}
	return &mockFilter{}
}

func (m *mockCollaboratorFactory) APIKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.apiKeys...)
}

// Compile-time interface verification.
var (
	_ cli.ConfigLoader        = (*mockConfigLoader)(nil)
	_ cli.FFmpegResolver      = (*mockFFmpegResolver)(nil)
	_ cli.PipelineFactory     = (*mockPipelineFactory)(nil)
	_ cli.CollaboratorFactory = (*mockCollaboratorFactory)(nil)
)
