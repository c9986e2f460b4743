// Package report generates markdown market-analysis reports for a service
// from its name or description. A thin chat completion collaborator.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ivolkov/audiodigest/internal/apierr"
)

// defaultModel is the chat model for report generation.
const defaultModel = "gpt-4.1-mini"

// ErrNoInput indicates neither a service name nor a description was given.
var ErrNoInput = errors.New("service name or description required")

// ErrEmptyResponse indicates the model returned no report.
var ErrEmptyResponse = errors.New("empty model response")

const systemPrompt = `You are a helpful business analyst assistant.
You will get service name or service description.
Based on the information provided, return a markdown-formatted multi-section analysis report.
Your report must include:
Brief History: Founding year, milestones, etc.
Target Audience: Primary user segments
Core Features: Top 2-4 key functionalities
Unique Selling Points: Key differentiators
Business Model: How the service makes money
Tech Stack Insights: Any hints about technologies used
Perceived Strengths: Mentioned positives or standout features
Perceived Weaknesses: Cited drawbacks or limitations`

// Retry configuration for report generation.
const (
	maxRetries = 3
	baseDelay  = 1 * time.Second
	maxDelay   = 30 * time.Second
)

// Generator produces a markdown report for a service.
type Generator interface {
	Generate(ctx context.Context, name, description string) (string, error)
}

// chatClient is the slice of *openai.Client used here; tests inject mocks.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Generator  = (*OpenAIGenerator)(nil)
	_ chatClient = (*openai.Client)(nil)
)

// OpenAIGenerator implements Generator with an OpenAI chat completion.
type OpenAIGenerator struct {
	client chatClient
	model  string
}

// GeneratorOption configures an OpenAIGenerator.
type GeneratorOption func(*OpenAIGenerator)

// WithGeneratorModel overrides the chat model.
func WithGeneratorModel(model string) GeneratorOption {
	return func(g *OpenAIGenerator) { g.model = model }
}

// WithGeneratorClient sets a custom chat client (for testing).
func WithGeneratorClient(c chatClient) GeneratorOption {
	return func(g *OpenAIGenerator) { g.client = c }
}

// NewOpenAIGenerator creates a report generator backed by the given client.
func NewOpenAIGenerator(client *openai.Client, opts ...GeneratorOption) *OpenAIGenerator {
	g := &OpenAIGenerator{
		client: client,
		model:  defaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the report prompt from whichever inputs are present and
// returns the model's markdown report.
func (g *OpenAIGenerator) Generate(ctx context.Context, name, description string) (string, error) {
	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "Service Name: %s\n", name)
	}
	if description != "" {
		fmt.Fprintf(&b, "Service Description: %s\n", description)
	}
	if b.Len() == 0 {
		return "", ErrNoInput
	}
	prompt := b.String()

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	cfg := apierr.RetryConfig{MaxRetries: maxRetries, BaseDelay: baseDelay, MaxDelay: maxDelay}
	report, err := apierr.RetryWithBackoff(ctx, cfg, func() (string, error) {
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", apierr.Classify(err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", ErrEmptyResponse
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}, apierr.Retryable)
	if err != nil {
		return "", fmt.Errorf("report request: %w", err)
	}
	return report, nil
}
