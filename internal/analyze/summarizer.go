package analyze

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer produces a markdown summary of a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Compile-time interface compliance check.
var _ Summarizer = (*OpenAISummarizer)(nil)

const summarizerSystemPrompt = "You are a helpful assistant that summarizes text. " +
	"Focus on preserving core intent and main takeaways. " +
	"Use markdown format for the summary formatting. " +
	"Use the language of the text for the summary."

// OpenAISummarizer implements Summarizer with an OpenAI chat completion.
type OpenAISummarizer struct {
	client chatClient
	model  string
}

// SummarizerOption configures an OpenAISummarizer.
type SummarizerOption func(*OpenAISummarizer)

// WithSummarizerModel overrides the chat model.
func WithSummarizerModel(model string) SummarizerOption {
	return func(s *OpenAISummarizer) { s.model = model }
}

// WithSummarizerClient sets a custom chat client (for testing).
func WithSummarizerClient(c chatClient) SummarizerOption {
	return func(s *OpenAISummarizer) { s.client = c }
}

// NewOpenAISummarizer creates a summarizer backed by the given client.
func NewOpenAISummarizer(client *openai.Client, opts ...SummarizerOption) *OpenAISummarizer {
	s := &OpenAISummarizer{
		client: client,
		model:  ModelGPT41Mini,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns a markdown summary in the language of the text.
func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarizerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Please summarize the following text, use the language of the text:\n\n```%s```", text)},
		},
	}

	content, err := completeWithRetry(ctx, s.client, req)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	return content, nil
}
