// Package analyze holds the downstream text-generation collaborators:
// a transcript summarizer and a transcript analyzer. Both are thin chat
// completion calls; the engineering here is limited to retries, error
// classification, and overriding model-returned counts with values this
// program computes deterministically.
package analyze

import (
	"context"
	"errors"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ivolkov/audiodigest/internal/apierr"
	"github.com/ivolkov/audiodigest/internal/subtitle"
)

// ModelGPT41Mini is the chat model for summary/analysis generation.
// Not yet a constant in go-openai.
const ModelGPT41Mini = "gpt-4.1-mini"

// Retry configuration for chat completion calls.
const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
	defaultMaxDelay   = 30 * time.Second
)

// ErrEmptyResponse indicates the model returned no choices or no content.
var ErrEmptyResponse = errors.New("empty model response")

// chatClient is the slice of *openai.Client used for chat completions.
// Tests inject mocks.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance check.
var _ chatClient = (*openai.Client)(nil)

// WPM computes speaking speed in words per minute, rounded to the nearest
// integer. Zero when the duration is not positive.
func WPM(wordCount int, durationMinutes float64) int {
	if durationMinutes <= 0 {
		return 0
	}
	return int(math.Round(float64(wordCount) / durationMinutes))
}

// Metrics computes the deterministic transcript metrics that override
// whatever the analysis model returns.
func Metrics(plainText string, durationMinutes float64) (wordCount, wpm int) {
	wordCount = subtitle.WordCount(plainText)
	return wordCount, WPM(wordCount, durationMinutes)
}

// completeWithRetry runs one chat completion with backoff on transient errors.
func completeWithRetry(ctx context.Context, client chatClient, req openai.ChatCompletionRequest) (string, error) {
	cfg := apierr.RetryConfig{
		MaxRetries: defaultMaxRetries,
		BaseDelay:  defaultBaseDelay,
		MaxDelay:   defaultMaxDelay,
	}

	return apierr.RetryWithBackoff(ctx, cfg, func() (string, error) {
		resp, err := client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", apierr.Classify(err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", ErrEmptyResponse
		}
		return resp.Choices[0].Message.Content, nil
	}, apierr.Retryable)
}
