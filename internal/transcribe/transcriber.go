// Package transcribe converts audio into subtitle-formatted transcripts.
// It wraps the OpenAI speech-to-text API and orchestrates the single-call
// and chunked transcription paths.
package transcribe

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ivolkov/audiodigest/internal/apierr"
)

// Transcriber issues speech-to-text requests returning SRT transcripts.
type Transcriber interface {
	// TranscribeFile transcribes a whole audio file in its source language.
	TranscribeFile(ctx context.Context, path string) (string, error)

	// TranslateBuffer transcribes an in-memory audio buffer, translating to
	// English. name is the filename hint sent with the multipart request.
	TranslateBuffer(ctx context.Context, name string, data []byte) (string, error)
}

// audioClient is the slice of *openai.Client used for speech-to-text.
// *openai.Client implements this implicitly; tests inject mocks.
type audioClient interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
	CreateTranslation(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Transcriber = (*OpenAITranscriber)(nil)
	_ audioClient = (*openai.Client)(nil)
)

// OpenAITranscriber transcribes audio using OpenAI's whisper-1 model with
// SRT output. Request failures are classified into apierr sentinels but
// never retried here; the orchestrator surfaces the first failure.
type OpenAITranscriber struct {
	client audioClient
	model  string
}

// TranscriberOption configures an OpenAITranscriber.
type TranscriberOption func(*OpenAITranscriber)

// WithModel overrides the transcription model.
func WithModel(model string) TranscriberOption {
	return func(t *OpenAITranscriber) { t.model = model }
}

// WithAudioClient sets a custom audio client (for testing).
func WithAudioClient(c audioClient) TranscriberOption {
	return func(t *OpenAITranscriber) { t.client = c }
}

// NewOpenAITranscriber creates a transcriber backed by the given client.
func NewOpenAITranscriber(client *openai.Client, opts ...TranscriberOption) *OpenAITranscriber {
	t := &OpenAITranscriber{
		client: client,
		model:  openai.Whisper1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TranscribeFile implements Transcriber for a file on disk.
func (t *OpenAITranscriber) TranscribeFile(ctx context.Context, path string) (string, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: path,
		Format:   openai.AudioResponseFormatSRT,
	}
	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, apierr.Classify(err))
	}
	return resp.Text, nil
}

// TranslateBuffer implements Transcriber for an in-memory buffer.
func (t *OpenAITranscriber) TranslateBuffer(ctx context.Context, name string, data []byte) (string, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: name, // multipart filename hint; audio comes from Reader
		Reader:   bytes.NewReader(data),
		Format:   openai.AudioResponseFormatSRT,
	}
	resp, err := t.client.CreateTranslation(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, apierr.Classify(err))
	}
	return resp.Text, nil
}
