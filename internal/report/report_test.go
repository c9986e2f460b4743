package report_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ivolkov/audiodigest/internal/report"
)

type mockChatClient struct {
	CompletionFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)

	mu   sync.Mutex
	reqs []openai.ChatCompletionRequest
}

func (m *mockChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.mu.Lock()
	m.reqs = append(m.reqs, req)
	m.mu.Unlock()

	if m.CompletionFunc != nil {
		return m.CompletionFunc(ctx, req)
	}
	return openai.ChatCompletionResponse{}, nil
}

func (m *mockChatClient) Requests() []openai.ChatCompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]openai.ChatCompletionRequest(nil), m.reqs...)
}

var _ report.ChatClient = (*mockChatClient)(nil)

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("name only", func(t *testing.T) {
		t.Parallel()

		client := &mockChatClient{
			CompletionFunc: func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				user := req.Messages[len(req.Messages)-1].Content
				if !strings.Contains(user, "Service Name: Spotify") {
					t.Errorf("prompt = %q, want service name line", user)
				}
				if strings.Contains(user, "Service Description:") {
					t.Errorf("prompt = %q, unexpected description line", user)
				}
				return chatResponse("# Report\n\n..."), nil
			},
		}
		g := report.NewOpenAIGenerator(nil, report.WithGeneratorClient(client))

		got, err := g.Generate(context.Background(), "Spotify", "")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !strings.HasPrefix(got, "# Report") {
			t.Errorf("Generate() = %q", got)
		}
	})

	t.Run("description only", func(t *testing.T) {
		t.Parallel()

		client := &mockChatClient{
			CompletionFunc: func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				user := req.Messages[len(req.Messages)-1].Content
				if !strings.Contains(user, "Service Description: A music app") {
					t.Errorf("prompt = %q, want description line", user)
				}
				return chatResponse("report body"), nil
			},
		}
		g := report.NewOpenAIGenerator(nil, report.WithGeneratorClient(client))

		if _, err := g.Generate(context.Background(), "", "A music app"); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	})

	t.Run("no input", func(t *testing.T) {
		t.Parallel()

		client := &mockChatClient{}
		g := report.NewOpenAIGenerator(nil, report.WithGeneratorClient(client))

		_, err := g.Generate(context.Background(), "", "")
		if !errors.Is(err, report.ErrNoInput) {
			t.Fatalf("Generate() error = %v, want ErrNoInput", err)
		}
		if len(client.Requests()) != 0 {
			t.Error("request sent despite missing input")
		}
	})

	t.Run("empty response", func(t *testing.T) {
		t.Parallel()

		client := &mockChatClient{
			CompletionFunc: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, nil
			},
		}
		g := report.NewOpenAIGenerator(nil, report.WithGeneratorClient(client))

		_, err := g.Generate(context.Background(), "Spotify", "")
		if !errors.Is(err, report.ErrEmptyResponse) {
			t.Errorf("Generate() error = %v, want ErrEmptyResponse", err)
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()

		client := &mockChatClient{
			CompletionFunc: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return chatResponse("\n\nreport body\n\n"), nil
			},
		}
		g := report.NewOpenAIGenerator(nil, report.WithGeneratorClient(client))

		got, err := g.Generate(context.Background(), "Spotify", "")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if got != "report body" {
			t.Errorf("Generate() = %q, want trimmed body", got)
		}
	})
}
