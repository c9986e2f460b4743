package analyze

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Topic is a frequently mentioned topic with its mention count.
type Topic struct {
	Topic    string `json:"topic"`
	Mentions int    `json:"mentions"`
}

// Analysis is the JSON analysis artifact for a transcript.
// WordCount and SpeakingSpeedWPM are always the values computed by this
// program; model-returned values for those fields are overwritten.
type Analysis struct {
	WordCount                 int     `json:"word_count"`
	SpeakingSpeedWPM          int     `json:"speaking_speed_wpm"`
	FrequentlyMentionedTopics []Topic `json:"frequently_mentioned_topics"`
}

// Analyzer extracts key insights from a plain transcript.
type Analyzer interface {
	Analyze(ctx context.Context, plainText string, durationMinutes float64) (Analysis, error)
}

// Compile-time interface compliance check.
var _ Analyzer = (*OpenAIAnalyzer)(nil)

const analyzerSystemPrompt = "You are a helpful assistant that analyzes transcripts and returns data in JSON format."

const analyzerPromptTemplate = `Based on the following transcript in triple quotes, provide a JSON object with:
1. The total word count in transcript text.
2. The speaking speed in words per minute (WPM).
3. A list of the top 3-5 frequently mentioned topics, with a mention count for each.

The speaking duration was %.2f minutes.
Word count in text is %d.

Transcript:
` + "```%s```" + `

Provide the output in a single valid JSON object. Do not include any text outside of the JSON object.
The JSON object should have the following structure:
{
  "word_count": <integer>,
  "speaking_speed_wpm": <integer>,
  "frequently_mentioned_topics": [
    { "topic": "<topic_name>", "mentions": <integer> },
    ...
  ]
}`

// OpenAIAnalyzer implements Analyzer with an OpenAI chat completion.
type OpenAIAnalyzer struct {
	client chatClient
	model  string
}

// AnalyzerOption configures an OpenAIAnalyzer.
type AnalyzerOption func(*OpenAIAnalyzer)

// WithAnalyzerModel overrides the chat model.
func WithAnalyzerModel(model string) AnalyzerOption {
	return func(a *OpenAIAnalyzer) { a.model = model }
}

// WithAnalyzerClient sets a custom chat client (for testing).
func WithAnalyzerClient(c chatClient) AnalyzerOption {
	return func(a *OpenAIAnalyzer) { a.client = c }
}

// NewOpenAIAnalyzer creates an analyzer backed by the given client.
func NewOpenAIAnalyzer(client *openai.Client, opts ...AnalyzerOption) *OpenAIAnalyzer {
	a := &OpenAIAnalyzer{
		client: client,
		model:  ModelGPT41Mini,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze asks the model for topics and overrides the count fields with the
// deterministic metrics computed from the transcript and duration.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, plainText string, durationMinutes float64) (Analysis, error) {
	wordCount, wpm := Metrics(plainText, durationMinutes)

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analyzerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(analyzerPromptTemplate, durationMinutes, wordCount, plainText)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	content, err := completeWithRetry(ctx, a.client, req)
	if err != nil {
		return Analysis{}, fmt.Errorf("analysis request: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("parse analysis response: %w", err)
	}

	// The model may recalculate these differently; ours win.
	analysis.WordCount = wordCount
	analysis.SpeakingSpeedWPM = wpm
	return analysis, nil
}
