// Package products filters a JSON product list with a natural-language
// request through a forced LLM tool call.
package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ivolkov/audiodigest/internal/apierr"
)

// ErrInvalidList indicates the product list file could not be read or parsed.
var ErrInvalidList = errors.New("invalid product list")

// ErrNoToolCall indicates the model did not return the expected tool call.
var ErrNoToolCall = errors.New("model returned no tool call")

// defaultModel is the chat model for product filtering.
const defaultModel = "gpt-4.1-mini"

// filterFunctionName is the tool the model is forced to call.
const filterFunctionName = "filter_products"

// Retry configuration for filter requests.
const (
	maxRetries = 3
	baseDelay  = 1 * time.Second
	maxDelay   = 30 * time.Second
)

// Product is one entry of the product catalog.
type Product struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	InStock  bool    `json:"in_stock"`
}

// Load reads a JSON product list from path.
func Load(path string) ([]Product, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified catalog file
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidList, err)
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidList, err)
	}
	return products, nil
}

// Filter selects catalog products matching a natural-language request.
type Filter interface {
	Filter(ctx context.Context, catalog []Product, request string) ([]Product, error)
}

// chatClient is the slice of *openai.Client used here; tests inject mocks.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Filter     = (*OpenAIFilter)(nil)
	_ chatClient = (*openai.Client)(nil)
)

// OpenAIFilter implements Filter with a forced function/tool call: the model
// must respond through filter_products, whose arguments carry the matches.
type OpenAIFilter struct {
	client chatClient
	model  string
}

// FilterOption configures an OpenAIFilter.
type FilterOption func(*OpenAIFilter)

// WithFilterModel overrides the chat model.
func WithFilterModel(model string) FilterOption {
	return func(f *OpenAIFilter) { f.model = model }
}

// WithFilterClient sets a custom chat client (for testing).
func WithFilterClient(c chatClient) FilterOption {
	return func(f *OpenAIFilter) { f.client = c }
}

// NewOpenAIFilter creates a product filter backed by the given client.
func NewOpenAIFilter(client *openai.Client, opts ...FilterOption) *OpenAIFilter {
	f := &OpenAIFilter{
		client: client,
		model:  defaultModel,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// productSchema describes one product object in the tool parameter schema.
var productSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":     map[string]any{"type": "string"},
		"category": map[string]any{"type": "string"},
		"price":    map[string]any{"type": "number"},
		"rating":   map[string]any{"type": "number"},
		"in_stock": map[string]any{"type": "boolean"},
	},
	"required": []string{"name", "category", "price", "rating", "in_stock"},
}

// filterParameters is the JSON schema of the filter_products tool.
var filterParameters = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"products": map[string]any{
			"type":        "array",
			"description": "Products from the catalog that match the user request.",
			"items":       productSchema,
		},
	},
	"required": []string{"products"},
}

// filterArguments is the decoded tool call payload. The products key is
// canonical; filtered is accepted for models that answer with that name.
type filterArguments struct {
	Products []Product `json:"products"`
	Filtered []Product `json:"filtered"`
}

// Filter sends the catalog and request, forcing a filter_products tool call,
// and returns the products the model selected.
func (f *OpenAIFilter) Filter(ctx context.Context, catalog []Product, request string) ([]Product, error) {
	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a product filtering assistant. You receive a list of products and a user request. Return only matching products through the filter_products tool.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Product catalog:\n%s\n\nFind products based on this request: %s", catalogJSON, request),
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        filterFunctionName,
					Description: "Filter the product list by user preferences.",
					Parameters:  filterParameters,
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: filterFunctionName},
		},
	}

	cfg := apierr.RetryConfig{MaxRetries: maxRetries, BaseDelay: baseDelay, MaxDelay: maxDelay}
	args, err := apierr.RetryWithBackoff(ctx, cfg, func() (string, error) {
		resp, err := f.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", apierr.Classify(err)
		}
		if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
			return "", ErrNoToolCall
		}
		return resp.Choices[0].Message.ToolCalls[0].Function.Arguments, nil
	}, apierr.Retryable)
	if err != nil {
		return nil, fmt.Errorf("filter request: %w", err)
	}

	var parsed filterArguments
	if err := json.Unmarshal([]byte(args), &parsed); err != nil {
		return nil, fmt.Errorf("parse tool arguments: %w", err)
	}
	if parsed.Products != nil {
		return parsed.Products, nil
	}
	return parsed.Filtered, nil
}
