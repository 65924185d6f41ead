package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"slackgpt/clients"
	"slackgpt/models"
)

// OpenAIClient implements the clients.CompletionClient interface using the
// openai-go SDK. A non-empty baseURL routes all calls through a custom
// completion endpoint (reverse-proxy mode).
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates a new OpenAI completion client
func NewOpenAIClient(apiKey, baseURL string) clients.CompletionClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
	}
}

// CreateCompletion sends the assembled conversation to the chat completions
// API and returns the first choice's text content
func (c *OpenAIClient) CreateCompletion(ctx context.Context, req models.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns))
	for _, turn := range req.Turns {
		switch turn.Role {
		case models.TurnRoleSystem:
			messages = append(messages, openai.SystemMessage(turn.Content))
		case models.TurnRoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		case models.TurnRoleUser:
			if turn.HasImage() {
				parts := []openai.ChatCompletionContentPartUnionParam{}
				if turn.Content != "" {
					parts = append(parts, openai.TextContentPart(turn.Content))
				}
				parts = append(parts, openai.ImageContentPart(
					openai.ChatCompletionContentPartImageImageURLParam{URL: turn.ImageData},
				))
				messages = append(messages, openai.UserMessage(parts))
			} else {
				messages = append(messages, openai.UserMessage(turn.Content))
			}
		default:
			return "", fmt.Errorf("unsupported turn role: %s", turn.Role)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	content := response.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty message content in first choice")
	}

	return content, nil
}
