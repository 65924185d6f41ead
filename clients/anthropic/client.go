package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"slackgpt/clients"
	"slackgpt/models"
)

const defaultMaxTokens = 1024

// AnthropicClient implements the clients.CompletionClient interface using
// the Anthropic messages API. Selected with COMPLETION_PROVIDER=anthropic.
type AnthropicClient struct {
	client anthropic.Client
}

// NewAnthropicClient creates a new Anthropic completion client
func NewAnthropicClient(apiKey string) clients.CompletionClient {
	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

// CreateCompletion sends the assembled conversation to the messages API and
// returns the concatenated text content of the response
func (c *AnthropicClient) CreateCompletion(ctx context.Context, req models.CompletionRequest) (string, error) {
	var system []anthropic.TextBlockParam
	var messages []anthropic.MessageParam

	for _, turn := range req.Turns {
		switch turn.Role {
		case models.TurnRoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: turn.Content})
		case models.TurnRoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Content)))
		case models.TurnRoleUser:
			blocks := []anthropic.ContentBlockParamUnion{}
			if turn.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(turn.Content))
			}
			if turn.HasImage() {
				mediaType, data, err := splitDataURI(turn.ImageData)
				if err != nil {
					return "", err
				}
				blocks = append(blocks, anthropic.NewImageBlockBase64(mediaType, data))
			}
			messages = append(messages, anthropic.NewUserMessage(blocks...))
		default:
			return "", fmt.Errorf("unsupported turn role: %s", turn.Role)
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: defaultMaxTokens,
		System:    system,
		Messages:  messages,
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	response, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("messages request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}

	return sb.String(), nil
}

// splitDataURI splits a base64 data URI into its media type and payload
func splitDataURI(uri string) (string, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", "", fmt.Errorf("image payload is not a data URI")
	}
	mediaType, data, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", "", fmt.Errorf("image payload is not base64-encoded")
	}
	return mediaType, data, nil
}
