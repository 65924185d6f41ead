package slack

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"

	"slackgpt/clients"
	"slackgpt/core"
)

// SlackClient implements the clients.SlackClient interface using the
// slack-go/slack SDK. The underlying SDK client is rebuilt per call from
// the token source so OAuth token swaps take effect immediately.
type SlackClient struct {
	tokens clients.TokenSource
}

// NewSlackClient creates a new Slack client reading its token from tokens
func NewSlackClient(tokens clients.TokenSource) clients.SlackClient {
	return &SlackClient{tokens: tokens}
}

// NewSlackOAuthClient creates a new Slack client for OAuth operations only
// This can be used when you don't have an auth token yet
func NewSlackOAuthClient() clients.SlackOAuthClient {
	return &SlackClient{}
}

func (c *SlackClient) api() *slack.Client {
	token := ""
	if c.tokens != nil {
		token = c.tokens.BotToken()
	}
	return slack.New(token)
}

// GetOAuthV2Response exchanges an OAuth authorization code for access tokens
func (c *SlackClient) GetOAuthV2Response(
	httpClient *http.Client,
	clientID, clientSecret, code, redirectURL string,
) (*clients.OAuthV2Response, error) {
	slackResponse, err := slack.GetOAuthV2Response(httpClient, clientID, clientSecret, code, redirectURL)
	if err != nil {
		return nil, err
	}

	// Map Slack SDK response to our custom response struct
	return &clients.OAuthV2Response{
		TeamID:      slackResponse.Team.ID,
		TeamName:    slackResponse.Team.Name,
		AccessToken: slackResponse.AccessToken,
	}, nil
}

// AuthTest verifies the bot token and returns information about the bot
func (c *SlackClient) AuthTest(ctx context.Context) (*clients.SlackAuthTestResponse, error) {
	response, err := c.api().AuthTestContext(ctx)
	if err != nil {
		return nil, err
	}

	return &clients.SlackAuthTestResponse{
		UserID: response.UserID,
		BotID:  response.BotID,
		TeamID: response.TeamID,
	}, nil
}

// PostMessage sends a text message to a Slack channel
func (c *SlackClient) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api().PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	return err
}

// GetConversationHistory returns up to limit recent messages, newest first
func (c *SlackClient) GetConversationHistory(
	ctx context.Context,
	channelID string,
	limit int,
) ([]clients.SlackHistoryMessage, error) {
	response, err := c.api().GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	// Convert SDK messages to our custom history messages
	var messages []clients.SlackHistoryMessage
	for _, message := range response.Messages {
		messages = append(messages, clients.SlackHistoryMessage{
			SenderID:  message.User,
			IsBot:     message.BotID != "",
			Text:      message.Text,
			Timestamp: message.Timestamp,
		})
	}

	return messages, nil
}

// GetFileInfo resolves a file ID to its metadata and private download URL
func (c *SlackClient) GetFileInfo(ctx context.Context, fileID string) (*clients.SlackFileInfo, error) {
	file, _, _, err := c.api().GetFileInfoContext(ctx, fileID, 0, 0)
	if err != nil {
		if err.Error() == "file_not_found" || err.Error() == "file_deleted" {
			return nil, fmt.Errorf("file %s: %w", fileID, core.ErrNotFound)
		}
		return nil, err
	}

	downloadURL := file.URLPrivateDownload
	if downloadURL == "" {
		downloadURL = file.URLPrivate
	}

	return &clients.SlackFileInfo{
		ID:          file.ID,
		Mimetype:    file.Mimetype,
		DownloadURL: downloadURL,
	}, nil
}

// DownloadFile fetches the raw bytes behind an authenticated file URL
func (c *SlackClient) DownloadFile(ctx context.Context, downloadURL string) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.api().GetFileContext(ctx, downloadURL, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
