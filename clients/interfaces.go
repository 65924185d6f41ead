package clients

import (
	"context"
	"net/http"

	"slackgpt/models"
)

// TokenSource provides the current Slack bot token. The OAuth callback can
// swap the token at runtime, so clients read it per call instead of
// capturing it at construction time.
type TokenSource interface {
	BotToken() string
}

// SlackClient is the messaging-platform client consumed by the dispatcher
// and the context assembler
type SlackClient interface {
	// PostMessage sends a text message to a channel
	PostMessage(ctx context.Context, channelID, text string) error
	// GetConversationHistory returns up to limit recent messages for a
	// channel, newest first (the platform's native ordering)
	GetConversationHistory(ctx context.Context, channelID string, limit int) ([]SlackHistoryMessage, error)
	// GetFileInfo resolves a file ID to its metadata and download URL
	GetFileInfo(ctx context.Context, fileID string) (*SlackFileInfo, error)
	// DownloadFile fetches the raw bytes behind an authenticated file URL
	DownloadFile(ctx context.Context, downloadURL string) ([]byte, error)
	// AuthTest verifies the bot token and returns the bot's own identity
	AuthTest(ctx context.Context) (*SlackAuthTestResponse, error)
}

// SlackOAuthClient exchanges OAuth authorization codes for access tokens
type SlackOAuthClient interface {
	GetOAuthV2Response(httpClient *http.Client, clientID, clientSecret, code, redirectURL string) (*OAuthV2Response, error)
}

// CompletionClient is the completion-provider contract. Implementations
// must map transport errors, non-success statuses, unparseable bodies and
// empty choice lists to a returned error, never a panic.
type CompletionClient interface {
	CreateCompletion(ctx context.Context, req models.CompletionRequest) (string, error)
}
