package slack

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"slackgpt/clients"
)

// MockSlackClient is a mock implementation of clients.SlackClient
type MockSlackClient struct {
	mock.Mock
}

func NewMockSlackClient() *MockSlackClient {
	return &MockSlackClient{}
}

func (m *MockSlackClient) PostMessage(ctx context.Context, channelID, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}

func (m *MockSlackClient) GetConversationHistory(
	ctx context.Context,
	channelID string,
	limit int,
) ([]clients.SlackHistoryMessage, error) {
	args := m.Called(ctx, channelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.SlackHistoryMessage), args.Error(1)
}

func (m *MockSlackClient) GetFileInfo(ctx context.Context, fileID string) (*clients.SlackFileInfo, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.SlackFileInfo), args.Error(1)
}

func (m *MockSlackClient) DownloadFile(ctx context.Context, downloadURL string) ([]byte, error) {
	args := m.Called(ctx, downloadURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSlackClient) AuthTest(ctx context.Context) (*clients.SlackAuthTestResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.SlackAuthTestResponse), args.Error(1)
}

// MockSlackOAuthClient is a mock implementation of clients.SlackOAuthClient
type MockSlackOAuthClient struct {
	mock.Mock
}

func NewMockSlackOAuthClient() *MockSlackOAuthClient {
	return &MockSlackOAuthClient{}
}

func (m *MockSlackOAuthClient) GetOAuthV2Response(
	httpClient *http.Client,
	clientID, clientSecret, code, redirectURL string,
) (*clients.OAuthV2Response, error) {
	args := m.Called(httpClient, clientID, clientSecret, code, redirectURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.OAuthV2Response), args.Error(1)
}
