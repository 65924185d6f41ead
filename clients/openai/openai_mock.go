package openai

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slackgpt/models"
)

// MockCompletionClient is a mock implementation of clients.CompletionClient.
// It stands in for either completion backend in tests.
type MockCompletionClient struct {
	mock.Mock
}

func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{}
}

func (m *MockCompletionClient) CreateCompletion(
	ctx context.Context,
	req models.CompletionRequest,
) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// WithCompletionResponse configures the mock to return text for any request
func (m *MockCompletionClient) WithCompletionResponse(text string) *MockCompletionClient {
	m.On("CreateCompletion", mock.Anything, mock.Anything).Return(text, nil)
	return m
}
