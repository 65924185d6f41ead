package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slackgpt/models"
)

// MockEventClassifier is a mock implementation of EventClassifier
type MockEventClassifier struct {
	mock.Mock
}

func (m *MockEventClassifier) Classify(event models.InboundEvent) models.Classification {
	args := m.Called(event)
	return args.Get(0).(models.Classification)
}

// MockConversationAssembler is a mock implementation of ConversationAssembler
type MockConversationAssembler struct {
	mock.Mock
}

func (m *MockConversationAssembler) AssembleTextRequest(
	ctx context.Context,
	event models.InboundEvent,
	prompt string,
) models.CompletionRequest {
	args := m.Called(ctx, event, prompt)
	return args.Get(0).(models.CompletionRequest)
}

func (m *MockConversationAssembler) AssembleImageRequest(
	ctx context.Context,
	event models.InboundEvent,
	attachment models.AttachmentRef,
	prompt string,
) (models.CompletionRequest, error) {
	args := m.Called(ctx, event, attachment, prompt)
	return args.Get(0).(models.CompletionRequest), args.Error(1)
}

// MockEventDeduplicator is a mock implementation of EventDeduplicator
type MockEventDeduplicator struct {
	mock.Mock
}

func (m *MockEventDeduplicator) CheckAndRecord(eventID string) bool {
	args := m.Called(eventID)
	return args.Bool(0)
}
