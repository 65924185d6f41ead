package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slackgpt/models"
)

// MockEventDispatcher is a mock implementation of EventDispatcher
type MockEventDispatcher struct {
	mock.Mock
}

func (m *MockEventDispatcher) ProcessInboundEvent(
	ctx context.Context,
	event models.InboundEvent,
) (*models.DeliveryResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveryResult), args.Error(1)
}
