package services

import (
	"context"

	"slackgpt/models"
)

// EventClassifier decides what an inbound event means
type EventClassifier interface {
	Classify(event models.InboundEvent) models.Classification
}

// ConversationAssembler builds completion requests from events.
// AssembleTextRequest never fails: when history retrieval breaks it
// degrades to a single-turn request. AssembleImageRequest fails when the
// attachment cannot be fetched or decoded.
type ConversationAssembler interface {
	AssembleTextRequest(ctx context.Context, event models.InboundEvent, prompt string) models.CompletionRequest
	AssembleImageRequest(
		ctx context.Context,
		event models.InboundEvent,
		attachment models.AttachmentRef,
		prompt string,
	) (models.CompletionRequest, error)
}

// EventDeduplicator tracks processed platform event IDs so redelivered
// webhooks are acknowledged without reprocessing
type EventDeduplicator interface {
	CheckAndRecord(eventID string) bool
}
