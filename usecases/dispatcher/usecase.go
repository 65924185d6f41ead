package dispatcher

import (
	"context"
	"log"

	"slackgpt/clients"
	"slackgpt/core"
	"slackgpt/models"
	"slackgpt/services"
	"slackgpt/utils"
)

// Reply delivered in place of a completion when the provider fails
const providerFailureReply = "抱歉，我現在無法回應，請稍後再試。(The assistant is temporarily unavailable.)"

// DispatcherUseCase drives a single event through
// classify → assemble → complete → deliver. It owns no state; every
// invocation is independent and failures are terminal per event.
type DispatcherUseCase struct {
	classifier       services.EventClassifier
	assembler        services.ConversationAssembler
	completionClient clients.CompletionClient
	slackClient      clients.SlackClient
}

func NewDispatcherUseCase(
	classifier services.EventClassifier,
	assembler services.ConversationAssembler,
	completionClient clients.CompletionClient,
	slackClient clients.SlackClient,
) *DispatcherUseCase {
	return &DispatcherUseCase{
		classifier:       classifier,
		assembler:        assembler,
		completionClient: completionClient,
		slackClient:      slackClient,
	}
}

// ProcessInboundEvent handles one decoded, deduplicated event. The returned
// result is for observability only; the error return is reserved for
// programming faults, so downstream failures never bubble up to the
// webhook acknowledgment.
func (u *DispatcherUseCase) ProcessInboundEvent(
	ctx context.Context,
	event models.InboundEvent,
) (*models.DeliveryResult, error) {
	result := &models.DeliveryResult{ID: core.NewID("dl")}

	classification := u.classifier.Classify(event)
	if classification.Action == models.ActionIgnore {
		result.Outcome = models.DeliveryOutcomeIgnored
		return result, nil
	}

	var request models.CompletionRequest
	switch classification.Action {
	case models.ActionTextReply:
		request = u.assembler.AssembleTextRequest(ctx, event, classification.Prompt)
	case models.ActionImageReply:
		attachment, ok := classification.Attachment.Get()
		if !ok {
			result.Outcome = models.DeliveryOutcomeIgnored
			return result, nil
		}
		assembled, err := u.assembler.AssembleImageRequest(ctx, event, attachment, classification.Prompt)
		if err != nil {
			if core.IsNotFoundError(err) {
				log.Printf("⏭️ Attachment no longer exists, skipping reply: %v", err)
			} else {
				log.Printf("❌ Failed to assemble image request: %v", err)
			}
			result.Outcome = models.DeliveryOutcomeFailed
			result.Failure = models.FailureKindFetch
			return result, nil
		}
		request = assembled
	}

	reply, err := u.completionClient.CreateCompletion(ctx, request)
	if err != nil {
		log.Printf("❌ Completion provider call failed: %v", err)
		result.Failure = models.FailureKindProvider
		reply = providerFailureReply
	}
	result.ReplyText = reply

	if err := u.slackClient.PostMessage(ctx, event.ChannelID, utils.ConvertMarkdownToSlack(reply)); err != nil {
		// Delivery failures are logged and swallowed so the webhook is
		// still acknowledged and the platform does not redeliver
		log.Printf("❌ Failed to deliver reply to channel %s: %v", event.ChannelID, err)
		result.Outcome = models.DeliveryOutcomeFailed
		result.Failure = models.FailureKindDelivery
		return result, nil
	}

	if result.Failure == models.FailureKindProvider {
		result.Outcome = models.DeliveryOutcomeFailed
	} else {
		result.Outcome = models.DeliveryOutcomeDelivered
	}
	log.Printf("✅ Event handled for channel %s (outcome: %s)", event.ChannelID, result.Outcome)
	return result, nil
}
