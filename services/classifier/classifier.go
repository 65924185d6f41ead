package classifier

import (
	"log"

	"github.com/samber/mo"

	"slackgpt/models"
)

// ClassifierService decides what an inbound event means. Rules are applied
// in order: bot-authored events are ignored to break reply loops, an image
// attachment wins over simultaneous text, then plain text, then ignore.
type ClassifierService struct{}

func NewClassifierService() *ClassifierService {
	return &ClassifierService{}
}

func (s *ClassifierService) Classify(event models.InboundEvent) models.Classification {
	if event.IsFromBot {
		log.Printf("⏭️ Ignoring bot-authored event from %s", event.SenderID)
		return models.Classification{Action: models.ActionIgnore}
	}

	switch event.Kind {
	case models.EventKindFileShared:
		// File-shared events without a channel or attachment reference are
		// malformed and cannot be answered anywhere
		if event.ChannelID == "" || len(event.Attachments) == 0 {
			log.Printf("⏭️ Ignoring malformed file-shared event (channel: %q, attachments: %d)",
				event.ChannelID, len(event.Attachments))
			return models.Classification{Action: models.ActionIgnore}
		}
		return models.Classification{
			Action:     models.ActionImageReply,
			Prompt:     event.Text,
			Attachment: mo.Some(event.Attachments[0]),
		}

	case models.EventKindMessage:
		if event.ChannelID == "" {
			return models.Classification{Action: models.ActionIgnore}
		}
		if att, ok := event.FirstImageAttachment(); ok {
			return models.Classification{
				Action:     models.ActionImageReply,
				Prompt:     event.Text,
				Attachment: mo.Some(att),
			}
		}
		if event.Text != "" {
			return models.Classification{
				Action: models.ActionTextReply,
				Prompt: event.Text,
			}
		}
		return models.Classification{Action: models.ActionIgnore}

	default:
		return models.Classification{Action: models.ActionIgnore}
	}
}
