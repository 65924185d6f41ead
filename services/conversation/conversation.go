package conversation

import (
	"context"
	"fmt"
	"log"
	"time"

	"slackgpt/clients"
	"slackgpt/models"
	"slackgpt/services/images"
)

// Timestamp layout matching the platform-local time embedded in the
// persona turn (ISO 8601 with second precision)
const localTimeLayout = "2006-01-02T15:04:05-07:00"

// AssemblerService builds completion requests from classified events.
// Text requests carry a System persona turn, recent channel history mapped
// to typed turns, and the current user turn last. Vision requests are a
// single user turn with the prompt and a re-encoded image.
type AssemblerService struct {
	slackClient   clients.SlackClient
	imagesService *images.ImagesService

	persona      string
	location     *time.Location
	textModel    string
	visionModel  string
	temperature  float64
	historyLimit int
	botUserID    string
	now          func() time.Time
}

func NewAssemblerService(
	slackClient clients.SlackClient,
	imagesService *images.ImagesService,
	persona, timezone, textModel, visionModel string,
	temperature float64,
	historyLimit int,
	botUserID string,
) *AssemblerService {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("⚠️ Unknown timezone %q, falling back to UTC: %v", timezone, err)
		location = time.UTC
	}

	return &AssemblerService{
		slackClient:   slackClient,
		imagesService: imagesService,
		persona:       persona,
		location:      location,
		textModel:     textModel,
		visionModel:   visionModel,
		temperature:   temperature,
		historyLimit:  historyLimit,
		botUserID:     botUserID,
		now:           time.Now,
	}
}

// AssembleTextRequest builds the request for a text reply. History
// retrieval failure degrades to a single-turn request; it never blocks the
// reply.
func (s *AssemblerService) AssembleTextRequest(
	ctx context.Context,
	event models.InboundEvent,
	prompt string,
) models.CompletionRequest {
	log.Printf("📋 Starting to assemble text request for channel: %s", event.ChannelID)

	turns := []models.ConversationTurn{s.systemTurn()}

	if s.historyLimit > 0 {
		history, err := s.slackClient.GetConversationHistory(ctx, event.ChannelID, s.historyLimit)
		if err != nil {
			log.Printf("⚠️ History fetch failed for channel %s, degrading to single-turn request: %v",
				event.ChannelID, err)
		} else {
			turns = append(turns, s.historyTurns(history, event.RawTimestamp)...)
		}
	}

	turns = append(turns, models.ConversationTurn{
		Role:    models.TurnRoleUser,
		Content: prompt,
	})

	log.Printf("📋 Completed successfully - assembled text request with %d turns", len(turns))
	return models.CompletionRequest{
		Model:       s.textModel,
		Turns:       turns,
		Temperature: s.temperature,
	}
}

// AssembleImageRequest downloads the attachment, re-encodes it within the
// configured size bound and builds a single-turn vision request. No System
// turn or history is attached to vision requests.
func (s *AssemblerService) AssembleImageRequest(
	ctx context.Context,
	event models.InboundEvent,
	attachment models.AttachmentRef,
	prompt string,
) (models.CompletionRequest, error) {
	log.Printf("📋 Starting to assemble image request for file: %s", attachment.ID)

	fileInfo, err := s.slackClient.GetFileInfo(ctx, attachment.ID)
	if err != nil {
		return models.CompletionRequest{}, fmt.Errorf("failed to resolve file info for %s: %w", attachment.ID, err)
	}
	if !fileInfo.IsImage() {
		return models.CompletionRequest{}, fmt.Errorf("file %s is not an image (%s)", attachment.ID, fileInfo.Mimetype)
	}

	data, err := s.slackClient.DownloadFile(ctx, fileInfo.DownloadURL)
	if err != nil {
		return models.CompletionRequest{}, fmt.Errorf("failed to download file %s: %w", attachment.ID, err)
	}

	dataURI, err := s.imagesService.ReencodeAsDataURI(data)
	if err != nil {
		return models.CompletionRequest{}, fmt.Errorf("failed to re-encode file %s: %w", attachment.ID, err)
	}

	log.Printf("📋 Completed successfully - assembled image request for file: %s", attachment.ID)
	return models.CompletionRequest{
		Model:       s.visionModel,
		Temperature: s.temperature,
		Turns: []models.ConversationTurn{{
			Role:      models.TurnRoleUser,
			Content:   prompt,
			ImageData: dataURI,
		}},
	}, nil
}

func (s *AssemblerService) systemTurn() models.ConversationTurn {
	localTime := s.now().In(s.location).Format(localTimeLayout)
	return models.ConversationTurn{
		Role:    models.TurnRoleSystem,
		Content: fmt.Sprintf("%s 現在的時間是 %s.", s.persona, localTime),
	}
}

// historyTurns maps platform history onto typed turns, oldest first. The
// triggering message and entries without extractable text are skipped.
// Replies posted by this service carry only the bot flag, no user ID.
func (s *AssemblerService) historyTurns(
	history []clients.SlackHistoryMessage,
	currentTS string,
) []models.ConversationTurn {
	// Platform history arrives newest first
	turns := make([]models.ConversationTurn, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Text == "" {
			continue
		}
		if currentTS != "" && msg.Timestamp == currentTS {
			continue
		}

		role := models.TurnRoleUser
		if msg.SenderID == s.botUserID || (msg.SenderID == "" && msg.IsBot) {
			role = models.TurnRoleAssistant
		}

		turns = append(turns, models.ConversationTurn{
			Role:    role,
			Content: msg.Text,
		})
	}
	return turns
}
