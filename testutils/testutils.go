package testutils

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"slackgpt/clients"
	"slackgpt/models"
)

// NewTestMessageEvent creates a plain text message event with unique IDs
func NewTestMessageEvent(channelID, senderID, text string) models.InboundEvent {
	return models.InboundEvent{
		Kind:         models.EventKindMessage,
		ChannelID:    channelID,
		SenderID:     senderID,
		Text:         text,
		RawTimestamp: "1700000001.000100",
		EventID:      "Ev" + uuid.New().String(),
	}
}

// NewTestImageEvent creates a message event carrying one image attachment
func NewTestImageEvent(channelID, senderID, text string) models.InboundEvent {
	event := NewTestMessageEvent(channelID, senderID, text)
	event.Attachments = []models.AttachmentRef{
		{ID: "F" + uuid.New().String()[:8], Kind: models.AttachmentKindImage},
	}
	return event
}

// NewTestHistory builds a newest-first history snapshot alternating between
// a human sender and the bot, the way the platform returns it
func NewTestHistory(humanID, botID string, count int) []clients.SlackHistoryMessage {
	messages := make([]clients.SlackHistoryMessage, 0, count)
	for i := count - 1; i >= 0; i-- {
		msg := clients.SlackHistoryMessage{
			SenderID:  humanID,
			Text:      fmt.Sprintf("message %d", i),
			Timestamp: fmt.Sprintf("1700000000.%06d", i),
		}
		if i%2 == 1 {
			msg.SenderID = botID
			msg.IsBot = true
		}
		messages = append(messages, msg)
	}
	return messages
}

// EncodeTestPNG produces valid PNG bytes with the given dimensions
func EncodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}
