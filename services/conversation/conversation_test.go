package conversation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slackgpt/clients"
	slackclient "slackgpt/clients/slack"
	"slackgpt/models"
	"slackgpt/services/images"
	"slackgpt/testutils"
)

const testBotUserID = "UBOT"

func setupAssembler(t *testing.T) (*AssemblerService, *slackclient.MockSlackClient) {
	t.Helper()

	mockSlack := slackclient.NewMockSlackClient()
	service := NewAssemblerService(
		mockSlack,
		images.NewImagesService(300),
		"You are a helpful assistant.",
		"Asia/Hong_Kong",
		"gpt-4-1106-preview",
		"gpt-4-vision-preview",
		0.7,
		4,
		testBotUserID,
	)
	service.now = func() time.Time {
		return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	return service, mockSlack
}

func TestAssembleTextRequest(t *testing.T) {
	t.Run("SystemFirstUserLast", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		event := testutils.NewTestMessageEvent("C1", "U1", "hello")

		mockSlack.On("GetConversationHistory", mock.Anything, "C1", 4).
			Return([]clients.SlackHistoryMessage{}, nil)

		request := service.AssembleTextRequest(context.Background(), event, "hello")

		require.Len(t, request.Turns, 2)
		assert.Equal(t, models.TurnRoleSystem, request.Turns[0].Role)
		assert.Contains(t, request.Turns[0].Content, "You are a helpful assistant.")
		assert.Contains(t, request.Turns[0].Content, "2024-01-15T20:00:00+08:00")
		assert.Equal(t, models.TurnRoleUser, request.Turns[1].Role)
		assert.Equal(t, "hello", request.Turns[1].Content)
		assert.Equal(t, "gpt-4-1106-preview", request.Model)
		assert.InDelta(t, 0.7, request.Temperature, 0.0001)
	})

	t.Run("MapsHistoryRolesAndOrder", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		event := testutils.NewTestMessageEvent("C1", "U1", "and now?")

		// Newest first, as the platform returns it
		history := []clients.SlackHistoryMessage{
			{SenderID: "", IsBot: true, Text: "answer two", Timestamp: "3.0"},
			{SenderID: "U2", Text: "question two", Timestamp: "2.0"},
			{SenderID: testBotUserID, Text: "answer one", Timestamp: "1.5"},
			{SenderID: "U1", Text: "question one", Timestamp: "1.0"},
		}
		mockSlack.On("GetConversationHistory", mock.Anything, "C1", 4).
			Return(history, nil)

		request := service.AssembleTextRequest(context.Background(), event, "and now?")

		require.Len(t, request.Turns, 6)
		assert.Equal(t, models.TurnRoleSystem, request.Turns[0].Role)
		assert.Equal(t, models.TurnRoleUser, request.Turns[1].Role)
		assert.Equal(t, "question one", request.Turns[1].Content)
		assert.Equal(t, models.TurnRoleAssistant, request.Turns[2].Role)
		assert.Equal(t, "answer one", request.Turns[2].Content)
		assert.Equal(t, models.TurnRoleUser, request.Turns[3].Role)
		assert.Equal(t, "question two", request.Turns[3].Content)
		assert.Equal(t, models.TurnRoleAssistant, request.Turns[4].Role)
		assert.Equal(t, "answer two", request.Turns[4].Content)
		assert.Equal(t, models.TurnRoleUser, request.Turns[5].Role)
		assert.Equal(t, "and now?", request.Turns[5].Content)
	})

	t.Run("SkipsCurrentMessageAndEmptyText", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		event := testutils.NewTestMessageEvent("C1", "U1", "latest")

		history := []clients.SlackHistoryMessage{
			{SenderID: "U1", Text: "latest", Timestamp: event.RawTimestamp},
			{SenderID: "U2", Text: "", Timestamp: "2.0"},
			{SenderID: "U2", Text: "earlier", Timestamp: "1.0"},
		}
		mockSlack.On("GetConversationHistory", mock.Anything, "C1", 4).
			Return(history, nil)

		request := service.AssembleTextRequest(context.Background(), event, "latest")

		require.Len(t, request.Turns, 3)
		assert.Equal(t, "earlier", request.Turns[1].Content)
		assert.Equal(t, "latest", request.Turns[2].Content)
	})

	t.Run("HistoryFailureDegradesToSingleTurn", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		event := testutils.NewTestMessageEvent("C1", "U1", "hello")

		mockSlack.On("GetConversationHistory", mock.Anything, "C1", 4).
			Return(nil, fmt.Errorf("channel_not_found"))

		request := service.AssembleTextRequest(context.Background(), event, "hello")

		require.Len(t, request.Turns, 2)
		assert.Equal(t, models.TurnRoleSystem, request.Turns[0].Role)
		assert.Equal(t, models.TurnRoleUser, request.Turns[1].Role)
	})

	t.Run("IdempotentForSameSnapshot", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		event := testutils.NewTestMessageEvent("C1", "U1", "hello")

		history := testutils.NewTestHistory("U1", testBotUserID, 4)
		mockSlack.On("GetConversationHistory", mock.Anything, "C1", 4).
			Return(history, nil)

		first := service.AssembleTextRequest(context.Background(), event, "hello")
		second := service.AssembleTextRequest(context.Background(), event, "hello")

		assert.Equal(t, first, second)
	})

	t.Run("ZeroHistoryLimitSkipsFetch", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		service.historyLimit = 0
		event := testutils.NewTestMessageEvent("C1", "U1", "hello")

		request := service.AssembleTextRequest(context.Background(), event, "hello")

		require.Len(t, request.Turns, 2)
		mockSlack.AssertNotCalled(t, "GetConversationHistory", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAssembleImageRequest(t *testing.T) {
	attachment := models.AttachmentRef{ID: "F123", Kind: models.AttachmentKindImage}

	t.Run("BuildsSingleVisionTurn", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		event := testutils.NewTestImageEvent("C1", "U1", "what is this")

		mockSlack.On("GetFileInfo", mock.Anything, "F123").
			Return(&clients.SlackFileInfo{ID: "F123", Mimetype: "image/png", DownloadURL: "https://files/F123"}, nil)
		mockSlack.On("DownloadFile", mock.Anything, "https://files/F123").
			Return(testutils.EncodeTestPNG(t, 640, 480), nil)

		request, err := service.AssembleImageRequest(context.Background(), event, attachment, "what is this")

		require.NoError(t, err)
		assert.Equal(t, "gpt-4-vision-preview", request.Model)
		require.Len(t, request.Turns, 1)
		turn := request.Turns[0]
		assert.Equal(t, models.TurnRoleUser, turn.Role)
		assert.Equal(t, "what is this", turn.Content)
		assert.True(t, turn.HasImage())
		assert.Contains(t, turn.ImageData, "data:image/jpeg;base64,")
	})

	t.Run("RejectsNonImageFile", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		event := testutils.NewTestImageEvent("C1", "U1", "what is this")

		mockSlack.On("GetFileInfo", mock.Anything, "F123").
			Return(&clients.SlackFileInfo{ID: "F123", Mimetype: "application/pdf", DownloadURL: "https://files/F123"}, nil)

		_, err := service.AssembleImageRequest(context.Background(), event, attachment, "what is this")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not an image")
		mockSlack.AssertNotCalled(t, "DownloadFile", mock.Anything, mock.Anything)
	})

	t.Run("PropagatesDownloadFailure", func(t *testing.T) {
		service, mockSlack := setupAssembler(t)
		event := testutils.NewTestImageEvent("C1", "U1", "what is this")

		mockSlack.On("GetFileInfo", mock.Anything, "F123").
			Return(&clients.SlackFileInfo{ID: "F123", Mimetype: "image/jpeg", DownloadURL: "https://files/F123"}, nil)
		mockSlack.On("DownloadFile", mock.Anything, "https://files/F123").
			Return(nil, fmt.Errorf("connection reset"))

		_, err := service.AssembleImageRequest(context.Background(), event, attachment, "what is this")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to download")
	})
}
