package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"slackgpt/models"
	"slackgpt/services"
)

// EventDispatcher is the core pipeline behind the webhook boundary
type EventDispatcher interface {
	ProcessInboundEvent(ctx context.Context, event models.InboundEvent) (*models.DeliveryResult, error)
}

type SlackEventsHandler struct {
	signingSecret string
	dispatcher    EventDispatcher
	dedupService  services.EventDeduplicator
}

func NewSlackEventsHandler(
	signingSecret string,
	dispatcher EventDispatcher,
	dedupService services.EventDeduplicator,
) *SlackEventsHandler {
	return &SlackEventsHandler{
		signingSecret: signingSecret,
		dispatcher:    dispatcher,
		dedupService:  dedupService,
	}
}

// verifySlackSignature verifies the authenticity of a Slack webhook request
func (h *SlackEventsHandler) verifySlackSignature(r *http.Request, body []byte) error {
	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	signature := r.Header.Get("X-Slack-Signature")

	if timestamp == "" || signature == "" {
		return fmt.Errorf("missing required headers")
	}

	// Verify timestamp freshness (within 5 minutes)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp format: %v", err)
	}
	if time.Now().Unix()-ts > 300 {
		return fmt.Errorf("request timestamp too old")
	}

	// Signature base string: v0:timestamp:body
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, string(body))

	mac := hmac.New(sha256.New, []byte(h.signingSecret))
	mac.Write([]byte(baseString))
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

func (h *SlackEventsHandler) HandleSlackEvent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Slack event received from %s", r.RemoteAddr)

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if h.signingSecret != "" {
		if err := h.verifySlackSignature(r, bodyBytes); err != nil {
			log.Printf("❌ Slack signature verification failed: %v", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	// A redelivery attempt must be acknowledged without reprocessing, and
	// the platform is told not to keep retrying
	if retryNum := r.Header.Get("X-Slack-Retry-Num"); retryNum != "" {
		log.Printf("⏭️ Ignoring Slack retry delivery (attempt %s)", retryNum)
		w.Header().Set("X-Slack-No-Retry", "1")
		w.WriteHeader(http.StatusOK)
		return
	}

	var body map[string]any
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		log.Printf("❌ Failed to parse JSON body: %v", err)
		http.Error(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	// Initial handshake: echo the challenge token verbatim
	if challenge, ok := body["challenge"].(string); ok {
		log.Printf("🔐 Responding to Slack URL verification challenge")
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte(challenge)); err != nil {
			log.Printf("❌ Failed to write challenge response: %v", err)
		}
		return
	}

	if body["type"] != "event_callback" {
		log.Printf("📋 Non-event callback received: %v", body["type"])
		w.WriteHeader(http.StatusOK)
		return
	}

	eventID, _ := body["event_id"].(string)
	if !h.dedupService.CheckAndRecord(eventID) {
		log.Printf("⏭️ Ignoring already-processed event %s", eventID)
		w.Header().Set("X-Slack-No-Retry", "1")
		w.WriteHeader(http.StatusOK)
		return
	}

	rawEvent, ok := body["event"].(map[string]any)
	if !ok {
		log.Printf("❌ Event payload missing in event callback")
		w.WriteHeader(http.StatusOK)
		return
	}

	event := decodeInboundEvent(rawEvent, eventID)
	log.Printf("📞 Event callback received - kind: %s, channel: %s, sender: %s",
		event.Kind, event.ChannelID, event.SenderID)

	// Downstream failures never change the acknowledgment: a non-success
	// response would make the platform redeliver the event
	if _, err := h.dispatcher.ProcessInboundEvent(r.Context(), event); err != nil {
		log.Printf("❌ Failed to process event %s: %v", eventID, err)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackEventsHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering Slack webhook endpoints")

	router.HandleFunc("/slack/events", h.HandleSlackEvent).Methods("POST")
	log.Printf("✅ POST /slack/events endpoint registered")
}

// decodeInboundEvent maps a raw Slack event object onto the data model the
// classifier consumes
func decodeInboundEvent(raw map[string]any, eventID string) models.InboundEvent {
	getString := func(key string) string {
		value, _ := raw[key].(string)
		return value
	}

	event := models.InboundEvent{
		SenderID:     getString("user"),
		Text:         getString("text"),
		RawTimestamp: getString("ts"),
		EventID:      eventID,
	}

	switch getString("type") {
	case "message":
		event.Kind = models.EventKindMessage
		event.ChannelID = getString("channel")
		event.Attachments = decodeFileAttachments(raw)
	case "file_shared":
		event.Kind = models.EventKindFileShared
		event.ChannelID = getString("channel_id")
		if event.ChannelID == "" {
			event.ChannelID = getString("channel")
		}
		if fileID := getString("file_id"); fileID != "" {
			event.Attachments = []models.AttachmentRef{{ID: fileID, Kind: models.AttachmentKindUnknown}}
		}
	default:
		event.Kind = models.EventKindOther
	}

	// Replies from automated actors (including this service's own posts)
	// carry a bot_id or the bot_message subtype
	if getString("bot_id") != "" || getString("subtype") == "bot_message" {
		event.IsFromBot = true
	}

	return event
}

func decodeFileAttachments(raw map[string]any) []models.AttachmentRef {
	files, ok := raw["files"].([]any)
	if !ok {
		return nil
	}

	var attachments []models.AttachmentRef
	for _, entry := range files {
		file, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := file["id"].(string)
		if id == "" {
			continue
		}
		mimetype, _ := file["mimetype"].(string)
		kind := models.AttachmentKindUnknown
		if strings.HasPrefix(mimetype, "image/") {
			kind = models.AttachmentKindImage
		}
		attachments = append(attachments, models.AttachmentRef{ID: id, Kind: kind})
	}
	return attachments
}
