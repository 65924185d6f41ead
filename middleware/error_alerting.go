package middleware

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
}

// ErrorAlertMiddleware recovers panics on the HTTP surface and pushes
// deduplicated error alerts to a Slack webhook when one is configured
type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration // prevent spam
}

func NewErrorAlertMiddleware(config SlackAlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute,
	}
}

// HTTPMiddleware wraps HTTP handlers with panic recovery and alerting
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer m.recoverAndAlert(fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

// AlertOnError reports a non-panic error through the same alerting path
func (m *ErrorAlertMiddleware) AlertOnError(err error, context string) {
	errorMsg := fmt.Sprintf("%s: %v", context, err)

	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists {
		if time.Since(lastAlert) < m.alertCooldown {
			return // same error alerted too recently
		}
	}

	go m.sendSlackAlert(errorMsg, context)
	m.alertedErrors[hash] = time.Now()
}

func (m *ErrorAlertMiddleware) recoverAndAlert(context string) {
	if r := recover(); r != nil {
		errorMsg := fmt.Sprintf("%s: PANIC - %v", context, r)
		log.Printf("❌ %s", errorMsg)
		go m.sendSlackAlert(errorMsg, context+" (PANIC)")
	}
}

func (m *ErrorAlertMiddleware) sendSlackAlert(errorMsg, context string) {
	if m.config.WebhookURL == "" {
		return // alerts disabled
	}

	envTag := ""
	if m.config.Environment != "" {
		envTag = fmt.Sprintf("[%s] ", m.config.Environment)
	}

	payload := map[string]any{
		"blocks": []map[string]any{
			{
				"type": "header",
				"text": map[string]any{
					"type":  "plain_text",
					"text":  fmt.Sprintf("🚨 %s%s Error Alert", envTag, m.config.AppName),
					"emoji": true,
				},
			},
			{
				"type": "section",
				"fields": []map[string]any{
					{"type": "mrkdwn", "text": fmt.Sprintf("*Service:* %s", m.config.AppName)},
					{"type": "mrkdwn", "text": fmt.Sprintf("*Context:* %s", context)},
				},
			},
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Error:*\n```%s```", errorMsg),
				},
			},
		},
	}

	payloadBytes, _ := json.Marshal(payload)

	resp, err := http.Post(m.config.WebhookURL, "application/json",
		strings.NewReader(string(payloadBytes)))
	if err != nil {
		log.Printf("❌ Failed to send Slack alert: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Slack alert failed with status: %d", resp.StatusCode)
	}
}
