package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"slackgpt/clients"
	"slackgpt/services/credentials"
)

// SlackOAuthHandler completes the OAuth v2 flow and swaps the bot token in
// the credential store for the lifetime of the process
type SlackOAuthHandler struct {
	oauthClient  clients.SlackOAuthClient
	credentials  *credentials.Store
	clientID     string
	clientSecret string
}

func NewSlackOAuthHandler(
	oauthClient clients.SlackOAuthClient,
	credentialStore *credentials.Store,
	clientID, clientSecret string,
) *SlackOAuthHandler {
	return &SlackOAuthHandler{
		oauthClient:  oauthClient,
		credentials:  credentialStore,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (h *SlackOAuthHandler) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Slack OAuth callback received from %s", r.RemoteAddr)

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Printf("❌ OAuth callback missing authorization code")
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}

	response, err := h.oauthClient.GetOAuthV2Response(http.DefaultClient, h.clientID, h.clientSecret, code, "")
	if err != nil {
		log.Printf("❌ OAuth code exchange failed: %v", err)
		http.Error(w, "oauth exchange failed", http.StatusBadGateway)
		return
	}

	h.credentials.UpdateBotToken(response.AccessToken)
	log.Printf("✅ OAuth flow completed for team %s (%s)", response.TeamName, response.TeamID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"message":"OAuth flow completed"}`)); err != nil {
		log.Printf("❌ Failed to write OAuth response: %v", err)
	}
}

func (h *SlackOAuthHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/slack/oauth/callback", h.HandleOAuthCallback).Methods("GET")
	log.Printf("✅ GET /slack/oauth/callback endpoint registered")
}
