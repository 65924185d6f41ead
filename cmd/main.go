package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"slackgpt/clients"
	anthropicclient "slackgpt/clients/anthropic"
	openaiclient "slackgpt/clients/openai"
	slackclient "slackgpt/clients/slack"
	"slackgpt/config"
	"slackgpt/handlers"
	"slackgpt/middleware"
	"slackgpt/services/classifier"
	"slackgpt/services/conversation"
	"slackgpt/services/credentials"
	"slackgpt/services/dedup"
	"slackgpt/services/images"
	"slackgpt/usecases/dispatcher"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "slackgpt",
	})

	credentialStore := credentials.NewStore(cfg.SlackConfig.BotToken)
	slackAPI := slackclient.NewSlackClient(credentialStore)

	completionClient, err := buildCompletionClient(cfg)
	if err != nil {
		return err
	}

	// Resolve the bot's own identity so replayed history maps its prior
	// posts to assistant turns
	botUserID := ""
	authCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if authResp, err := slackAPI.AuthTest(authCtx); err != nil {
		log.Printf("⚠️ Slack auth test failed, history role mapping will rely on the bot flag only: %v", err)
	} else {
		botUserID = authResp.UserID
		log.Printf("✅ Authenticated as Slack user %s (team %s)", authResp.UserID, authResp.TeamID)
	}
	cancel()

	imagesService := images.NewImagesService(cfg.BotConfig.MaxImageSide)
	classifierService := classifier.NewClassifierService()
	assemblerService := conversation.NewAssemblerService(
		slackAPI,
		imagesService,
		cfg.BotConfig.Persona,
		cfg.BotConfig.Timezone,
		cfg.BotConfig.TextModel,
		cfg.BotConfig.VisionModel,
		cfg.BotConfig.Temperature,
		cfg.BotConfig.HistoryLimit,
		botUserID,
	)
	dedupService := dedup.NewDedupService(0)

	dispatcherUseCase := dispatcher.NewDispatcherUseCase(
		classifierService,
		assemblerService,
		completionClient,
		slackAPI,
	)

	router := mux.NewRouter()

	slackEventsHandler := handlers.NewSlackEventsHandler(cfg.SlackConfig.SigningSecret, dispatcherUseCase, dedupService)
	slackEventsHandler.SetupEndpoints(router)

	if cfg.SlackConfig.OAuthConfigured() {
		oauthHandler := handlers.NewSlackOAuthHandler(
			slackclient.NewSlackOAuthClient(),
			credentialStore,
			cfg.SlackConfig.ClientID,
			cfg.SlackConfig.ClientSecret,
		)
		oauthHandler.SetupEndpoints(router)
	}

	routesHandler := handlers.NewRoutesHandler(router)
	routesHandler.SetupEndpoints(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSAllowedOrigins},
		AllowedMethods: []string{"GET", "POST"},
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: alertMiddleware.HTTPMiddleware(corsHandler.Handler(router)),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("📋 Received signal %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Printf("✅ Server stopped cleanly")
	return nil
}

func buildCompletionClient(cfg *config.AppConfig) (clients.CompletionClient, error) {
	switch cfg.CompletionProvider {
	case "openai":
		if cfg.OpenAIConfig.BaseURL != "" {
			log.Printf("✅ Using OpenAI-compatible completion endpoint at %s", cfg.OpenAIConfig.BaseURL)
		}
		return openaiclient.NewOpenAIClient(cfg.OpenAIConfig.EffectiveKey(), cfg.OpenAIConfig.BaseURL), nil
	case "anthropic":
		return anthropicclient.NewAnthropicClient(cfg.AnthropicConfig.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.CompletionProvider)
	}
}
