package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type SlackConfig struct {
	BotToken      string
	SigningSecret string
	ClientID      string
	ClientSecret  string
}

// IsConfigured returns true if all required Slack configuration is present
func (c SlackConfig) IsConfigured() bool {
	return c.BotToken != ""
	// Note: SigningSecret, ClientID and ClientSecret are optional
}

// OAuthConfigured returns true if the OAuth callback can exchange codes
func (c SlackConfig) OAuthConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type OpenAIConfig struct {
	APIKey   string
	BaseURL  string // optional reverse-proxy completion endpoint
	ProxyKey string // key used when BaseURL points at a proxy
}

// IsConfigured returns true if all required OpenAI configuration is present
func (c OpenAIConfig) IsConfigured() bool {
	return c.APIKey != "" || (c.BaseURL != "" && c.ProxyKey != "")
}

// EffectiveKey returns the proxy key when a proxy endpoint is set
func (c OpenAIConfig) EffectiveKey() string {
	if c.BaseURL != "" && c.ProxyKey != "" {
		return c.ProxyKey
	}
	return c.APIKey
}

type AnthropicConfig struct {
	APIKey string
}

// IsConfigured returns true if all required Anthropic configuration is present
func (c AnthropicConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type BotConfig struct {
	Persona      string
	Timezone     string
	TextModel    string
	VisionModel  string
	Temperature  float64
	HistoryLimit int
	MaxImageSide int
}

type AppConfig struct {
	Port               string // Optional with default "8080"
	Environment        string
	CORSAllowedOrigins string
	CompletionProvider string // "openai" or "anthropic"
	AlertWebhookURL    string

	SlackConfig     SlackConfig
	OpenAIConfig    OpenAIConfig
	AnthropicConfig AnthropicConfig
	BotConfig       BotConfig
}

const (
	defaultPersona      = "你是GPT4，你是一個機能理解和模仿人類情緒的虛擬助手。"
	defaultTextModel    = "gpt-4-1106-preview"
	defaultVisionModel  = "gpt-4-vision-preview"
	defaultTimezone     = "Asia/Hong_Kong"
	defaultHistoryLimit = 6
	defaultMaxImageSide = 300
)

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	config := &AppConfig{
		Port:               getEnvWithDefault("PORT", "8080"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		CompletionProvider: getEnvWithDefault("COMPLETION_PROVIDER", "openai"),
		AlertWebhookURL:    os.Getenv("SLACK_ALERT_WEBHOOK_URL"),

		SlackConfig: SlackConfig{
			BotToken:      os.Getenv("SLACK_BOT_TOKEN"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
			ClientID:      os.Getenv("SLACK_CLIENT_ID"),
			ClientSecret:  os.Getenv("SLACK_CLIENT_SECRET"),
		},

		OpenAIConfig: OpenAIConfig{
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			BaseURL:  os.Getenv("OPENAI_BASE_URL"),
			ProxyKey: os.Getenv("OPENAI_PROXY_KEY"),
		},

		AnthropicConfig: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
		},

		BotConfig: BotConfig{
			Persona:      getEnvWithDefault("BOT_PERSONA", defaultPersona),
			Timezone:     getEnvWithDefault("BOT_TIMEZONE", defaultTimezone),
			TextModel:    getEnvWithDefault("TEXT_MODEL", defaultTextModel),
			VisionModel:  getEnvWithDefault("VISION_MODEL", defaultVisionModel),
			Temperature:  getEnvFloatWithDefault("TEMPERATURE", 0.7),
			HistoryLimit: getEnvIntWithDefault("HISTORY_LIMIT", defaultHistoryLimit),
			MaxImageSide: getEnvIntWithDefault("MAX_IMAGE_SIDE", defaultMaxImageSide),
		},
	}

	if !config.SlackConfig.IsConfigured() {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is not set")
	}

	switch config.CompletionProvider {
	case "openai":
		if !config.OpenAIConfig.IsConfigured() {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set (or OPENAI_BASE_URL+OPENAI_PROXY_KEY for proxy mode)")
		}
		log.Printf("✅ OpenAI completion provider configured")
	case "anthropic":
		if !config.AnthropicConfig.IsConfigured() {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		log.Printf("✅ Anthropic completion provider configured")
	default:
		return nil, fmt.Errorf("unknown COMPLETION_PROVIDER: %s", config.CompletionProvider)
	}

	if config.SlackConfig.OAuthConfigured() {
		log.Printf("✅ Slack OAuth configured")
	} else {
		log.Printf("⚠️ Slack OAuth not configured - /slack/oauth/callback will be disabled")
	}

	if config.SlackConfig.SigningSecret == "" {
		log.Printf("⚠️ Slack signing secret not set - webhook signature verification disabled")
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("⚠️ Invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Printf("⚠️ Invalid float for %s, using default %g", key, defaultValue)
	}
	return defaultValue
}
