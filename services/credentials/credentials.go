package credentials

import (
	"log"
	"sync"
)

// Store holds the process-wide Slack bot token behind a lock so the OAuth
// callback can swap it while in-flight requests keep reading a consistent
// value. It replaces mutating ambient environment state.
type Store struct {
	mu       sync.RWMutex
	botToken string
}

// NewStore creates a credential store seeded with the configured bot token
func NewStore(botToken string) *Store {
	return &Store{botToken: botToken}
}

// BotToken returns the current Slack bot token
func (s *Store) BotToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.botToken
}

// UpdateBotToken atomically replaces the Slack bot token
func (s *Store) UpdateBotToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.botToken = token
	log.Printf("🔑 Slack bot token updated")
}
