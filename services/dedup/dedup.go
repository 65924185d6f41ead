package dedup

import (
	"sync"
	"time"
)

const defaultTTL = 15 * time.Minute

// DedupService is an in-memory set of recently processed platform event
// IDs. The platform redelivers webhooks with the same event ID, so a hit
// means the event must be acknowledged without reprocessing. Entries expire
// after the TTL; nothing is persisted across restarts.
type DedupService struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewDedupService(ttl time.Duration) *DedupService {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &DedupService{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// CheckAndRecord returns true when eventID is seen for the first time and
// records it. Returns false for duplicates within the TTL window.
func (s *DedupService) CheckAndRecord(eventID string) bool {
	if eventID == "" {
		// No ID to deduplicate on; treat as fresh
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	if _, ok := s.seen[eventID]; ok {
		return false
	}
	s.seen[eventID] = now
	return true
}

func (s *DedupService) pruneLocked(now time.Time) {
	for id, recordedAt := range s.seen {
		if now.Sub(recordedAt) > s.ttl {
			delete(s.seen, id)
		}
	}
}
