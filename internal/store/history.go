package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hollowdrift/claudegate/internal/models"
)

// DefaultHistoryTTL is the retention window for conversation records,
// refreshed on every write.
const DefaultHistoryTTL = 24 * time.Hour

// HistoryStore persists the ordered message sequence of each conversation.
// Records are keyed directly by the caller-chosen conversation id and expire
// after the TTL. There is no append primitive: callers load, concatenate and
// save, so concurrent writers to the same id are last-write-wins.
type HistoryStore struct {
	kv  KV
	ttl time.Duration
}

// NewHistoryStore creates a history store with the default 24h retention.
func NewHistoryStore(kv KV) *HistoryStore {
	return &HistoryStore{kv: kv, ttl: DefaultHistoryTTL}
}

// Load returns the saved history for the conversation, or an empty sequence
// when the id is unseen or expired.
func (s *HistoryStore) Load(ctx context.Context, id string) ([]models.ChatMessage, error) {
	raw, err := s.kv.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	var msgs []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return msgs, nil
}

// Save overwrites the conversation record and resets its expiry window.
func (s *HistoryStore) Save(ctx context.Context, id string, msgs []models.ChatMessage) error {
	raw, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.SetWithTTL(ctx, id, string(raw), s.ttl); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
