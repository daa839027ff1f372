package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
)

// MemoryStore keeps conversation turns in process memory. It backs the
// gateway when the SQLite database cannot be opened, so an unwritable home
// directory never takes the assistant down.
type MemoryStore struct {
	mu      sync.Mutex
	records []domain.ConversationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(record domain.ConversationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *MemoryStore) Recent(sessionID string, limit int) ([]domain.ConversationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ConversationRecord
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if s.records[i].SessionID == sessionID {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) Latest(sessionID string) (domain.ConversationRecord, bool, error) {
	records, err := s.Recent(sessionID, 1)
	if err != nil || len(records) == 0 {
		return domain.ConversationRecord{}, false, err
	}
	return records[0], true, nil
}

func (s *MemoryStore) Healthy() error { return nil }

func (s *MemoryStore) Close() error { return nil }

var _ ports.HistoryRepository = (*MemoryStore)(nil)
