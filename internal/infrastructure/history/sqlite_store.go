// Package history persists answered assistant turns. It is the
// session/history collaborator of the assistant core: the HTTP layer reads
// prior-turn context out of it and writes answers into it.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
)

// SQLiteStore persists conversation turns in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path. When the database
// cannot be opened the caller should fall back to NewMemoryStore.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		question TEXT NOT NULL,
		tool TEXT,
		answer TEXT NOT NULL,
		provider TEXT,
		confidence TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_conversations_session
		ON conversations(session_id, created_at);`)
	return err
}

// Save inserts a new turn. A missing ID is assigned.
func (s *SQLiteStore) Save(record domain.ConversationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO conversations
		(id, session_id, created_at, question, tool, answer, provider, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.SessionID,
		record.CreatedAt.Format(time.RFC3339Nano),
		record.Question,
		record.Tool,
		record.AnswerText,
		record.Provider,
		record.Confidence,
	)
	return err
}

// Recent returns the newest turns for a session, newest first.
func (s *SQLiteStore) Recent(sessionID string, limit int) ([]domain.ConversationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT id, session_id, created_at, question, tool, answer, provider, confidence
		FROM conversations WHERE session_id = ?
		ORDER BY datetime(created_at) DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ConversationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Latest returns the most recent turn for a session, if any.
func (s *SQLiteStore) Latest(sessionID string) (domain.ConversationRecord, bool, error) {
	records, err := s.Recent(sessionID, 1)
	if err != nil {
		return domain.ConversationRecord{}, false, err
	}
	if len(records) == 0 {
		return domain.ConversationRecord{}, false, nil
	}
	return records[0], true, nil
}

// Healthy pings the database.
func (s *SQLiteStore) Healthy() error {
	if s.db == nil {
		return fmt.Errorf("history database not open")
	}
	return s.db.Ping()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (domain.ConversationRecord, error) {
	var rec domain.ConversationRecord
	var created string
	if err := rows.Scan(&rec.ID, &rec.SessionID, &created, &rec.Question, &rec.Tool,
		&rec.AnswerText, &rec.Provider, &rec.Confidence); err != nil {
		return domain.ConversationRecord{}, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		rec.CreatedAt = ts
	}
	return rec, nil
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
