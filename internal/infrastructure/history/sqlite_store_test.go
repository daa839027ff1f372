package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
)

func newTempSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history", "conversations.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testStores(t *testing.T) map[string]ports.HistoryRepository {
	return map[string]ports.HistoryRepository{
		"sqlite": newTempSQLiteStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Save(domain.ConversationRecord{
				SessionID:  "s1",
				Question:   "what is whois?",
				AnswerText: "an answer",
			})
			if err != nil {
				t.Fatalf("Save: %v", err)
			}

			rec, found, err := store.Latest("s1")
			if err != nil || !found {
				t.Fatalf("Latest: found=%v err=%v", found, err)
			}
			if rec.ID == "" {
				t.Error("record ID should be assigned on save")
			}
			if rec.CreatedAt.IsZero() {
				t.Error("record timestamp should be assigned on save")
			}
		})
	}
}

func TestRecentNewestFirstAndLimited(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			questions := []string{"first", "second", "third"}
			for i, q := range questions {
				err := store.Save(domain.ConversationRecord{
					SessionID:  "s1",
					Question:   q,
					AnswerText: "a",
					CreatedAt:  base.Add(time.Duration(i) * time.Minute),
				})
				if err != nil {
					t.Fatalf("Save: %v", err)
				}
			}

			records, err := store.Recent("s1", 2)
			if err != nil {
				t.Fatalf("Recent: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("len = %d, want 2", len(records))
			}
			if records[0].Question != "third" || records[1].Question != "second" {
				t.Errorf("order = [%s, %s], want newest first", records[0].Question, records[1].Question)
			}
		})
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_ = store.Save(domain.ConversationRecord{SessionID: "a", Question: "qa", AnswerText: "x"})
			_ = store.Save(domain.ConversationRecord{SessionID: "b", Question: "qb", AnswerText: "y"})

			records, err := store.Recent("a", 10)
			if err != nil {
				t.Fatalf("Recent: %v", err)
			}
			if len(records) != 1 || records[0].Question != "qa" {
				t.Errorf("session a records = %+v", records)
			}
		})
	}
}

func TestLatestOnEmptySession(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Latest("nobody")
			if err != nil {
				t.Fatalf("Latest: %v", err)
			}
			if found {
				t.Error("empty session must report not found")
			}
		})
	}
}

func TestSQLiteRoundTripPreservesFields(t *testing.T) {
	store := newTempSQLiteStore(t)

	in := domain.ConversationRecord{
		SessionID:  "s1",
		Question:   "how do I scan ports?",
		Tool:       "port_scan",
		AnswerText: "use the port scan tool",
		Provider:   "gemini-primary",
		Confidence: "92%",
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, found, err := store.Latest("s1")
	if err != nil || !found {
		t.Fatalf("Latest: found=%v err=%v", found, err)
	}
	if out.Question != in.Question || out.Tool != in.Tool || out.AnswerText != in.AnswerText ||
		out.Provider != in.Provider || out.Confidence != in.Confidence {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("timestamp = %v, want %v", out.CreatedAt, in.CreatedAt)
	}
}

func TestHealthy(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Healthy(); err != nil {
				t.Errorf("Healthy: %v", err)
			}
		})
	}
}
