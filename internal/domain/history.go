package domain

import "time"

// ConversationRecord captures one answered assistant turn.
type ConversationRecord struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	CreatedAt  time.Time `json:"created_at"`
	Question   string    `json:"question"`
	Tool       string    `json:"tool,omitempty"`
	AnswerText string    `json:"answer"`
	Provider   string    `json:"provider"`
	Confidence string    `json:"confidence"`
}
