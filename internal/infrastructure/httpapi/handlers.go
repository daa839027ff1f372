package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asoraledecnal/vantage/internal/domain"
)

type assistantPayload struct {
	Question  string                 `json:"question"`
	Tool      string                 `json:"tool"`
	SessionID string                 `json:"session_id"`
	Context   *domain.RecentActivity `json:"context"`
}

func (s *Server) handleAssistant(c *gin.Context) {
	var payload assistantPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recent := payload.Context
	if recent == nil && payload.SessionID != "" && s.History != nil {
		// Fall back to the session's last answered turn for context.
		if rec, found, err := s.History.Latest(payload.SessionID); err == nil && found {
			recent = &domain.RecentActivity{
				Tool:      rec.Tool,
				Summary:   rec.Question,
				Timestamp: rec.CreatedAt,
			}
		}
	}

	answer := s.Assistant.Answer(domain.AssistantRequest{
		Context:   c.Request.Context(),
		Question:  payload.Question,
		ToolHint:  payload.Tool,
		SessionID: payload.SessionID,
		Recent:    recent,
	})

	if payload.SessionID != "" && payload.Question != "" && s.History != nil {
		record := domain.ConversationRecord{
			SessionID:  payload.SessionID,
			Question:   payload.Question,
			Tool:       answer.Tool,
			AnswerText: answer.Text,
			Provider:   answer.Provider,
			Confidence: answer.Confidence,
		}
		if err := s.History.Save(record); err != nil {
			s.Logger.Error("history save failed", err, map[string]interface{}{
				"session_id": payload.SessionID,
			})
		}
	}

	c.JSON(http.StatusOK, answer)
}

func (s *Server) handleHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	limit := s.RecentLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	records, err := s.History.Recent(sessionID, limit)
	if err != nil {
		s.Logger.Error("history query failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	if records == nil {
		records = []domain.ConversationRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "records": records})
}

func (s *Server) handleToolGuidance(c *gin.Context) {
	key := c.Query("tool")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tool is required"})
		return
	}
	guidance, found := s.Guidance.Lookup(key)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error":           "unknown tool",
			"available_tools": s.Guidance.SupportedTools(),
		})
		return
	}
	c.JSON(http.StatusOK, guidance)
}

func (s *Server) handleTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.Guidance.All()})
}

func (s *Server) handleHealth(c *gin.Context) {
	report, err := s.Doctor.Run(c.Request.Context())

	status := "ok"
	code := http.StatusOK
	checks := make([]gin.H, 0, len(report.Checks))
	for _, check := range report.Checks {
		checks = append(checks, gin.H{
			"name":    check.Name,
			"status":  check.Status,
			"details": check.Details,
		})
		switch check.Status {
		case domain.HealthError:
			status = "error"
		case domain.HealthWarn:
			if status == "ok" {
				status = "warn"
			}
		}
	}
	if err != nil || status == "error" {
		code = http.StatusServiceUnavailable
		status = "error"
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}
