package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAssistant struct {
	lastRequest domain.AssistantRequest
	answer      domain.Answer
}

func (s *stubAssistant) Answer(req domain.AssistantRequest) domain.Answer {
	s.lastRequest = req
	return s.answer
}

type stubRegistry struct {
	tools []domain.ToolGuidance
}

func (r *stubRegistry) All() []domain.ToolGuidance { return r.tools }

func (r *stubRegistry) Lookup(key string) (domain.ToolGuidance, bool) {
	for _, t := range r.tools {
		if t.Key == key {
			return t, true
		}
	}
	return domain.ToolGuidance{}, false
}

func (r *stubRegistry) SupportedTools() []string {
	keys := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		keys = append(keys, t.Key)
	}
	return keys
}

type stubHistory struct {
	records   []domain.ConversationRecord
	saved     []domain.ConversationRecord
	failSaves bool
}

func (h *stubHistory) Save(rec domain.ConversationRecord) error {
	if h.failSaves {
		return errors.New("disk full")
	}
	h.saved = append(h.saved, rec)
	return nil
}

func (h *stubHistory) Recent(sessionID string, limit int) ([]domain.ConversationRecord, error) {
	var out []domain.ConversationRecord
	for i := len(h.records) - 1; i >= 0 && len(out) < limit; i-- {
		if h.records[i].SessionID == sessionID {
			out = append(out, h.records[i])
		}
	}
	return out, nil
}

func (h *stubHistory) Latest(sessionID string) (domain.ConversationRecord, bool, error) {
	records, err := h.Recent(sessionID, 1)
	if err != nil || len(records) == 0 {
		return domain.ConversationRecord{}, false, err
	}
	return records[0], true, nil
}

func (h *stubHistory) Healthy() error { return nil }
func (h *stubHistory) Close() error   { return nil }

type stubConfigProvider struct{ cfg domain.Config }

func (p *stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return p.cfg, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func validConfig() domain.Config {
	return domain.Config{
		Cache: domain.CacheSettings{TTLSeconds: 300, MaxEntries: 64},
	}
}

func newTestServer() (*Server, *stubAssistant, *stubHistory) {
	assistant := &stubAssistant{answer: domain.Answer{
		Text:       "stub answer",
		Tool:       "whois",
		Provider:   "gemini-primary",
		Confidence: "92%",
	}}
	history := &stubHistory{}
	registry := &stubRegistry{tools: []domain.ToolGuidance{{
		Key:         "whois",
		Title:       "WHOIS Lookup",
		Description: "Domain registration details.",
		Usage:       []string{"Enter a domain"},
		Example:     "/api/whois",
	}}}

	server := &Server{
		Assistant: assistant,
		Guidance:  registry,
		History:   history,
		Doctor: &services.DoctorService{
			ConfigProvider: &stubConfigProvider{cfg: validConfig()},
			Guidance:       registry,
			History:        history,
		},
		Logger:      nopLogger{},
		RecentLimit: 20,
	}
	return server, assistant, history
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAssistantEndpointAnswersAndPersists(t *testing.T) {
	server, assistant, history := newTestServer()
	router := server.Router()

	w := postJSON(t, router, "/api/assistant", map[string]any{
		"question":   "who owns example.com?",
		"session_id": "s1",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var answer domain.Answer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))
	assert.Equal(t, "stub answer", answer.Text)
	assert.Equal(t, "92%", answer.Confidence)

	assert.Equal(t, "who owns example.com?", assistant.lastRequest.Question)
	assert.Equal(t, "s1", assistant.lastRequest.SessionID)

	require.Len(t, history.saved, 1)
	assert.Equal(t, "s1", history.saved[0].SessionID)
	assert.Equal(t, "whois", history.saved[0].Tool)
	assert.Equal(t, "gemini-primary", history.saved[0].Provider)
}

func TestAssistantEndpointForwardsExplicitContext(t *testing.T) {
	server, assistant, _ := newTestServer()
	router := server.Router()

	w := postJSON(t, router, "/api/assistant", map[string]any{
		"question": "why did it fail?",
		"context": map[string]any{
			"tool":    "port_scan",
			"target":  "example.com",
			"summary": "443 open",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, assistant.lastRequest.Recent)
	assert.Equal(t, "port_scan", assistant.lastRequest.Recent.Tool)
	assert.Equal(t, "example.com", assistant.lastRequest.Recent.Target)
}

func TestAssistantEndpointFallsBackToSessionHistoryContext(t *testing.T) {
	server, assistant, history := newTestServer()
	history.records = []domain.ConversationRecord{{
		SessionID: "s1",
		Question:  "previous question",
		Tool:      "dns_records",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	router := server.Router()

	w := postJSON(t, router, "/api/assistant", map[string]any{
		"question":   "and what about mx?",
		"session_id": "s1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, assistant.lastRequest.Recent)
	assert.Equal(t, "dns_records", assistant.lastRequest.Recent.Tool)
	assert.Equal(t, "previous question", assistant.lastRequest.Recent.Summary)
}

func TestAssistantEndpointWithoutSessionDoesNotPersist(t *testing.T) {
	server, _, history := newTestServer()
	router := server.Router()

	w := postJSON(t, router, "/api/assistant", map[string]any{"question": "hello"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, history.saved)
}

func TestAssistantEndpointSurvivesHistorySaveFailure(t *testing.T) {
	server, _, history := newTestServer()
	history.failSaves = true
	router := server.Router()

	w := postJSON(t, router, "/api/assistant", map[string]any{
		"question":   "hello",
		"session_id": "s1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssistantEndpointRejectsBadBody(t *testing.T) {
	server, _, _ := newTestServer()
	router := server.Router()

	req := httptest.NewRequest(http.MethodPost, "/api/assistant", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToolGuidanceEndpoint(t *testing.T) {
	server, _, _ := newTestServer()
	router := server.Router()

	w := getPath(router, "/api/tool-guidance?tool=whois")
	require.Equal(t, http.StatusOK, w.Code)

	var guidance domain.ToolGuidance
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &guidance))
	assert.Equal(t, "whois", guidance.Key)
	assert.Equal(t, "WHOIS Lookup", guidance.Title)
}

func TestToolGuidanceEndpointUnknownTool(t *testing.T) {
	server, _, _ := newTestServer()
	router := server.Router()

	w := getPath(router, "/api/tool-guidance?tool=nmap")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		AvailableTools []string `json:"available_tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"whois"}, body.AvailableTools)
}

func TestToolGuidanceEndpointMissingParam(t *testing.T) {
	server, _, _ := newTestServer()
	router := server.Router()

	w := getPath(router, "/api/tool-guidance")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToolsEndpoint(t *testing.T) {
	server, _, _ := newTestServer()
	router := server.Router()

	w := getPath(router, "/api/tools")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tools []domain.ToolGuidance `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tools, 1)
	assert.Equal(t, "whois", body.Tools[0].Key)
}

func TestHistoryEndpoint(t *testing.T) {
	server, _, history := newTestServer()
	history.records = []domain.ConversationRecord{
		{SessionID: "s1", Question: "q1"},
		{SessionID: "s2", Question: "q2"},
		{SessionID: "s1", Question: "q3"},
	}
	router := server.Router()

	w := getPath(router, "/api/assistant/history?session_id=s1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SessionID string                      `json:"session_id"`
		Records   []domain.ConversationRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "s1", body.SessionID)
	require.Len(t, body.Records, 2)
	assert.Equal(t, "q3", body.Records[0].Question)
}

func TestHistoryEndpointRequiresSession(t *testing.T) {
	server, _, _ := newTestServer()
	router := server.Router()

	w := getPath(router, "/api/assistant/history")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	server, _, _ := newTestServer()
	router := server.Router()

	w := getPath(router, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// No providers configured in the stub config, so the doctor warns.
	assert.Equal(t, "warn", body.Status)
}

func TestRequestIDHeaderSetAndEchoed(t *testing.T) {
	server, _, _ := newTestServer()
	router := server.Router()

	w := getPath(router, "/api/tools")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, "caller-id", w2.Header().Get("X-Request-ID"))
}
