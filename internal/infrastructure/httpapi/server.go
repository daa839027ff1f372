// Package httpapi exposes the assistant over HTTP for the dashboard
// frontend. It is a thin adapter: request decoding, session context lookup,
// and response shaping live here; all answering policy lives in services.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
	"github.com/asoraledecnal/vantage/internal/services"
)

// Server wires the assistant use cases into a gin router.
type Server struct {
	Assistant   domain.AssistantService
	Guidance    ports.GuidanceRegistry
	History     ports.HistoryRepository
	Doctor      *services.DoctorService
	Logger      ports.Logger
	RecentLimit int

	httpServer *http.Server
}

// Router builds the HTTP routes. Exposed separately from Run so tests can
// drive it with httptest.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(s.Logger))

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/assistant", s.handleAssistant)
		api.GET("/assistant/history", s.handleHistory)
		api.GET("/tool-guidance", s.handleToolGuidance)
		api.GET("/tools", s.handleTools)
	}
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.Logger.Info("http server listening", map[string]interface{}{"addr": addr})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
