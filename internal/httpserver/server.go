package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server for the correction API.
type Server struct {
	httpServer *http.Server
}

func New(addr string, env string, deps Deps) *Server {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	manager := NewManager(deps)
	router := buildRouter(manager, deps.Metrics)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
