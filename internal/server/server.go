// Package server exposes the attendant over HTTP: the chat endpoint plus
// health, readiness and metrics.
package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bistro-attendant/internal/common/config"
	"bistro-attendant/internal/common/logger"
)

// Answerer is the chat pipeline behind the HTTP surface.
type Answerer interface {
	Answer(ctx context.Context, prompt string) (string, error)
	Ready() bool
}

type Server struct {
	httpServer *http.Server
	log        logger.Logger
}

func New(cfg config.ServerConfig, service Answerer, log logger.Logger) *Server {
	handler := &chatHandler{service: service, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", handler.handleChat)
	mux.HandleFunc("/health", handler.handleHealth)
	mux.HandleFunc("/ready", handler.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      mux,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log,
	}
}

func (s *Server) ListenAndServe() error {
	s.log.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
