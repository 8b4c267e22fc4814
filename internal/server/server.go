// Package server exposes the downloader's HTTP surface: health, metadata,
// download, and the embedded web interface. Route paths mirror the Azure
// Functions deployment so the same clients work against either host.
package server

import (
	"context"
	"crypto/subtle"
	"embed"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/savaki/deltashare-deployer/internal/sharing"
)

//go:embed docroot
var docroot embed.FS

// SharingDialer builds a sharing client from an uploaded profile. Indirected
// so handler tests can point the client at a stub server.
type SharingDialer func(profile *sharing.Profile) *sharing.Client

// Server handles the downloader's HTTP endpoints.
type Server struct {
	functionKey string
	dial        SharingDialer
}

// New creates a Server. An empty functionKey disables key authentication,
// which is the local development mode.
func New(functionKey string, dial SharingDialer) *Server {
	if dial == nil {
		dial = sharing.NewClient
	}
	return &Server{functionKey: functionKey, dial: dial}
}

// Router assembles the chi router with logging and key-auth middleware.
func (s *Server) Router(logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/web_interface", s.handleWebInterface)

	r.Group(func(r chi.Router) {
		r.Use(s.requireFunctionKey)
		r.Post("/api/metadata", s.handleMetadata)
		r.Post("/api/download", s.handleDownload)
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Router(logger),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	logger.Info().Str("addr", addr).Msg("Serving delta sharing downloader")
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// keyMatches compares keys in constant time.
func (s *Server) keyMatches(candidate string) bool {
	if s.functionKey == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.functionKey)) == 1
}
