package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LatestReader exposes the most recent evaluated reading, if any.
type LatestReader interface {
	Latest() (domain.PresentationResult, bool)
}

// Server exposes health, readiness, metrics, and AQI HTTP endpoints.
type Server struct {
	httpServer *http.Server
	latest     LatestReader
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and /aqi routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, latest LatestReader, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		latest: latest,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /aqi", s.handleAQI)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type aqiResponse struct {
	domain.PresentationResult
	Header     string       `json:"header"`
	Appearance string       `json:"appearance"`
	Style      domain.Style `json:"style"`
}

func (s *Server) handleAQI(w http.ResponseWriter, r *http.Request) {
	appearance := r.URL.Query().Get("appearance")
	switch appearance {
	case "":
		appearance = "light"
	case "light", "dark":
	default:
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "appearance must be light or dark",
		})
		return
	}

	result, ok := s.latest.Latest()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{
			"error": "no reading available yet",
		})
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, aqiResponse{
		PresentationResult: result,
		Header:             result.Header(),
		Appearance:         appearance,
		Style:              result.Style(appearance == "dark"),
	})
}
