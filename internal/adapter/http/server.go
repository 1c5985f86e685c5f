package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/distance-matrix-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the synchronous distance lookup alongside health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	calc       domain.DistanceCalculator
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/distances, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, calc domain.DistanceCalculator, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		calc:   calc,
		logger: logger,
	}

	mux.HandleFunc("GET /v1/distances", s.handleDistances)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

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

// handleDistances resolves a lookup from repeatable query parameters. A
// parameter given once is a scalar input; given more than once it is a list,
// so a malformed coordinate is rejected in the first case and dropped in the second.
func (s *Server) handleDistances(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := domain.LookupInput{
		OriginAddresses:        sourceOf(q, "origin"),
		OriginCoordinates:      sourceOf(q, "origin_latlng"),
		DestinationAddresses:   sourceOf(q, "destination"),
		DestinationCoordinates: sourceOf(q, "destination_latlng"),
	}

	results, err := s.calc.Distances(r.Context(), in)
	if err != nil {
		status := http.StatusBadGateway
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("distance lookup failed", "error", err, "status", status)
		sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"results": results})
}

func sourceOf(q url.Values, key string) domain.Source {
	switch vals := q[key]; len(vals) {
	case 0:
		return domain.Source{}
	case 1:
		return domain.One(vals[0])
	default:
		return domain.Many(vals...)
	}
}
