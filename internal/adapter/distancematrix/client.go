package distancematrix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/distance-matrix-service/internal/domain"
	"github.com/couchcryptid/distance-matrix-service/internal/observability"
)

// maxElementsPerRequest is the service-side cap on origins × destinations.
// It is logged, not enforced.
const maxElementsPerRequest = 100

// Settings configures a Client.
type Settings struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Options domain.Options
}

// Client implements domain.DistanceCalculator against the distance matrix API.
// Its options are fixed at construction; calls share no other state.
type Client struct {
	apiKey     string
	options    domain.Options
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a distance matrix client. An empty API key is a
// *domain.ConfigurationError.
func NewClient(s Settings, logger *slog.Logger, metrics *observability.Metrics) (*Client, error) {
	if s.APIKey == "" {
		return nil, &domain.ConfigurationError{Field: "api_key"}
	}
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/distancematrix"
	}
	return &Client{
		apiKey:  s.APIKey,
		options: s.Options,
		httpClient: &http.Client{
			Timeout: s.Timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Options returns the client's immutable option set.
func (c *Client) Options() domain.Options { return c.options }

// RequestURL validates in and returns the GET URL a call would issue.
func (c *Client) RequestURL(in domain.LookupInput) (string, error) {
	req, err := domain.BuildRequest(in, c.options, c.warn)
	if err != nil {
		return "", err
	}
	return req.URL(c.baseURL, c.apiKey), nil
}

// Distances resolves every origin/destination pair of in with a single
// request. Results come back in row-major order.
func (c *Client) Distances(ctx context.Context, in domain.LookupInput) ([]domain.DistanceResult, error) {
	req, err := domain.BuildRequest(in, c.options, c.warn)
	if err != nil {
		c.metrics.APIRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if n := req.ElementCount(); n > maxElementsPerRequest {
		c.logger.Warn("lookup exceeds service element limit",
			"elements", n,
			"limit", maxElementsPerRequest,
		)
	}

	body, err := c.doRequest(ctx, req.URL(c.baseURL, c.apiKey))
	if err != nil {
		return nil, err
	}

	payload, err := decodePayload(c.options.Output(), body)
	if err != nil {
		c.metrics.APIRequests.WithLabelValues("decode_error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if payload.Status == "" {
		c.metrics.APIRequests.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyPayload
	}
	if payload.Status != domain.StatusOK {
		c.metrics.APIRequests.WithLabelValues("service_error").Inc()
		return nil, &domain.ServiceError{Status: payload.Status, Message: payload.ErrorMessage}
	}
	// A validated request always has both sides, so an OK answer must label them.
	if len(payload.OriginAddresses) == 0 || len(payload.DestinationAddresses) == 0 {
		c.metrics.APIRequests.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyPayload
	}

	for _, row := range payload.Rows {
		for _, el := range row.Elements {
			c.metrics.Elements.WithLabelValues(el.Status).Inc()
		}
	}
	c.metrics.APIRequests.WithLabelValues("success").Inc()

	return domain.MapResults(payload), nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.APIRequests.WithLabelValues("transport_error").Inc()
		return nil, &domain.TransportError{Err: redactKey(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.APIRequests.WithLabelValues("transport_error").Inc()
		return nil, &domain.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.APIRequests.WithLabelValues("transport_error").Inc()
		return nil, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		c.metrics.APIRequests.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyPayload
	}
	return body, nil
}

// warn logs and counts a coordinate dropped from a list input.
func (c *Client) warn(w domain.MalformedElementWarning) {
	c.metrics.DroppedCoordinates.WithLabelValues(w.Field).Inc()
	c.logger.Warn("dropping malformed coordinate",
		"field", w.Field,
		"value", w.Value,
	)
}

// redactKey drops the query, which carries the API key, from the URL
// embedded in http.Client errors.
func redactKey(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		base, _, _ := strings.Cut(uerr.URL, "?")
		uerr.URL = base
	}
	return err
}
