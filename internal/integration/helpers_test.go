//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/couchcryptid/distance-matrix-service/internal/adapter/distancematrix"
	"github.com/couchcryptid/distance-matrix-service/internal/domain"
	"github.com/couchcryptid/distance-matrix-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("distance-matrix-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "find controller")

	cconn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer cconn.Close()

	require.NoError(t, cconn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

type fakeTextValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type fakeElement struct {
	Status   string         `json:"status"`
	Duration *fakeTextValue `json:"duration,omitempty"`
	Distance *fakeTextValue `json:"distance,omitempty"`
}

type fakeRow struct {
	Elements []fakeElement `json:"elements"`
}

type fakeResponse struct {
	Status               string    `json:"status"`
	OriginAddresses      []string  `json:"origin_addresses"`
	DestinationAddresses []string  `json:"destination_addresses"`
	Rows                 []fakeRow `json:"rows"`
}

// fakeDistanceService answers every request with a matrix whose labels echo
// the requested origins and destinations. Destinations named "Atlantis" come
// back NOT_FOUND.
func fakeDistanceService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		resp := fakeResponse{
			Status:               "OK",
			OriginAddresses:      strings.Split(q.Get("origins"), "|"),
			DestinationAddresses: strings.Split(q.Get("destinations"), "|"),
		}
		for range resp.OriginAddresses {
			row := fakeRow{Elements: make([]fakeElement, 0, len(resp.DestinationAddresses))}
			for _, d := range resp.DestinationAddresses {
				if d == "Atlantis" {
					row.Elements = append(row.Elements, fakeElement{Status: "NOT_FOUND"})
					continue
				}
				row.Elements = append(row.Elements, fakeElement{
					Status:   "OK",
					Duration: &fakeTextValue{Text: "1 hour", Value: 3600},
					Distance: &fakeTextValue{Text: "100 km", Value: 100000},
				})
			}
			resp.Rows = append(resp.Rows, row)
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) *distancematrix.Client {
	t.Helper()
	c, err := distancematrix.NewClient(distancematrix.Settings{
		APIKey:  "integration-key",
		BaseURL: baseURL,
		Options: domain.DefaultOptions(),
	}, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)
	return c
}
