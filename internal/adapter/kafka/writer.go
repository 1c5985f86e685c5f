package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/distance-matrix-service/internal/config"
	"github.com/couchcryptid/distance-matrix-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes lookup responses to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes responses in a single WriteMessages call. Messages are
// keyed by lookup id so replays land on the same partition.
func (w *Writer) LoadBatch(ctx context.Context, responses []domain.LookupResponse) error {
	if len(responses) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(responses))
	for i := range responses {
		msg, err := serializeToMessage(responses[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write lookup responses: %w", err)
	}
	w.logger.Debug("lookup responses published", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a LookupResponse into a Kafka message.
func serializeToMessage(resp domain.LookupResponse) (kafkago.Message, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize lookup response: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(resp.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(resp.Status)},
			{Key: "processed_at", Value: []byte(resp.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
