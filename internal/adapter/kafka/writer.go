package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/agroclim/et0-service/internal/config"
	"github.com/agroclim/et0-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces computed results to the sink topic.
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
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple results to the sink topic in a
// single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, results []domain.ET0Result) error {
	if len(results) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(results))
	for i := range results {
		msg, err := serializeToMessage(results[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an ET0Result into a Kafka message, keyed by
// day of year so a given day's results land on the same partition.
func serializeToMessage(result domain.ET0Result) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize et0 result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "day_of_year", Value: []byte(strconv.Itoa(result.DayOfYear))},
			{Key: "processed_at", Value: []byte(result.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
