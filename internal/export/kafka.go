// =============================================================================
// Australian POS Data Generator - Kafka Sink
// =============================================================================

package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
)

// KafkaSink publishes streamed transactions to a Kafka topic. Messages are
// keyed by transaction ID so a partitioned topic keeps per-transaction
// ordering.
type KafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink returns a sink publishing to topic on the given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka sink requires at least one broker")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka sink requires a topic")
	}
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}, nil
}

func (s *KafkaSink) Emit(ctx context.Context, t models.Transaction) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshalling transaction %s: %w", t.TransactionID, err)
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(t.TransactionID),
		Value: payload,
	})
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
