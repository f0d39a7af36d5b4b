package producer

import (
	"context"
	"encoding/json"
	"fmt"

	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"

	"github.com/akarpenko/image-normalizer/internal/config"
	"github.com/akarpenko/image-normalizer/internal/model"
)

// Producer publishes normalization tasks to Kafka.
type Producer struct {
	Client   *wbfkafka.Producer
	strategy retry.Strategy
	cfg      *config.Kafka
}

// New creates a Producer for the configured topic.
func New(cfg *config.Kafka, s retry.Strategy) *Producer {
	return &Producer{
		Client:   wbfkafka.NewProducer(cfg.Brokers, cfg.Topic),
		cfg:      cfg,
		strategy: s,
	}
}

// Produce serializes the task to JSON and sends it, using the task ID as
// the message key for partitioning and ordering.
func (p *Producer) Produce(ctx context.Context, task model.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	key := []byte(task.ID.String())

	if err = p.Client.SendWithRetry(ctx, p.strategy, key, data); err != nil {
		return fmt.Errorf("failed to send task: %w", err)
	}

	return nil
}
