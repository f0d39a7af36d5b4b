package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/akarpenko/image-normalizer/internal/config"
)

// taskHandler defines the interface for handling queued task messages.
type taskHandler interface {
	Handle(ctx context.Context, msg kafka.Message) error
}

// Consumer reads normalization tasks from Kafka and hands them to the task
// handler.
type Consumer struct {
	Client      *wbfkafka.Consumer
	taskHandler taskHandler
	cfg         *config.Kafka
	strategy    retry.Strategy
}

// New creates a Consumer for the configured topic and group.
func New(cfg *config.Kafka, s retry.Strategy, th taskHandler) *Consumer {
	return &Consumer{
		Client:      wbfkafka.NewConsumer(cfg.Brokers, cfg.Topic, cfg.GroupID),
		taskHandler: th,
		cfg:         cfg,
		strategy:    s,
	}
}

// Consume continuously fetches messages, processes them, and commits
// offsets after successful processing. It stops on context cancellation.
func (c *Consumer) Consume(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	zlog.Logger.Info().
		Str("topic", c.cfg.Topic).
		Msg("starting consumer")

	for {
		if ctx.Err() != nil {
			zlog.Logger.Info().Msg("shutdown signal received, stopping consumer")
			return
		}

		var msg kafka.Message
		err := retry.Do(func() error {
			var fetchErr error
			msg, fetchErr = c.Client.Fetch(ctx)
			return fetchErr
		}, c.strategy)

		if err != nil {
			zlog.Logger.Err(err).Msg("failed to fetch message")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if err := c.taskHandler.Handle(ctx, msg); err != nil {
			zlog.Logger.Err(err).
				Str("message", string(msg.Value)).
				Msg("failed to process task")
			continue
		}

		err = retry.Do(func() error {
			return c.Client.Commit(ctx, msg)
		}, c.strategy)
		if err != nil {
			zlog.Logger.Err(err).Msg("failed to commit message after retries")
		}

		zlog.Logger.Info().
			Int64("offset", msg.Offset).
			Msg("task handled successfully")
	}
}
