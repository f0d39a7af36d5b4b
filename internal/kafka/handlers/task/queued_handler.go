package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/akarpenko/image-normalizer/internal/model"
)

// service defines the interface for executing queued normalization tasks.
type service interface {
	ProcessTask(ctx context.Context, task model.Task) error
}

// QueuedHandler processes normalization tasks consumed from the queue.
type QueuedHandler struct {
	service service
}

func NewQueuedHandler(s service) *QueuedHandler {
	return &QueuedHandler{service: s}
}

func (h *QueuedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var t model.Task
	if err := json.Unmarshal(msg.Value, &t); err != nil {
		return fmt.Errorf("unmarshal task: %w", err)
	}

	if err := h.service.ProcessTask(ctx, t); err != nil {
		return fmt.Errorf("process task: %w", err)
	}

	return nil
}
