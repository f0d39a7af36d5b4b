package model

import (
	"github.com/google/uuid"

	"github.com/akarpenko/image-normalizer/internal/normalize"
)

// Task represents a normalization job that will be sent to the queue.
type Task struct {
	ID      uuid.UUID         `json:"id"`
	URLs    []string          `json:"urls"`
	Options normalize.Options `json:"options"`
}
