package model

import (
	"time"

	"github.com/google/uuid"
)

// Image describes one normalized image as returned to API callers.
type Image struct {
	ID        uuid.UUID `json:"id"`
	SourceURL string    `json:"source_url"`
	Path      string    `json:"path"`   // storage path of the normalized JPEG
	Width     int       `json:"width"`  // final pixel width
	Height    int       `json:"height"` // final pixel height
	Size      int64     `json:"size"`   // final byte size
	CreatedAt time.Time `json:"created_at"`
}
