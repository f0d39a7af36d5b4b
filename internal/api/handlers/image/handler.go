package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/akarpenko/image-normalizer/internal/api/respond"
	"github.com/akarpenko/image-normalizer/internal/model"
	"github.com/akarpenko/image-normalizer/internal/normalize"
)

// service defines the interface for image normalization operations.
type service interface {
	NormalizeURLs(ctx context.Context, urls []string, opts normalize.Options) ([]model.Image, error)
	Enqueue(ctx context.Context, urls []string, opts normalize.Options) (uuid.UUID, error)
	GetImage(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteImage(ctx context.Context, path string) error
}

// Handler provides HTTP handlers for normalization endpoints.
type Handler struct {
	service service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(s service) *Handler {
	return &Handler{service: s}
}

// NormalizeRequest is the body of POST /api/normalize and POST /api/jobs.
type NormalizeRequest struct {
	URLs      []string `json:"urls"`
	MaxWidth  int      `json:"max_width"`
	MaxHeight int      `json:"max_height"`
	MaxSize   int64    `json:"max_size"`
}

func (r NormalizeRequest) options() normalize.Options {
	return normalize.Options{
		MaxWidth:  r.MaxWidth,
		MaxHeight: r.MaxHeight,
		MaxSize:   r.MaxSize,
	}
}

// Normalize handles synchronous normalization: download, normalize, and
// store every URL in the request, responding with the results. Failed
// items are omitted from the response rather than failing the call.
func (h *Handler) Normalize(c *ginext.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Logger.Err(err).Msg("failed to bind normalize request")
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	images, err := h.service.NormalizeURLs(c.Request.Context(), req.URLs, req.options())
	if err != nil {
		if errors.Is(err, normalize.ErrInvalidArgument) {
			respond.Fail(c, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Err(err).Msg("failed to normalize images")
		respond.Fail(c, http.StatusInternalServerError, fmt.Errorf("failed to normalize images"))
		return
	}

	respond.OK(c, images)
}

// EnqueueJob handles asynchronous normalization: the request is published
// as a task and picked up by the queue consumer.
func (h *Handler) EnqueueJob(c *ginext.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Logger.Err(err).Msg("failed to bind job request")
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	id, err := h.service.Enqueue(c.Request.Context(), req.URLs, req.options())
	if err != nil {
		if errors.Is(err, normalize.ErrInvalidArgument) {
			respond.Fail(c, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Err(err).Msg("failed to enqueue job")
		respond.Fail(c, http.StatusInternalServerError, fmt.Errorf("failed to enqueue job"))
		return
	}

	respond.Created(c, map[string]interface{}{"job_id": id})
}

// Get streams a stored normalized image identified by the "path" query
// parameter.
func (h *Handler) Get(c *ginext.Context) {
	path := c.Query("path")
	if path == "" {
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("missing path"))
		return
	}

	reader, err := h.service.GetImage(c.Request.Context(), path)
	if err != nil {
		zlog.Logger.Err(err).Str("path", path).Msg("failed to get image")
		respond.Fail(c, http.StatusNotFound, fmt.Errorf("image not found"))
		return
	}
	defer reader.Close()

	respond.JPEG(c, http.StatusOK, reader)
}

// Delete removes a stored normalized image identified by the "path" query
// parameter.
func (h *Handler) Delete(c *ginext.Context) {
	path := c.Query("path")
	if path == "" {
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("missing path"))
		return
	}

	if err := h.service.DeleteImage(c.Request.Context(), path); err != nil {
		zlog.Logger.Err(err).Str("path", path).Msg("failed to delete image")
		respond.Fail(c, http.StatusInternalServerError, fmt.Errorf("failed to delete image"))
		return
	}

	c.Status(http.StatusNoContent)
}
