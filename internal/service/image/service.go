package image

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/akarpenko/image-normalizer/internal/model"
	"github.com/akarpenko/image-normalizer/internal/normalize"
	"github.com/akarpenko/image-normalizer/internal/watermark"
)

// normalizedSubdir is the storage subdirectory for final images.
const normalizedSubdir = "normalized"

// downloader defines the interface for fetching remote images to disk.
type downloader interface {
	Download(ctx context.Context, rawURL, destDir string) (string, error)
}

// fileStorage defines the interface for storing normalized images
// (e.g. local FS or MinIO).
type fileStorage interface {
	Save(ctx context.Context, subdir, filename string, src io.Reader) (string, error)
	Load(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// producer defines the interface for enqueueing tasks into a message broker.
type producer interface {
	Produce(ctx context.Context, task model.Task) error
}

// Watermark configures the optional branding stamp applied to each image
// before normalization.
type Watermark struct {
	Text     string
	FontPath string
}

// Config carries the service settings.
type Config struct {
	WorkDir   string            // local directory for in-flight files
	Watermark Watermark         // empty text disables watermarking
	Defaults  normalize.Options // constraints for queued tasks that carry none
}

// Service provides the business logic for image normalization: download,
// normalize, optionally watermark, and upload the results.
type Service struct {
	downloader  downloader
	fileStorage fileStorage
	producer    producer
	cfg         Config
}

// NewService creates a Service. The work dir is created when missing.
func NewService(d downloader, fs fileStorage, p producer, cfg Config) (*Service, error) {
	if err := os.MkdirAll(cfg.WorkDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("service: failed to create work dir %s: %w", cfg.WorkDir, err)
	}

	return &Service{
		downloader:  d,
		fileStorage: fs,
		producer:    p,
		cfg:         cfg,
	}, nil
}

// Enqueue publishes an asynchronous normalization task for urls and returns
// its ID.
func (s *Service) Enqueue(ctx context.Context, urls []string, opts normalize.Options) (uuid.UUID, error) {
	if len(urls) == 0 {
		return uuid.Nil, fmt.Errorf("%w: no urls given", normalize.ErrInvalidArgument)
	}
	if err := opts.Validate(); err != nil {
		return uuid.Nil, err
	}

	task := model.Task{
		ID:      uuid.New(),
		URLs:    urls,
		Options: opts,
	}

	if err := s.producer.Produce(ctx, task); err != nil {
		return uuid.Nil, fmt.Errorf("enqueue: failed to publish task: %w", err)
	}

	return task.ID, nil
}

// ProcessTask runs a queued normalization task. Tasks without valid
// constraints fall back to the configured defaults.
func (s *Service) ProcessTask(ctx context.Context, task model.Task) error {
	opts := task.Options
	if err := opts.Validate(); err != nil {
		opts = s.cfg.Defaults
	}

	images, err := s.NormalizeURLs(ctx, task.URLs, opts)
	if err != nil {
		return fmt.Errorf("process task %s: %w", task.ID, err)
	}

	zlog.Logger.Info().
		Str("task_id", task.ID.String()).
		Int("requested", len(task.URLs)).
		Int("normalized", len(images)).
		Msg("task processed")

	return nil
}

// NormalizeURLs downloads every url, normalizes the images, and uploads the
// results to storage. Items that fail at any point are skipped; the
// returned slice holds the successes in input order. The call itself fails
// only on invalid arguments.
func (s *Service) NormalizeURLs(ctx context.Context, urls []string, opts normalize.Options) ([]model.Image, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no urls given", normalize.ErrInvalidArgument)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Download everything first; failed downloads drop out of the batch.
	type item struct {
		url   string
		local string
	}
	items := make([]item, 0, len(urls))

	for _, u := range urls {
		local, err := s.downloader.Download(ctx, u, s.cfg.WorkDir)
		if err != nil {
			zlog.Logger.Warn().Err(err).Str("url", u).Msg("failed to download image")
			continue
		}
		items = append(items, item{url: u, local: local})
	}

	// Stamp before normalizing so the watermark goes through the same
	// resize and compression as the pixels beneath it.
	if s.cfg.Watermark.Text != "" {
		kept := items[:0]
		for _, it := range items {
			if err := watermark.Apply(it.local, s.cfg.Watermark.Text, s.cfg.Watermark.FontPath); err != nil {
				zlog.Logger.Warn().Err(err).Str("url", it.url).Msg("failed to watermark image")
				normalize.Discard(it.local)
				continue
			}
			kept = append(kept, it)
		}
		items = kept
	}

	paths := make([]string, 0, len(items))
	for _, it := range items {
		paths = append(paths, it.local)
	}

	finals := normalize.Optimize(ctx, paths, opts)

	// Optimize reports successes by canonical path; map them back to
	// their source URLs.
	succeeded := make(map[string]bool, len(finals))
	for _, p := range finals {
		succeeded[p] = true
	}

	images := make([]model.Image, 0, len(finals))
	for _, it := range items {
		final := normalize.CanonicalPath(it.local)
		if final == "" || !succeeded[final] {
			continue
		}

		img, err := s.upload(ctx, it.url, final)
		if err != nil {
			zlog.Logger.Warn().Err(err).Str("url", it.url).Msg("failed to upload image")
			normalize.Discard(final)
			continue
		}

		images = append(images, img)
	}

	return images, nil
}

// GetImage streams a stored normalized image by its storage path.
func (s *Service) GetImage(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", normalize.ErrInvalidArgument)
	}
	return s.fileStorage.Load(ctx, path)
}

// DeleteImage removes a stored normalized image by its storage path.
func (s *Service) DeleteImage(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", normalize.ErrInvalidArgument)
	}
	return s.fileStorage.Delete(ctx, path)
}

// upload stores the normalized file and returns its result record. The
// local file is removed after a successful upload.
func (s *Service) upload(ctx context.Context, sourceURL, path string) (model.Image, error) {
	dims, err := normalize.PixelDimensions(path)
	if err != nil {
		return model.Image{}, err
	}

	size, err := normalize.FileSize(path)
	if err != nil {
		return model.Image{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to open %s: %w", path, err)
	}

	dst, err := s.fileStorage.Save(ctx, normalizedSubdir, filepath.Base(path), f)
	f.Close()
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to store %s: %w", path, err)
	}

	normalize.Discard(path)

	return model.Image{
		ID:        uuid.New(),
		SourceURL: sourceURL,
		Path:      dst,
		Width:     dims.Width,
		Height:    dims.Height,
		Size:      size,
		CreatedAt: time.Now().UTC(),
	}, nil
}
