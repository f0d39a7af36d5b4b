package normalize

import (
	"context"
	"fmt"
	"os"

	"github.com/wb-go/wbf/zlog"
)

// Options carries the combined constraints for batch normalization.
type Options struct {
	MaxWidth  int   `json:"max_width"`
	MaxHeight int   `json:"max_height"`
	MaxSize   int64 `json:"max_size"`
}

func (o Options) bounds() Bounds {
	return Bounds{MaxWidth: o.MaxWidth, MaxHeight: o.MaxHeight}
}

// Validate checks that all constraints are positive.
func (o Options) Validate() error {
	if err := o.bounds().validate(); err != nil {
		return err
	}
	if o.MaxSize <= 0 {
		return fmt.Errorf("%w: max size must be positive, got %d", ErrInvalidArgument, o.MaxSize)
	}
	return nil
}

// Optimize runs the full pipeline over paths: convert to JPEG, resize into
// bounds, compress into the byte budget, then rename the result back to the
// canonical .jpeg path for the item. Items are processed sequentially; a
// failure at any stage skips that item and processing continues. The
// returned slice holds the final paths of the items that completed, in
// input order. A canceled context stops before the next item and returns
// the successes so far.
func Optimize(ctx context.Context, paths []string, opts Options) []string {
	optimized := make([]string, 0, len(paths))

	for _, path := range paths {
		if ctx.Err() != nil {
			zlog.Logger.Warn().Err(ctx.Err()).Msg("optimize: stopping batch")
			break
		}

		out, err := optimizeOne(path, opts)
		if err != nil {
			zlog.Logger.Warn().Err(err).Str("path", path).Msg("optimize: skipping image")
			continue
		}

		optimized = append(optimized, out)
	}

	return optimized
}

// optimizeOne threads one image through the three stages, each deleting its
// predecessor on success, and collapses the intermediate naming back to the
// canonical JPEG path.
func optimizeOne(path string, opts Options) (string, error) {
	jpegPath, err := ToJPEG(path, true)
	if err != nil {
		return "", err
	}

	resizedPath, err := FitBounds(jpegPath, opts.bounds(), true)
	if err != nil {
		return "", err
	}

	compressedPath, err := CompressToSize(resizedPath, opts.MaxSize, true)
	if err != nil {
		return "", err
	}

	if compressedPath != jpegPath {
		if err := os.Rename(compressedPath, jpegPath); err != nil {
			return "", fmt.Errorf("optimize: failed to rename %s to %s: %w", compressedPath, jpegPath, err)
		}
	}

	return jpegPath, nil
}
