package normalize

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// JPEG encode quality search range.
const (
	qualityFloor   = 1
	qualityCeiling = 100
)

// CompressToSize re-encodes the JPEG at path so that it fits within maxBytes,
// searching for the highest quality level that does. Files already within
// budget are left untouched and the input path is returned. The compressed
// image is written to a sibling path carrying a "-compressed" marker before
// the extension, overwritten on every search iteration. With autoDelete set
// the original file is removed once the search has finished.
//
// The search keeps left as the highest quality confirmed to fit (or the
// initial floor of 1) and right as the lowest quality confirmed not to fit
// (or the initial ceiling of 100). After convergence one more encode at left
// is required: the last iteration may have left the file on disk at a
// rejected quality.
//
// When even quality 1 exceeds the budget the result is the quality-1 encode
// and no error is reported; the budget is best-effort, not guaranteed.
func CompressToSize(path string, maxBytes int64, autoDelete bool) (string, error) {
	if maxBytes <= 0 {
		return "", fmt.Errorf("%w: max size must be positive, got %d", ErrInvalidArgument, maxBytes)
	}

	size, err := FileSize(path)
	if err != nil {
		return "", err
	}
	if size <= maxBytes {
		return path, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("compress: failed to decode %s: %w", path, err)
	}

	dst := markedPath(path, "-compressed")
	left, right := qualityFloor, qualityCeiling

	for right-left > 1 {
		quality := (left + right) / 2

		if err := imaging.Save(img, dst, imaging.JPEGQuality(quality)); err != nil {
			removeQuietly(dst)
			return "", fmt.Errorf("compress: failed to encode %s at quality %d: %w", dst, quality, err)
		}

		encoded, err := FileSize(dst)
		if err != nil {
			removeQuietly(dst)
			return "", err
		}

		if encoded < maxBytes {
			left = quality
		} else {
			right = quality
		}
	}

	// The on-disk file may reflect a rejected quality from the last
	// iteration; re-encode at the best confirmed one.
	if err := imaging.Save(img, dst, imaging.JPEGQuality(left)); err != nil {
		removeQuietly(dst)
		return "", fmt.Errorf("compress: failed to encode %s at quality %d: %w", dst, left, err)
	}

	if autoDelete {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("compress: failed to remove original %s: %w", path, err)
		}
	}

	return dst, nil
}
