package normalize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// markedPath inserts marker before the extension of path,
// e.g. markedPath("a/b.jpeg", "-resized") -> "a/b-resized.jpeg".
func markedPath(path, marker string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + marker + ext
}

// FitBounds resizes the image at path so that both dimensions fit within
// bounds, preserving aspect ratio. Images already within bounds are left
// untouched and the input path is returned. The resized image is written to
// a sibling path carrying a "-resized" marker before the extension. With
// autoDelete set the original file is removed after the resized one has
// been written.
func FitBounds(path string, bounds Bounds, autoDelete bool) (string, error) {
	if err := bounds.validate(); err != nil {
		return "", err
	}

	dims, err := PixelDimensions(path)
	if err != nil {
		return "", err
	}

	if dims.Width <= bounds.MaxWidth && dims.Height <= bounds.MaxHeight {
		return path, nil
	}

	target, err := Fit(dims, bounds)
	if err != nil {
		return "", err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("resize: failed to decode %s: %w", path, err)
	}

	resized := imaging.Resize(img, target.Width, target.Height, imaging.Lanczos)

	dst := markedPath(path, "-resized")
	if err := imaging.Save(resized, dst, imaging.JPEGQuality(jpegQualityMax)); err != nil {
		removeQuietly(dst)
		return "", fmt.Errorf("resize: failed to encode %s: %w", dst, err)
	}

	if autoDelete {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("resize: failed to remove original %s: %w", path, err)
		}
	}

	return dst, nil
}
