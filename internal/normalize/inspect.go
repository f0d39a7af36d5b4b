package normalize

import (
	"fmt"
	"image"
	"os"

	// Register decoders for dimension reads via image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/wb-go/wbf/zlog"
)

// PixelDimensions reads the pixel dimensions of the image at path without
// decoding the full pixel data.
func PixelDimensions(path string) (Dimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dimensions{}, fmt.Errorf("inspect: failed to open %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("inspect: failed to read dimensions of %s: %w", path, err)
	}

	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

// FileSize returns the byte size of the file at path.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("inspect: failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// Discard removes the file at path, logging instead of failing when the
// file cannot be removed. Used for best-effort cleanup of temp files.
func Discard(path string) {
	removeQuietly(path)
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zlog.Logger.Warn().Err(err).Str("path", path).Msg("failed to remove file")
	}
}
