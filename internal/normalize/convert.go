package normalize

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
)

// imageExtRe matches the recognized image extensions at the end of a path.
var imageExtRe = regexp.MustCompile(`(?i)\.(png|svg|jpg|jpeg|gif)$`)

// jpegQualityMax is used for the conversion and resize stages so that the
// compression stage is the only one trading quality for size.
const jpegQualityMax = 100

// CanonicalPath returns the path an image will end up at once normalized:
// the input path with its extension replaced by ".jpeg", or the path
// unchanged when it already carries a JPEG extension. Returns an empty
// string for unrecognized extensions.
func CanonicalPath(path string) string {
	ext := imageExtRe.FindString(path)
	if ext == "" {
		return ""
	}
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return path
	}
	return imageExtRe.ReplaceAllString(path, ".jpeg")
}

// ToJPEG converts the image at path to JPEG. Paths already carrying a
// .jpg/.jpeg extension are returned unchanged without touching the file.
// Otherwise the image is decoded, flattened onto a white background (JPEG
// has no alpha channel), re-encoded at maximum quality, and written to the
// same path with the extension replaced by ".jpeg". With autoDelete set the
// original file is removed after the new one has been written.
func ToJPEG(path string, autoDelete bool) (string, error) {
	ext := imageExtRe.FindString(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, path)
	}

	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return path, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("convert: failed to decode %s: %w", path, err)
	}

	dst := CanonicalPath(path)
	if err := imaging.Save(flattenAlpha(img), dst, imaging.JPEGQuality(jpegQualityMax)); err != nil {
		removeQuietly(dst)
		return "", fmt.Errorf("convert: failed to encode %s: %w", dst, err)
	}

	if autoDelete {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("convert: failed to remove original %s: %w", path, err)
		}
	}

	return dst, nil
}

// flattenAlpha composites img onto a white background so that transparent
// regions do not turn black in the JPEG output.
func flattenAlpha(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
