package normalize

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// noisyImage builds a deterministic pseudo-random image. Noise keeps JPEG
// output large enough that the quality level visibly affects file size.
func noisyImage(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(42))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

// writeTestImage writes a noisy image to dir/name, encoding by extension.
func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	img := noisyImage(w, h)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		t.Fatalf("unsupported test image extension in %s", name)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}

	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
