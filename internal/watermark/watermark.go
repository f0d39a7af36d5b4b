// Package watermark stamps a short branding text onto local image files.
package watermark

import (
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const margin = 10.0

// Apply draws text in the bottom-right corner of the image at path and
// writes the result back to the same path. With an empty fontPath the
// built-in bitmap face is used; otherwise the font is loaded from fontPath
// at a size proportional to the image width.
func Apply(path, text, fontPath string) error {
	if text == "" {
		return nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("watermark: failed to decode %s: %w", path, err)
	}

	dc := gg.NewContextForImage(img)
	dc.SetColor(color.White)

	if fontPath != "" {
		fontSize := float64(dc.Width()) * 0.05
		if err := dc.LoadFontFace(fontPath, fontSize); err != nil {
			return fmt.Errorf("watermark: failed to load font %s: %w", fontPath, err)
		}
	}

	tw, th := dc.MeasureString(text)
	x := float64(dc.Width()) - tw - margin
	y := float64(dc.Height()) - th - margin

	dc.DrawStringAnchored(text, x, y, 1, 1)
	dc.Fill()

	if err := imaging.Save(dc.Image(), path, imaging.JPEGQuality(100)); err != nil {
		return fmt.Errorf("watermark: failed to encode %s: %w", path, err)
	}

	return nil
}
