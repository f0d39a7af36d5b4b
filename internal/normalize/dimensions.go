// Package normalize implements the image normalization pipeline: conversion
// to JPEG, aspect-preserving resize into pixel bounds, and a quality search
// that compresses a JPEG into a byte-size budget.
//
// Every stage operates on a file path and returns the path of its output,
// which may be the input path unchanged when the stage is a no-op. A stage
// that produces a new file may be asked to delete its input once the output
// has been written successfully.
package normalize

import (
	"fmt"
	"math"
)

// Dimensions is a pixel width/height pair.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bounds constrains the pixel dimensions of an image. Both limits must be
// positive; there are no defaults.
type Bounds struct {
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

func (d Dimensions) validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidArgument, d.Width, d.Height)
	}
	return nil
}

func (b Bounds) validate() error {
	if b.MaxWidth <= 0 || b.MaxHeight <= 0 {
		return fmt.Errorf("%w: bounds must be positive, got %dx%d", ErrInvalidArgument, b.MaxWidth, b.MaxHeight)
	}
	return nil
}

// Fit computes the largest dimensions within b that preserve the aspect
// ratio of d. The scale factor is clamped to 1, so dimensions already
// within bounds are returned unchanged. Results are floor-rounded.
func Fit(d Dimensions, b Bounds) (Dimensions, error) {
	if err := d.validate(); err != nil {
		return Dimensions{}, err
	}
	if err := b.validate(); err != nil {
		return Dimensions{}, err
	}

	k := math.Min(1, math.Min(
		float64(b.MaxWidth)/float64(d.Width),
		float64(b.MaxHeight)/float64(d.Height),
	))

	return Dimensions{
		Width:  int(math.Floor(float64(d.Width) * k)),
		Height: int(math.Floor(float64(d.Height) * k)),
	}, nil
}
