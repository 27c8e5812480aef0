package detaug

// Horizontal and vertical flips that keep box coordinates aligned with the
// flipped pixels.

import (
	"image"
	"math/rand"
	"time"

	"github.com/disintegration/imaging"
)

// newRandOrDefault returns rng, or a freshly seeded generator when rng is nil.
func newRandOrDefault(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rng
}

// RandomHorizontalFlip mirrors the image across its vertical axis with
// probability P and remaps the box x coordinates to match. Labels and the
// image id are untouched.
//
// The target must already be in the form produced by ToDetectionFormat.
// Applying the flip to a raw target leaves its coordinates unremapped without
// an error.
type RandomHorizontalFlip struct {
	P    float64        // The probability of applying the flip, in [0, 1].
	draw func() float64 // One uniform draw in [0, 1) per Apply.
}

// NewRandomHorizontalFlip creates the flip with probability p. A nil rng
// selects a time-seeded generator; pass a seeded one for reproducibility.
func NewRandomHorizontalFlip(p float64, rng *rand.Rand) *RandomHorizontalFlip {
	return &RandomHorizontalFlip{P: p, draw: newRandOrDefault(rng).Float64}
}

// Apply implements Transform. A draw below P applies the flip; a draw greater
// than or equal to P (including exactly P) passes the pair through unchanged.
func (f *RandomHorizontalFlip) Apply(img image.Image, target Target) (
		image.Image, Target, error) {

	if f.draw() >= f.P {
		return img, target, nil
	}

	flipped := imaging.FlipH(img)
	width := float64(flipped.Bounds().Dx())

	out := target.clone()
	for i, b := range target.Boxes {
		out.Boxes[i] = Box{width - b[2], b[1], width - b[0], b[3]}
	}

	return flipped, out, nil
}

// RandomVerticalFlip mirrors the image across its horizontal axis with
// probability P and remaps the box y coordinates to match. Labels and the
// image id are untouched.
//
// The same ordering requirement as for RandomHorizontalFlip applies.
type RandomVerticalFlip struct {
	P    float64        // The probability of applying the flip, in [0, 1].
	draw func() float64 // One uniform draw in [0, 1) per Apply.
}

// NewRandomVerticalFlip creates the flip with probability p. A nil rng selects
// a time-seeded generator.
func NewRandomVerticalFlip(p float64, rng *rand.Rand) *RandomVerticalFlip {
	return &RandomVerticalFlip{P: p, draw: newRandOrDefault(rng).Float64}
}

// Apply implements Transform, with the same draw-vs-P rule as the horizontal
// flip.
func (f *RandomVerticalFlip) Apply(img image.Image, target Target) (
		image.Image, Target, error) {

	if f.draw() >= f.P {
		return img, target, nil
	}

	flipped := imaging.FlipV(img)
	height := float64(flipped.Bounds().Dy())

	out := target.clone()
	for i, b := range target.Boxes {
		out.Boxes[i] = Box{b[0], height - b[3], b[2], height - b[1]}
	}

	return flipped, out, nil
}
