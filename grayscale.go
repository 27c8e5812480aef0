package detaug

import (
	"image"
	"math/rand"

	"github.com/disintegration/imaging"
)

// RandomGrayscale converts the image to grayscale with probability P, with the
// luminance replicated across the three channels. The target passes through
// unchanged regardless of the outcome.
type RandomGrayscale struct {
	P    float64        // The probability of applying the conversion, in [0, 1].
	draw func() float64 // One uniform draw in [0, 1) per Apply.
}

// NewRandomGrayscale creates the transform with probability p. A nil rng
// selects a time-seeded generator.
func NewRandomGrayscale(p float64, rng *rand.Rand) *RandomGrayscale {
	return &RandomGrayscale{P: p, draw: newRandOrDefault(rng).Float64}
}

// Apply implements Transform, with the same draw-vs-P rule as the flips.
func (g *RandomGrayscale) Apply(img image.Image, target Target) (
		image.Image, Target, error) {

	if g.draw() >= g.P {
		return img, target, nil
	}

	return imaging.Grayscale(img), target, nil
}
