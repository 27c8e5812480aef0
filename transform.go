package detaug

// The transform capability and the sequencing container.

import (
	"image"
)

// Transform applies a change to an image and its target, keeping the two
// geometrically consistent. Implementations replace the image rather than
// mutating it and return a fresh Target when they touch box coordinates.
type Transform interface {
	Apply(img image.Image, target Target) (image.Image, Target, error)
}

// Compose applies an ordered list of transforms, threading the output pair of
// each transform into the next. No transform is skipped or reordered.
//
// The first error aborts the chain and is returned unchanged, with no partial
// result.
type Compose []Transform

// Apply implements Transform.
func (c Compose) Apply(img image.Image, target Target) (image.Image, Target, error) {
	var err error
	for _, t := range c {
		img, target, err = t.Apply(img, target)
		if err != nil {
			return nil, Target{}, err
		}
	}
	return img, target, nil
}
