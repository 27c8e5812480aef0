package detaug

// Conversion of raw annotations into the normalized detection format.

import (
	"image"
)

// ToDetectionFormat converts the raw annotations of a target into the
// box/label form expected by Faster R-CNN style models: for each annotation
// the [x, y, width, height] bounding box becomes a Box with
// x2 = x + width and y2 = y + height, and the category ids are collected into
// Labels in the same order.
//
// The image id is taken from the first annotation only; all annotations for
// one image are assumed to share it and this is not checked. The image passes
// through unchanged.
type ToDetectionFormat struct{}

// Apply implements Transform.
func (ToDetectionFormat) Apply(img image.Image, target Target) (image.Image, Target, error) {
	out := Target{
		Boxes:  make([]Box, len(target.Raw)),
		Labels: make([]int64, len(target.Raw)),
	}
	if len(target.Raw) > 0 {
		out.ImageID = []int64{target.Raw[0].ImageID}
	}

	for i, a := range target.Raw {
		minX, minY := a.BBox[0], a.BBox[1]
		out.Boxes[i] = Box{minX, minY, minX + a.BBox[2], minY + a.BBox[3]}
		out.Labels[i] = a.CategoryID
	}

	return img, out, nil
}
