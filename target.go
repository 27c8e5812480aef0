package detaug

// The annotation target representation that is threaded through augmentation
// pipelines alongside the image.

// Box is an axis-aligned bounding box with absolute x1, y1, x2, y2 offsets
// from the top-left corner of the image.
type Box [4]float64

// Width is the object width from the box coordinates.
func (b Box) Width() float64 {
	return b[2] - b[0]
}

// Height is the object height from the box coordinates.
func (b Box) Height() float64 {
	return b[3] - b[1]
}

// Target is the annotation data for a single image.
//
// A Target starts with only Raw populated and is converted exactly once per
// pipeline invocation by ToDetectionFormat, which fills Boxes, Labels and
// ImageID and drops Raw. Boxes and Labels are parallel: Labels[i] is the
// category of Boxes[i], in the order the raw annotations were supplied.
type Target struct {
	Raw     []Annotation // Annotations not yet converted to the normalized form.
	Boxes   []Box        // One box per object, in min/max form.
	Labels  []int64      // Category id per object.
	ImageID []int64      // The id of the annotated image. Length 1 once normalized.
}

// NewTarget wraps one or more raw annotations in a Target ready for
// conversion by ToDetectionFormat.
func NewTarget(anns ...Annotation) Target {
	return Target{Raw: anns}
}

// clone returns a deep copy of t, so that transforms can update box
// coordinates without aliasing the slices of their input.
func (t Target) clone() Target {
	out := Target{}
	if t.Raw != nil {
		out.Raw = make([]Annotation, len(t.Raw))
		copy(out.Raw, t.Raw)
	}
	if t.Boxes != nil {
		out.Boxes = make([]Box, len(t.Boxes))
		copy(out.Boxes, t.Boxes)
	}
	if t.Labels != nil {
		out.Labels = make([]int64, len(t.Labels))
		copy(out.Labels, t.Labels)
	}
	if t.ImageID != nil {
		out.ImageID = make([]int64, len(t.ImageID))
		copy(out.ImageID, t.ImageID)
	}
	return out
}
