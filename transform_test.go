package detaug

import (
	"fmt"
	"image"
	"testing"
)

// failingTransform always returns its error.
type failingTransform struct {
	err error
}

func (f failingTransform) Apply(img image.Image, target Target) (image.Image, Target, error) {
	return nil, Target{}, f.err
}

// countingTransform counts its invocations and passes the pair through.
type countingTransform struct {
	calls int
}

func (c *countingTransform) Apply(img image.Image, target Target) (image.Image, Target, error) {
	c.calls++
	return img, target, nil
}

// A full pipeline: normalize, flip deterministically, convert to a tensor.
func TestComposePipeline(t *testing.T) {
	const width, height = 4, 4
	img := newTestImage(width, height)

	anns := []Annotation{
		{BBox: [4]float64{0, 1, 2, 2}, CategoryID: 6, ImageID: 3},
	}

	hflip := NewRandomHorizontalFlip(1, nil)
	hflip.draw = fixedDraw(0)

	pipeline := Compose{ToDetectionFormat{}, hflip, ToTensor{}}

	outImg, target, err := pipeline.Apply(img, NewTarget(anns...))
	if err != nil {
		t.Fatalf("Apply returned an error: %v", err)
	}

	if _, ok := outImg.(*Tensor); !ok {
		t.Errorf("Expected a *Tensor image at the end of the pipeline, got %T", outImg)
	}

	// [0, 1, 2, 3] normalized, then flipped at width 4: [4-2, 1, 4-0, 3].
	wantBoxes := []Box{{2, 1, 4, 3}}
	if !boxesEqual(target.Boxes, wantBoxes, 1e-9) {
		t.Errorf("Expected boxes %v, got %v", wantBoxes, target.Boxes)
	}

	if !int64sEqual(target.Labels, []int64{6}) || !int64sEqual(target.ImageID, []int64{3}) {
		t.Errorf("Expected labels [6] and image id [3], got %v and %v",
			target.Labels, target.ImageID)
	}
}

func TestComposeErrorPropagation(t *testing.T) {
	wantErr := fmt.Errorf("boom")
	after := &countingTransform{}
	pipeline := Compose{&countingTransform{}, failingTransform{err: wantErr}, after}

	_, _, err := pipeline.Apply(newTestImage(2, 2), Target{})
	if err != wantErr {
		t.Fatalf("Expected the error to propagate unchanged, got %v", err)
	}
	if after.calls != 0 {
		t.Errorf("Expected no transforms to run after the failure, got %d calls", after.calls)
	}
}

func TestComposeEmpty(t *testing.T) {
	img := newTestImage(2, 2)
	target := normalizedTarget([]Box{{0, 0, 1, 1}}, []int64{1}, 1)

	outImg, out, err := Compose{}.Apply(img, target)
	if err != nil {
		t.Fatalf("Apply returned an error: %v", err)
	}
	if outImg != image.Image(img) || !boxesEqual(out.Boxes, target.Boxes, 0) {
		t.Error("Expected the pair to pass through an empty pipeline unchanged")
	}
}
