package detaug

import (
	"image"
	"testing"
)

// newTestImage creates a white NRGBA image of the given size.
func newTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

// boxesEqual compares box slices with an epsilon tolerance.
func boxesEqual(a, b []Box, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		for j := 0; j < 4; j++ {
			if diff := a[i][j] - b[i][j]; diff > epsilon || diff < -epsilon {
				return false
			}
		}
	}
	return true
}

// int64sEqual compares int64 slices.
func int64sEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestToDetectionFormat(t *testing.T) {
	anns := []Annotation{
		{BBox: [4]float64{10, 20, 30, 40}, CategoryID: 3, ImageID: 7},
		{BBox: [4]float64{0, 0, 5, 5}, CategoryID: 1, ImageID: 7},
		{BBox: [4]float64{2.5, 1.5, 0.5, 2}, CategoryID: 12, ImageID: 7},
	}
	img := newTestImage(100, 100)

	outImg, target, err := ToDetectionFormat{}.Apply(img, NewTarget(anns...))
	if err != nil {
		t.Fatalf("Apply returned an error: %v", err)
	}

	if outImg != image.Image(img) {
		t.Error("Expected the image to pass through unchanged")
	}

	wantBoxes := []Box{
		{10, 20, 40, 60},
		{0, 0, 5, 5},
		{2.5, 1.5, 3, 3.5},
	}
	if !boxesEqual(target.Boxes, wantBoxes, 1e-9) {
		t.Errorf("Expected boxes %v, got %v", wantBoxes, target.Boxes)
	}

	wantLabels := []int64{3, 1, 12}
	if !int64sEqual(target.Labels, wantLabels) {
		t.Errorf("Expected labels %v, got %v", wantLabels, target.Labels)
	}

	if !int64sEqual(target.ImageID, []int64{7}) {
		t.Errorf("Expected image id [7], got %v", target.ImageID)
	}

	if target.Raw != nil {
		t.Errorf("Expected the raw annotations to be dropped, got %v", target.Raw)
	}
}

func TestToDetectionFormatEmpty(t *testing.T) {
	_, target, err := ToDetectionFormat{}.Apply(newTestImage(10, 10), NewTarget())
	if err != nil {
		t.Fatalf("Apply returned an error: %v", err)
	}

	if len(target.Boxes) != 0 || len(target.Labels) != 0 {
		t.Errorf("Expected zero-length boxes and labels, got %v and %v",
			target.Boxes, target.Labels)
	}
	if len(target.ImageID) != 0 {
		t.Errorf("Expected no image id without annotations, got %v", target.ImageID)
	}
}

// The image id is taken from the first annotation without a cross-check.
func TestToDetectionFormatMixedImageIDs(t *testing.T) {
	anns := []Annotation{
		{BBox: [4]float64{0, 0, 1, 1}, CategoryID: 1, ImageID: 5},
		{BBox: [4]float64{1, 1, 1, 1}, CategoryID: 2, ImageID: 9},
	}

	_, target, err := ToDetectionFormat{}.Apply(newTestImage(10, 10), NewTarget(anns...))
	if err != nil {
		t.Fatalf("Apply returned an error: %v", err)
	}

	if !int64sEqual(target.ImageID, []int64{5}) {
		t.Errorf("Expected the first annotation's image id [5], got %v", target.ImageID)
	}
}
