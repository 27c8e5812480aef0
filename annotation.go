package detaug

// COCO detection annotation input.

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
)

// Annotation is a single object annotation in COCO detection form.
type Annotation struct {
	BBox       [4]float64 `json:"bbox"` // Absolute min x, min y, width, height.
	CategoryID int64      `json:"category_id"`
	ImageID    int64      `json:"image_id"`
}

// DecodeAnnotations parses enc as either a JSON array of annotations or a
// single annotation object. A single object decodes to the same result as a
// one-element array containing it.
//
// Missing keys decode to their zero values and are not rejected here; invalid
// values surface the json error unchanged.
func DecodeAnnotations(enc []byte) ([]Annotation, error) {
	var anns []Annotation
	if err := json.Unmarshal(enc, &anns); err == nil {
		return anns, nil
	}

	var a Annotation
	if err := json.Unmarshal(enc, &a); err != nil {
		return nil, fmt.Errorf("failed to parse annotations: %v", err)
	}
	return []Annotation{a}, nil
}

// ReadAnnotations reads and parses annotations for one image from the file at
// path.
func ReadAnnotations(path string) ([]Annotation, error) {
	enc, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	anns, err := DecodeAnnotations(enc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse annotations from %q: %v", path, err)
	}
	return anns, nil
}
