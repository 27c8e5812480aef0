package detaug

// TFRecord object detection specific functionality.

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"os"

	"github.com/golang/protobuf/proto"
	"github.com/ryszard/tfutils/go/example"
	"github.com/ryszard/tfutils/go/tfrecord"
	"github.com/ryszard/tfutils/proto/tensorflow/core/example" // package tensorflow
)

// TFFeatureMap maps feature names to their values. Values must be convertible
// to tensorflow.Feature.
type TFFeatureMap map[string]interface{}

// Sample is one augmented image/target pair to serialize.
type Sample struct {
	Image  image.Image
	Target Target
	Name   string // Source identifier, stored as the filename and source id.
}

// toTFFeatures converts a sample to the standard object detection feature
// keys. The image is re-encoded as JPEG and the box coordinates are
// normalized to [0, 1] by the image dimensions.
func toTFFeatures(s Sample, jpegQuality int) (TFFeatureMap, error) {
	if s.Image == nil {
		return nil, fmt.Errorf("sample %q has no image", s.Name)
	}

	bounds := s.Image.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("sample %q has an empty image", s.Name)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, s.Image, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode the image for %q: %v", s.Name, err)
	}

	// Prepare the feature map for the per file data.
	f := make(TFFeatureMap, 16)
	f["image/height"] = height
	f["image/width"] = width
	f["image/filename"] = s.Name
	f["image/source_id"] = s.Name
	f["image/encoded"] = buf.Bytes()
	f["image/format"] = "jpeg"

	// Prepare the per object data.
	numBoxes := len(s.Target.Boxes)
	xmins := make([]float32, numBoxes)
	ymins := make([]float32, numBoxes)
	xmaxs := make([]float32, numBoxes)
	ymaxs := make([]float32, numBoxes)
	for i, b := range s.Target.Boxes {
		xmins[i] = float32(b[0]) / float32(width)
		ymins[i] = float32(b[1]) / float32(height)
		xmaxs[i] = float32(b[2]) / float32(width)
		ymaxs[i] = float32(b[3]) / float32(height)
	}
	f["image/object/bbox/xmin"] = xmins
	f["image/object/bbox/ymin"] = ymins
	f["image/object/bbox/xmax"] = xmaxs
	f["image/object/bbox/ymax"] = ymaxs
	f["image/object/class/label"] = append([]int64(nil), s.Target.Labels...)

	return f, nil
}

// WriteTFRecord serialises the samples and writes them, one tensorflow.Example
// per sample, to a single TFRecord file at path.
//
// Samples that cannot be converted are logged and skipped.
func WriteTFRecord(path string, samples []Sample, jpegQuality int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("conversion to TensorFlow Example failed: %v", e)
		}
	}()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create the TFRecord file %q: %v", path, err)
	}
	defer closeWithErrCheck(f, &err)

	for _, s := range samples {
		features, err := toTFFeatures(s, jpegQuality)
		if err != nil {
			log.Printf("Failed to convert %q: %v", s.Name, err)
			continue
		}
		tfExample := example.New(features)

		if err := writeTFRecordExample(f, tfExample); err != nil {
			return fmt.Errorf("failed to write example %q: %v", s.Name, err)
		}
	}

	return nil
}

// writeTFRecordExample serialises the example and writes it as a TFRecord to w.
func writeTFRecordExample(w io.Writer, e *tensorflow.Example) error {
	enc, err := proto.Marshal(e)
	if err != nil {
		return err
	}

	return tfrecord.Write(w, enc)
}
