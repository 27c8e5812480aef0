package detaug

// Tensor conversion of images for model input.

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Tensor is a channel-first float32 representation of an image with values
// scaled from [0, 255] to [0, 1], laid out as
// Data[(c*Height+y)*Width + x] for channel c and pixel (x, y).
//
// Tensor implements image.Image by reconstructing colors from the float data,
// so a pipeline can carry it in place of the decoded image after ToTensor.
type Tensor struct {
	Data     []float32
	Channels int
	Height   int
	Width    int
}

// Value returns the tensor value for channel c at pixel (x, y).
func (t *Tensor) Value(c, y, x int) float32 {
	return t.Data[(c*t.Height+y)*t.Width+x]
}

// ColorModel implements image.Image.
func (t *Tensor) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (t *Tensor) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width, t.Height)
}

// At implements image.Image by scaling the channel values back to [0, 255].
func (t *Tensor) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(t.Bounds())) {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: uint8(t.Value(0, y, x)*255 + 0.5),
		G: uint8(t.Value(1, y, x)*255 + 0.5),
		B: uint8(t.Value(2, y, x)*255 + 0.5),
		A: 255,
	}
}

// ToTensor deterministically replaces the image with its Tensor form
// (3 channels, channel first). The target passes through unchanged.
type ToTensor struct{}

// Apply implements Transform.
func (ToTensor) Apply(img image.Image, target Target) (image.Image, Target, error) {
	if img == nil {
		return nil, Target{}, fmt.Errorf("cannot convert a nil image to a tensor")
	}

	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	t := &Tensor{
		Data:     make([]float32, 3*height*width),
		Channels: 3,
		Height:   height,
		Width:    width,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := nrgba.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				t.Data[(c*height+y)*width+x] = float32(nrgba.Pix[off+c]) / 255
			}
		}
	}

	return t, target, nil
}
