package detaug

// Deterministic resizing with paired box coordinate scaling.

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Resize resamples the image so that its longer and shorter sides match the
// configured lengths and scales all box coordinates by the same width and
// height factors. Either side may be zero to derive it from the aspect ratio;
// with both zero the transform is a no-op.
//
// The same ordering requirement as for the flips applies: the target must
// already be in the form produced by ToDetectionFormat.
type Resize struct {
	LongerSide  int
	ShorterSide int
	Downsample  imaging.ResampleFilter // Filter used when shrinking the image.
	Upsample    imaging.ResampleFilter // Filter used when growing the image.
}

// NewResize creates a Resize with the default filters: box sampling for
// downscaling and linear interpolation for upscaling.
func NewResize(longerSide, shorterSide int) *Resize {
	return &Resize{
		LongerSide:  longerSide,
		ShorterSide: shorterSide,
		Downsample:  imaging.Box,
		Upsample:    imaging.Linear,
	}
}

// ResampleFilterByName returns the imaging resampling filter for a
// configuration name.
func ResampleFilterByName(name string) (imaging.ResampleFilter, error) {
	switch name {
	case "nearest":
		return imaging.NearestNeighbor, nil
	case "box":
		return imaging.Box, nil
	case "linear":
		return imaging.Linear, nil
	case "gaussian":
		return imaging.Gaussian, nil
	case "lanczos":
		return imaging.Lanczos, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown resampling filter %q", name)
}

// Apply implements Transform.
func (r *Resize) Apply(img image.Image, target Target) (image.Image, Target, error) {
	if r.LongerSide <= 0 && r.ShorterSide <= 0 {
		return img, target, nil
	}

	resized, scaleWidth, scaleHeight := r.resize(img)

	out := target.clone()
	for i := range out.Boxes {
		for j := 0; j < 4; j++ {
			if j&1 == 0 {
				out.Boxes[i][j] *= scaleWidth
			} else {
				out.Boxes[i][j] *= scaleHeight
			}
		}
	}

	return resized, out, nil
}

// resize resamples img to match the longer and shorter sides (one may be 0)
// and returns the result along with the width and height scale factors.
func (r *Resize) resize(img image.Image) (resized image.Image, scaleWidth, scaleHeight float64) {
	imgBounds := img.Bounds()
	imgWidth := imgBounds.Dx()
	imgHeight := imgBounds.Dy()

	imgLonger := imgWidth
	imgShorter := imgHeight
	isLandscape := true
	if imgHeight > imgWidth {
		imgLonger = imgHeight
		imgShorter = imgWidth
		isLandscape = false
	}

	// Calculate the target dimensions.
	longerSide := r.LongerSide
	shorterSide := r.ShorterSide
	if longerSide <= 0 {
		longerSide = int(math.Round(float64(shorterSide) * (float64(imgLonger) / float64(imgShorter))))
	} else if shorterSide <= 0 {
		shorterSide = int(math.Round(float64(longerSide) * (float64(imgShorter) / float64(imgLonger))))
	}

	// Select the filter based on the direction of the rescaling operation.
	var filter imaging.ResampleFilter
	if longerSide*shorterSide < imgWidth*imgHeight {
		filter = r.Downsample
	} else {
		filter = r.Upsample
	}

	// Resize.
	if isLandscape {
		resized = imaging.Resize(img, longerSide, shorterSide, filter)
		scaleWidth = float64(longerSide) / float64(imgLonger)
		scaleHeight = float64(shorterSide) / float64(imgShorter)
	} else { // Portrait.
		resized = imaging.Resize(img, shorterSide, longerSide, filter)
		scaleWidth = float64(shorterSide) / float64(imgShorter)
		scaleHeight = float64(longerSide) / float64(imgLonger)
	}

	return resized, scaleWidth, scaleHeight
}
