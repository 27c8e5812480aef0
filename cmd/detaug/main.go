// Applies paired image/annotation augmentations (flips, grayscale, resizing)
// to a single image and its COCO detection annotations, for inspecting and
// exporting Faster R-CNN training inputs.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sensorable/detaug"
)

var (
	imagePath    string // The input image.
	labelPath    string // The input annotation file (COCO detection JSON).
	imageOutPath string // The output path for the augmented image.
	labelOutPath string // The optional output path for a TFRecord example.

	pHorizontalFlip float64 // The probability of the horizontal flip.
	pVerticalFlip   float64 // The probability of the vertical flip.
	pGrayscale      float64 // The probability of the grayscale conversion.
	randomSeed      int64   // The seed for the random draws (0 seeds from the clock).

	resizeLonger       int    // The target length for the longer side of the image.
	resizeShorter      int    // The target length for the shorter side of the image.
	downsamplingFilter string // The algorithm to use when downsampling.
	upsamplingFilter   string // The algorithm to use when upsampling.
	jpegQuality        int    // The JPEG quality for JPEG outputs.
)

func init() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", filepath.Base(os.Args[0]))
		_, _ = fmt.Fprintln(os.Stderr,
			"  required:\t-image <file> -labels <file> -image-out <file>")
		_, _ = fmt.Fprintln(os.Stderr,
			"  tfrecord output:\t-labels-out <file>")
		_, _ = fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}

	printUsageAndExit := func(msg ...interface{}) {
		log.Print(msg...)
		flag.Usage()
		os.Exit(1)
	}

	// Path arguments.
	flag.StringVar(&imagePath, "image", imagePath,
		"The `path` to the input image")
	flag.StringVar(&labelPath, "labels", labelPath,
		"The `path` to the annotation input file (one COCO annotation object or an array of them)")
	flag.StringVar(&imageOutPath, "image-out", imageOutPath,
		"The `path` to write the augmented image to")
	flag.StringVar(&labelOutPath, "labels-out", labelOutPath,
		"The `path` to write a TFRecord example for the augmented pair to (optional)")

	// Transform arguments.
	flag.Float64Var(&pHorizontalFlip, "p-hflip", 0.5,
		"The `probability` of flipping the image and boxes horizontally; range [0.0, 1.0]")
	flag.Float64Var(&pVerticalFlip, "p-vflip", 0,
		"The `probability` of flipping the image and boxes vertically; range [0.0, 1.0]")
	flag.Float64Var(&pGrayscale, "p-grayscale", 0.1,
		"The `probability` of converting the image to grayscale; range [0.0, 1.0]")
	flag.Int64Var(&randomSeed, "seed", 0,
		"The `seed` for the random draws; 0 seeds from the current time")

	// Image processing arguments.
	flag.IntVar(&resizeLonger, "resize-longer", resizeLonger,
		"The target `length` for the longer side of the image (zero to keep aspect ratio)")
	flag.IntVar(&resizeShorter, "resize-shorter", resizeShorter,
		"The target `length` for the shorter side of the image (zero to keep aspect ratio)")
	flag.StringVar(&downsamplingFilter, "downsample-filter", "box",
		"The filter to use when downsampling an image {nearest, box, linear, gaussian, lanczos}")
	flag.StringVar(&upsamplingFilter, "upsample-filter", "linear",
		"The filter to use when upsampling an image {nearest, box, linear, gaussian, lanczos}")
	flag.IntVar(&jpegQuality, "jpeg-quality", 90,
		"The quality to use when encoding JPEGs [1, 100]")

	// Parse and validate flags.
	flag.Parse()

	if imagePath == "" || labelPath == "" || imageOutPath == "" {
		printUsageAndExit("Missing image or label path argument")
	}

	for _, p := range []float64{pHorizontalFlip, pVerticalFlip, pGrayscale} {
		if p < 0 || p > 1 {
			printUsageAndExit("Invalid probability, must be in [0.0, 1.0]: ", p)
		}
	}

	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = 92
		log.Print("Invalid JPEG quality, setting it to ", jpegQuality)
	}

	// Clean path arguments.
	imagePath = filepath.Clean(imagePath)
	labelPath = filepath.Clean(labelPath)
	imageOutPath = filepath.Clean(imageOutPath)
	if imagePath == imageOutPath {
		printUsageAndExit("The image input and output paths cannot be identical")
	}
	if labelOutPath != "" {
		labelOutPath = filepath.Clean(labelOutPath)
		if labelPath == labelOutPath {
			printUsageAndExit("The label input and output paths cannot be identical")
		}
	}
}

func main() {
	// Parse input.
	img, _, err := detaug.LoadImage(imagePath)
	if err != nil {
		log.Fatal("Failed to load the image: ", err)
	}
	anns, err := detaug.ReadAnnotations(labelPath)
	if err != nil {
		log.Fatal("Failed to parse the annotations: ", err)
	}

	seed := randomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Build the pipeline.
	pipeline := detaug.Compose{detaug.ToDetectionFormat{}}
	if resizeLonger > 0 || resizeShorter > 0 {
		resize := detaug.NewResize(resizeLonger, resizeShorter)
		if resize.Downsample, err = detaug.ResampleFilterByName(downsamplingFilter); err != nil {
			log.Fatal("Invalid -downsample-filter: ", err)
		}
		if resize.Upsample, err = detaug.ResampleFilterByName(upsamplingFilter); err != nil {
			log.Fatal("Invalid -upsample-filter: ", err)
		}
		pipeline = append(pipeline, resize)
	}
	pipeline = append(pipeline,
		detaug.NewRandomHorizontalFlip(pHorizontalFlip, rng),
		detaug.NewRandomVerticalFlip(pVerticalFlip, rng),
		detaug.NewRandomGrayscale(pGrayscale, rng),
	)

	// Apply it.
	augmented, target, err := pipeline.Apply(img, detaug.NewTarget(anns...))
	if err != nil {
		log.Fatal("Augmentation failed: ", err)
	}

	// Write the outputs.
	if err := detaug.SaveImage(imageOutPath, augmented, jpegQuality); err != nil {
		log.Fatal("Failed to save the augmented image: ", err)
	}

	if labelOutPath != "" {
		sample := detaug.Sample{Image: augmented, Target: target, Name: imageOutPath}
		if err := detaug.WriteTFRecord(labelOutPath, []detaug.Sample{sample}, jpegQuality); err != nil {
			log.Fatal("Failed to write the TFRecord output: ", err)
		}
	}

	log.Printf("Augmented %q with %d objects (seed %d)", imagePath, len(target.Boxes), seed)
}
