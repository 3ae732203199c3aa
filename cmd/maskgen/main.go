// Maskgen precomputes an opacity mask for an image: it blurs the alpha
// channel, thresholds it, and emits run-length rectangles as JSON for use
// with pointermask.RegisterOptions.Mask.
//
// Usage:
//
//	maskgen -in sprite.png -out sprite.mask.json [-blur 1.5] [-threshold 0.5]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/phanxgames/pointermask"
)

func main() {
	in := flag.String("in", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
	out := flag.String("out", "", "output JSON file (default stdout)")
	blur := flag.Float64("blur", 1.0, "gaussian blur sigma applied before thresholding (0 disables)")
	threshold := flag.Float64("threshold", 0.5, "alpha threshold in [0,1]; pixels strictly above are opaque")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	img, err := openImage(*in)
	if err != nil {
		log.Fatalf("maskgen: %v", err)
	}

	if *blur > 0 {
		img = imaging.Blur(img, *blur)
	}

	mask := pointermask.BuildMask(img, *threshold)

	data, err := json.MarshalIndent(mask, "", "  ")
	if err != nil {
		log.Fatalf("maskgen: encode mask: %v", err)
	}
	data = append(data, '\n')

	if *out == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("maskgen: %v", err)
		}
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("maskgen: %v", err)
	}
	fmt.Fprintf(os.Stderr, "maskgen: %s: %dx%d, %d rects\n",
		*out, mask.Width, mask.Height, len(mask.Rects))
}

func openImage(path string) (image.Image, error) {
	if pointermask.Classify(path).Extension == "webp" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return webp.Decode(f)
	}
	return imaging.Open(path)
}
