// Command stereocost computes a diffusion-weighted matching-cost matrix for
// one scanline of a rectified stereo pair and writes it out as a PNG, dark
// where pixel pairs match well.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gostereo/diffuse"
	"github.com/gostereo/diffuse/luvrange"
	"github.com/gostereo/diffuse/tonemap"

	// Decoders beyond png, which is imported for encoding already.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func main() {
	var (
		leftPath  = flag.String("left", "", "left image (png, jpeg, bmp, tiff, webp)")
		rightPath = flag.String("right", "", "right image")
		scanline  = flag.Int("y", -1, "scanline to score (-1 for the middle)")
		steps     = flag.Int("steps", 4, "diffusion walk radius")
		distCap   = flag.Float64("cap", 25, "distance cap")
		distMult  = flag.Float64("mult", 1, "distance multiplier")
		scale     = flag.Float64("scale", 1, "downscale factor applied to both images")
		output    = flag.String("output", "costs.png", "output file")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *leftPath == "" || *rightPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		diffuse.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	left, err := loadRangeImage(*leftPath, *scale)
	if err != nil {
		log.Fatalf("load left: %v", err)
	}
	right, err := loadRangeImage(*rightPath, *scale)
	if err != nil {
		log.Fatalf("load right: %v", err)
	}

	m, err := diffuse.NewMatcher(left, right, luvrange.EuclideanMetric{},
		diffuse.WithSteps(*steps),
		diffuse.WithDistanceCap(*distCap),
		diffuse.WithMatcherDistanceMultiplier(*distMult))
	if err != nil {
		log.Fatalf("matcher: %v", err)
	}
	defer m.Close()

	y := *scanline
	if y < 0 {
		y = left.Height() / 2
	}
	costs, err := m.CostMatrix(y)
	if err != nil {
		log.Fatalf("cost matrix: %v", err)
	}

	out := tonemap.Scaler{Mode: tonemap.ModeMax}.Apply(tonemap.FromMatrix(costs))
	if err := savePNG(*output, out); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("Cost matrix for scanline %d saved to %s (%dx%d)\n",
		y, *output, left.Width(), right.Width())
}

// loadRangeImage decodes an image file and converts it to a colour-range
// image, optionally downscaled.
func loadRangeImage(path string, scale float64) (*luvrange.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if scale > 0 && scale != 1 {
		b := img.Bounds()
		w := int(float64(b.Dx())*scale + 0.5)
		h := int(float64(b.Dy())*scale + 0.5)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %g collapses %s to nothing", scale, path)
		}
		return luvrange.FromImageScaled(img, w, h), nil
	}
	return luvrange.FromImage(img), nil
}

// savePNG writes img to path.
func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return png.Encode(f, img)
}
