package matting

import (
	"fmt"
	"image"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Tunables for the border-sampling heuristic. The background of a sticker
// source almost always touches the image border, so the dominant border
// color is a good proxy for the color to key out.
const (
	suggestClusters  = 3
	minBorderSamples = 32
	thresholdMargin  = 12
)

// Suggest recommends matting settings for an image by clustering samples
// taken from its border and inspecting the dominant cluster's color. Bright
// dominant borders suggest white removal, dark ones black removal; anything
// in between yields ModeNone because a plain threshold would eat the
// subject. The recommendation is advisory: Apply remains a pure function of
// whatever settings the caller finally picks.
func Suggest(img image.Image) (Settings, error) {
	samples := borderSamples(img)
	if len(samples) == 0 {
		return Settings{}, fmt.Errorf("image has no pixels to sample")
	}

	var bg colorful.Color
	if len(samples) < minBorderSamples {
		// Too small to cluster meaningfully; fall back to the dominant
		// color of the whole image.
		c, ok := colorful.MakeColor(dominantcolor.Find(img))
		if !ok {
			return Settings{}, fmt.Errorf("dominant color extraction failed")
		}
		bg = c
	} else {
		dataset := make(clusters.Observations, 0, len(samples))
		for _, s := range samples {
			dataset = append(dataset, clusters.Coordinates{s.R, s.G, s.B})
		}
		km := kmeans.New()
		cc, err := km.Partition(dataset, min(suggestClusters, len(dataset)))
		if err != nil {
			return Settings{}, fmt.Errorf("border clustering failed: %w", err)
		}
		if len(cc) == 0 {
			return Settings{}, fmt.Errorf("border clustering produced no clusters")
		}
		best := cc[0]
		for _, c := range cc[1:] {
			if len(c.Observations) > len(best.Observations) {
				best = c
			}
		}
		bg = colorful.Color{R: best.Center[0], G: best.Center[1], B: best.Center[2]}.Clamped()
	}

	return settingsFor(bg), nil
}

func settingsFor(bg colorful.Color) Settings {
	lr, lg, lb := bg.LinearRgb()
	luma := 0.2126*lr + 0.7152*lg + 0.0722*lb

	switch {
	case luma >= 0.5:
		// Key out white: threshold just under the darkest channel of the
		// background so the whole background family clears.
		low := math.Min(bg.R, math.Min(bg.G, bg.B)) * 255
		t := int(low) - thresholdMargin
		return Settings{Mode: ModeWhite, Threshold: uint8(max(t, 128))}
	case luma <= 0.08:
		high := math.Max(bg.R, math.Max(bg.G, bg.B)) * 255
		t := int(high) + thresholdMargin
		return Settings{Mode: ModeBlack, Threshold: uint8(min(t, 127))}
	default:
		return Settings{Mode: ModeNone}
	}
}

type sample struct{ R, G, B float64 }

// borderSamples collects every pixel on the outermost ring of the image.
func borderSamples(img image.Image) []sample {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	push := func(out []sample, x, y int) []sample {
		r, g, bl, _ := img.At(x, y).RGBA()
		return append(out, sample{
			R: float64(r) / 65535.0,
			G: float64(g) / 65535.0,
			B: float64(bl) / 65535.0,
		})
	}
	out := make([]sample, 0, 2*w+2*h)
	for x := b.Min.X; x < b.Max.X; x++ {
		out = push(out, x, b.Min.Y)
		if h > 1 {
			out = push(out, x, b.Max.Y-1)
		}
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		out = push(out, b.Min.X, y)
		if w > 1 {
			out = push(out, b.Max.X-1, y)
		}
	}
	return out
}
