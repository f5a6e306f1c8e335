package matting

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lehigh-university-libraries/stickerpress/internal/raster"
)

func gradient() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(x*16 + y)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestApplyClassification(t *testing.T) {
	tests := []struct {
		name      string
		pixel     color.NRGBA
		mode      Mode
		threshold uint8
		wantAlpha uint8
	}{
		{"white removes bright pixel", color.NRGBA{250, 250, 250, 255}, ModeWhite, 200, 0},
		{"white keeps pixel at threshold", color.NRGBA{200, 200, 200, 255}, ModeWhite, 200, 255},
		{"white keeps pixel with one dark channel", color.NRGBA{250, 250, 10, 255}, ModeWhite, 200, 255},
		{"black removes dark pixel", color.NRGBA{5, 5, 5, 255}, ModeBlack, 50, 0},
		{"black keeps pixel at threshold", color.NRGBA{50, 50, 50, 255}, ModeBlack, 50, 255},
		{"black keeps pixel with one bright channel", color.NRGBA{5, 5, 240, 255}, ModeBlack, 50, 255},
		{"none keeps bright pixel", color.NRGBA{250, 250, 250, 255}, ModeNone, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
			src.SetNRGBA(0, 0, tt.pixel)
			got := Apply(src, tt.mode, tt.threshold)
			if a := got.NRGBAAt(0, 0).A; a != tt.wantAlpha {
				t.Errorf("alpha = %d, want %d", a, tt.wantAlpha)
			}
			// Color channels never change, only alpha.
			if c := got.NRGBAAt(0, 0); c.R != tt.pixel.R || c.G != tt.pixel.G || c.B != tt.pixel.B {
				t.Errorf("color channels changed: %+v", c)
			}
		})
	}
}

func TestApplyNoneIsIdentity(t *testing.T) {
	src := gradient()
	for _, threshold := range []uint8{0, 100, 255} {
		got := Apply(src, ModeNone, threshold)
		if diff := cmp.Diff(src.Pix, got.Pix); diff != "" {
			t.Errorf("threshold %d: pixels differ (-want +got):\n%s", threshold, diff)
		}
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	src := gradient()
	want := raster.Clone(src)
	Apply(src, ModeWhite, 10)
	if !raster.Equal(src, want) {
		t.Error("Apply mutated its source")
	}
}

// Result depends only on (mode, threshold) and the original pixels, never on
// prior matting calls, so edits are replayable in any order.
func TestApplyRederivationPurity(t *testing.T) {
	src := gradient()

	a1 := Apply(src, ModeWhite, 120)
	b1 := Apply(src, ModeWhite, 60)

	b2 := Apply(src, ModeWhite, 60)
	a2 := Apply(src, ModeWhite, 120)

	if !raster.Equal(a1, a2) || !raster.Equal(b1, b2) {
		t.Error("matting result depends on call order")
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"none", "white", "black"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q) = %v", s, err)
		}
	}
	if _, err := ParseMode("chroma"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
