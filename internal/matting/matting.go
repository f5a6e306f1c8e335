// Package matting converts opaque source images into images with
// transparency using a per-pixel color threshold classifier. The classifier
// is intentionally simple: no spatial smoothing, no edge correction, no
// connected-component constraint. A pixel is classified independently of
// its neighbors, which keeps results fast and deterministic at the cost of
// punching holes inside a subject whose interior matches the threshold.
package matting

import (
	"fmt"
	"image"

	"github.com/lehigh-university-libraries/stickerpress/internal/raster"
)

// Mode selects which background color family is keyed out.
type Mode string

const (
	// ModeNone leaves every pixel's alpha unchanged.
	ModeNone Mode = "none"
	// ModeWhite clears alpha where all three channels exceed the threshold.
	ModeWhite Mode = "white"
	// ModeBlack clears alpha where all three channels are below the threshold.
	ModeBlack Mode = "black"
)

// ParseMode validates a mode string from a flag or request parameter.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNone, ModeWhite, ModeBlack:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid matting mode %q (must be none, white, or black)", s)
}

// Settings is the last-applied matting configuration for a sticker. It is
// persisted alongside the item so a re-opened touch-up session starts from
// the last automatic result.
type Settings struct {
	Mode      Mode  `json:"mode" yaml:"mode"`
	Threshold uint8 `json:"threshold" yaml:"threshold"`
}

// Apply classifies every pixel of src and returns a new buffer with the
// background keyed out. src is never modified, so Apply can be re-invoked
// with different settings starting always from the original decoded pixels.
func Apply(src *image.NRGBA, mode Mode, threshold uint8) *image.NRGBA {
	dst := raster.Clone(src)
	if mode == ModeNone {
		return dst
	}
	t := threshold
	for i := 0; i < len(dst.Pix); i += 4 {
		r, g, b := dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2]
		switch mode {
		case ModeWhite:
			if r > t && g > t && b > t {
				dst.Pix[i+3] = 0
			}
		case ModeBlack:
			if r < t && g < t && b < t {
				dst.Pix[i+3] = 0
			}
		}
	}
	return dst
}
