// Package transform implements the geometric operations of the pipeline:
// grid slicing of a source sheet into candidate stickers and fit-to-box
// resizing with padding onto exact submission canvases.
package transform

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lehigh-university-libraries/stickerpress/internal/raster"
)

// CropGrid slices img into rows*cols cells in row-major order (row 0 left to
// right, then row 1, ...). Cell boundaries come from dividing the image
// dimensions by cols/rows; fractional boundaries are rounded per cell, so
// sub-pixel drift within a row is tolerated rather than corrected, but the
// cells always tile the full source.
func CropGrid(img image.Image, rows, cols int) ([]*image.NRGBA, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("invalid grid %dx%d (rows and cols must be at least 1)", rows, cols)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("cannot grid-crop an empty image")
	}

	cellW := float64(b.Dx()) / float64(cols)
	cellH := float64(b.Dy()) / float64(rows)

	out := make([]*image.NRGBA, 0, rows*cols)
	for r := 0; r < rows; r++ {
		y0 := b.Min.Y + int(math.Round(float64(r)*cellH))
		y1 := b.Min.Y + int(math.Round(float64(r+1)*cellH))
		for c := 0; c < cols; c++ {
			x0 := b.Min.X + int(math.Round(float64(c)*cellW))
			x1 := b.Min.X + int(math.Round(float64(c+1)*cellW))
			cell := imaging.Crop(img, image.Rect(x0, y0, x1, y1))
			out = append(out, cell)
		}
	}
	return out, nil
}

// ResizeToSpec scales img to fit inside a targetW x targetH canvas while
// keeping a transparent margin of padding pixels on every side. The scale is
// uniform (aspect ratio preserved) and the scaled content is centered on the
// full canvas. Identical inputs always produce identical output: the scale
// and centering offsets are pure functions of the source and target
// dimensions.
func ResizeToSpec(img image.Image, targetW, targetH, padding int) (*image.NRGBA, error) {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("cannot resize an empty image")
	}
	usableW := targetW - 2*padding
	usableH := targetH - 2*padding
	if usableW <= 0 || usableH <= 0 {
		return nil, fmt.Errorf("target %dx%d leaves no usable area with padding %d", targetW, targetH, padding)
	}

	scale := math.Min(float64(usableW)/float64(srcW), float64(usableH)/float64(srcH))
	drawW := int(math.Round(float64(srcW) * scale))
	drawH := int(math.Round(float64(srcH) * scale))
	if drawW < 1 {
		drawW = 1
	}
	if drawH < 1 {
		drawH = 1
	}

	scaled := imaging.Resize(img, drawW, drawH, imaging.Lanczos)
	canvas := raster.Transparent(targetW, targetH)
	return imaging.Paste(canvas, scaled, image.Pt((targetW-drawW)/2, (targetH-drawH)/2)), nil
}
