// Package raster provides the pixel-buffer primitives the editor and the
// matting pipeline are built on. All buffers are *image.NRGBA with
// zero-origin bounds so that (x, y) maps directly to Pix offsets.
package raster

import (
	"image"
	"image/draw"
)

// ToNRGBA converts any image to an NRGBA buffer with bounds anchored at
// (0, 0). The input is never aliased; callers own the result.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Clone returns a deep copy of the buffer.
func Clone(img *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(img.Bounds())
	copy(dst.Pix, img.Pix)
	return dst
}

// Transparent returns a fully transparent buffer of the given size.
func Transparent(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Equal reports whether two buffers have identical bounds and pixels.
func Equal(a, b *image.NRGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	if len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

// EraseCircle sets alpha to zero inside a circular brush of the given
// diameter centered at (cx, cy) in canvas coordinates.
func EraseCircle(img *image.NRGBA, cx, cy, diameter float64) {
	forEachInCircle(img, cx, cy, diameter, func(off int) {
		img.Pix[off+3] = 0
	})
}

// RestoreCircle overwrites pixels inside the circular brush with the
// corresponding region of src. src must have the same dimensions as dst;
// this undoes both matting and prior erasure inside the brush.
func RestoreCircle(dst, src *image.NRGBA, cx, cy, diameter float64) {
	if dst.Bounds() != src.Bounds() {
		return
	}
	forEachInCircle(dst, cx, cy, diameter, func(off int) {
		copy(dst.Pix[off:off+4], src.Pix[off:off+4])
	})
}

func forEachInCircle(img *image.NRGBA, cx, cy, diameter float64, fn func(off int)) {
	r := diameter / 2
	if r <= 0 {
		return
	}
	b := img.Bounds()
	x0 := max(int(cx-r), b.Min.X)
	x1 := min(int(cx+r)+1, b.Max.X)
	y0 := max(int(cy-r), b.Min.Y)
	y1 := min(int(cy+r)+1, b.Max.Y)
	rr := r * r
	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy > rr {
				continue
			}
			fn(img.PixOffset(x, y))
		}
	}
}
