package canvas

import (
	"image"
	"image/color"
	stddraw "image/draw"

	"golang.org/x/image/draw"
)

// ResizeAndPad scales src uniformly so it fits entirely inside the target
// format, centers it on a transparent canvas of the exact target dimensions,
// and returns the composite along with the rectangle the content occupies.
// The content rectangle is what a mask must be aligned against. Source pixels
// are never cropped, and the uniform scale may upsample or downsample as the
// fit dictates.
func ResizeAndPad(src image.Image, target Format) (*image.NRGBA, image.Rectangle) {
	tw, th := target.Size()
	out := image.NewNRGBA(image.Rect(0, 0, tw, th))

	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw <= 0 || sh <= 0 {
		return out, image.Rectangle{}
	}

	scale := min(float64(tw)/float64(sw), float64(th)/float64(sh))
	nw := int(float64(sw) * scale)
	nh := int(float64(sh) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	x := (tw - nw) / 2
	y := (th - nh) / 2
	content := image.Rect(x, y, x+nw, y+nh)
	draw.CatmullRom.Scale(out, content, src, b, draw.Over, nil)
	return out, content
}

// PadToSquare pads the shorter dimension symmetrically so the result is
// square, filling the new area with the given color. Returns src unchanged
// when it is already square.
func PadToSquare(src image.Image, fill color.Color) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}
	side := w
	if h > side {
		side = h
	}
	out := image.NewNRGBA(image.Rect(0, 0, side, side))
	stddraw.Draw(out, out.Bounds(), image.NewUniform(fill), image.Point{}, stddraw.Src)
	x := (side - w) / 2
	y := (side - h) / 2
	stddraw.Draw(out, image.Rect(x, y, x+w, y+h), src, b.Min, stddraw.Over)
	return out
}
