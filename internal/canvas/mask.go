package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Rect is a normalized rectangle with coordinates in [0,1] relative to the
// canvas it will be rendered on.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Clamp returns the rectangle intersected with the unit square, so a bad
// zone can never paint outside the canvas.
func (r Rect) Clamp() Rect {
	x0 := clamp01(r.X)
	y0 := clamp01(r.Y)
	x1 := clamp01(r.X + r.W)
	y1 := clamp01(r.Y + r.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ProtectMask renders a PNG mask of the given pixel size: fully transparent
// background with each zone filled opaque black. Opaque marks protected
// (do-not-edit) area; transparent area stays editable. Returns nil bytes when
// there are no zones, since the API call should then omit the mask entirely.
func ProtectMask(width, height int, zones []Rect) ([]byte, error) {
	if len(zones) == 0 {
		return nil, nil
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: invalid mask size %dx%d", width, height)
	}
	mask := image.NewNRGBA(image.Rect(0, 0, width, height))
	opaque := image.NewUniform(color.NRGBA{A: 0xFF})
	for _, zone := range zones {
		z := zone.Clamp()
		px := image.Rect(
			int(z.X*float64(width)),
			int(z.Y*float64(height)),
			int((z.X+z.W)*float64(width)),
			int((z.Y+z.H)*float64(height)),
		)
		draw.Draw(mask, px, opaque, image.Point{}, draw.Src)
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, mask); err != nil {
		return nil, fmt.Errorf("canvas: encode mask: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
