package canvas

import "math"

// Format is one of the three canvas presets the generation API accepts.
type Format int

const (
	FormatSquare Format = iota
	FormatPortrait
	FormatLandscape
)

// Size returns the pixel dimensions of the format.
func (f Format) Size() (width, height int) {
	switch f {
	case FormatPortrait:
		return 1024, 1536
	case FormatLandscape:
		return 1536, 1024
	default:
		return 1024, 1024
	}
}

// String returns the "WxH" form used by the API's size parameter.
func (f Format) String() string {
	switch f {
	case FormatPortrait:
		return "1024x1536"
	case FormatLandscape:
		return "1536x1024"
	default:
		return "1024x1024"
	}
}

// Ratio returns the user-facing aspect ratio string for the format, the
// inverse of FormatForAspectRatio.
func (f Format) Ratio() string {
	switch f {
	case FormatPortrait:
		return "2:3"
	case FormatLandscape:
		return "3:2"
	default:
		return "1:1"
	}
}

// BestFormat picks the canvas whose aspect ratio is closest to the source
// image's. Ties favor square.
func BestFormat(width, height int) Format {
	if width <= 0 || height <= 0 {
		return FormatSquare
	}
	a := float64(width) / float64(height)
	dS := math.Abs(a - 1.0)
	dP := math.Abs(a - 1024.0/1536.0)
	dL := math.Abs(a - 1536.0/1024.0)
	if dS <= math.Min(dP, dL) {
		return FormatSquare
	}
	if dP < dL {
		return FormatPortrait
	}
	return FormatLandscape
}

// FormatForAspectRatio maps a user-facing aspect ratio string onto a canvas
// preset. Unknown ratios fall back to portrait, the app's default output shape.
func FormatForAspectRatio(ratio string) Format {
	switch ratio {
	case "1:1":
		return FormatSquare
	case "3:2":
		return FormatLandscape
	case "2:3":
		return FormatPortrait
	default:
		return FormatPortrait
	}
}
