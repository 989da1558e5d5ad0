package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestBestFormat(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		want   Format
	}{
		{"square", 500, 500, FormatSquare},
		{"tall", 1000, 1500, FormatPortrait},
		{"wide", 1500, 1000, FormatLandscape},
		{"slightly wide ties to square", 510, 500, FormatSquare},
		{"zero width", 0, 100, FormatSquare},
		{"zero height", 100, 0, FormatSquare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestFormat(tt.w, tt.h); got != tt.want {
				t.Fatalf("BestFormat(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestFormatForAspectRatio(t *testing.T) {
	tests := []struct {
		ratio string
		want  Format
	}{
		{"1:1", FormatSquare},
		{"3:2", FormatLandscape},
		{"2:3", FormatPortrait},
		{"16:9", FormatPortrait},
		{"", FormatPortrait},
	}
	for _, tt := range tests {
		if got := FormatForAspectRatio(tt.ratio); got != tt.want {
			t.Fatalf("FormatForAspectRatio(%q) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestFormatRatioRoundTrips(t *testing.T) {
	for _, f := range []Format{FormatSquare, FormatPortrait, FormatLandscape} {
		if got := FormatForAspectRatio(f.Ratio()); got != f {
			t.Fatalf("FormatForAspectRatio(%q) = %v, want %v", f.Ratio(), got, f)
		}
	}
}

func TestFormatString(t *testing.T) {
	if got := FormatPortrait.String(); got != "1024x1536" {
		t.Fatalf("portrait = %q, want 1024x1536", got)
	}
	if got := FormatLandscape.String(); got != "1536x1024" {
		t.Fatalf("landscape = %q, want 1536x1024", got)
	}
	if got := FormatSquare.String(); got != "1024x1024" {
		t.Fatalf("square = %q, want 1024x1024", got)
	}
}

func TestResizeAndPadContainsWholeSource(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 300))
	out, content := ResizeAndPad(src, FormatSquare)

	if out.Bounds().Dx() != 1024 || out.Bounds().Dy() != 1024 {
		t.Fatalf("output = %v, want 1024x1024", out.Bounds())
	}
	// 400x300 scaled by 1024/400 = 2.56 -> 1024x768, centered vertically.
	if content.Dx() != 1024 || content.Dy() != 768 {
		t.Fatalf("content = %v, want 1024x768", content)
	}
	if content.Min.Y != (1024-768)/2 {
		t.Fatalf("content not centered: %v", content)
	}

	// Padding stays transparent.
	if _, _, _, a := out.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("corner alpha = %d, want transparent", a)
	}
}

func TestPadToSquare(t *testing.T) {
	square := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	if got := PadToSquare(square, color.White); got != image.Image(square) {
		t.Fatalf("square input should be returned unchanged")
	}

	wide := image.NewNRGBA(image.Rect(0, 0, 100, 40))
	out := PadToSquare(wide, color.White)
	b := out.Bounds()
	if b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("padded = %v, want 100x100", b)
	}
	if r, g, bl, _ := out.At(0, 0).RGBA(); r != 0xFFFF || g != 0xFFFF || bl != 0xFFFF {
		t.Fatalf("fill corner = %d %d %d, want white", r, g, bl)
	}
}

func TestProtectMaskEmptyZones(t *testing.T) {
	data, err := ProtectMask(1024, 1024, nil)
	if err != nil {
		t.Fatalf("ProtectMask() error = %v", err)
	}
	if data != nil {
		t.Fatalf("no zones should yield no mask, got %d bytes", len(data))
	}
}

func TestProtectMaskPolarity(t *testing.T) {
	data, err := ProtectMask(100, 100, []Rect{{X: 0.5, Y: 0.5, W: 0.5, H: 0.5}})
	if err != nil {
		t.Fatalf("ProtectMask() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode mask: %v", err)
	}
	if _, _, _, a := img.At(10, 10).RGBA(); a != 0 {
		t.Fatalf("editable area alpha = %d, want transparent", a)
	}
	if _, _, _, a := img.At(75, 75).RGBA(); a == 0 {
		t.Fatalf("protected area should be opaque")
	}
}

func TestProtectMaskClampsOutOfRangeZones(t *testing.T) {
	data, err := ProtectMask(50, 50, []Rect{{X: -1, Y: -1, W: 5, H: 5}})
	if err != nil {
		t.Fatalf("ProtectMask() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode mask: %v", err)
	}
	// The whole canvas ends up protected, but nothing panics or overflows.
	if _, _, _, a := img.At(25, 25).RGBA(); a == 0 {
		t.Fatalf("clamped full-canvas zone should cover the center")
	}
}

func TestRectClamp(t *testing.T) {
	r := Rect{X: 0.9, Y: 0.9, W: 0.5, H: 0.5}.Clamp()
	if r.X+r.W > 1.0001 || r.Y+r.H > 1.0001 {
		t.Fatalf("Clamp() = %+v, escapes unit square", r)
	}
}
