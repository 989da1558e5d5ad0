package prompt

import (
	"image"

	"homedesign/internal/canvas"
	"homedesign/internal/design"
)

// Context is the mutable aggregate describing one design-generation intent.
// It accumulates the user's selections across the screen flow and is owned by
// exactly one flow at a time; it is not safe for concurrent mutation.
type Context struct {
	Option        design.Option
	Room          design.Room   // valid only when Option is interior
	TypeSelection string        // free-text subject for the other options
	Style         design.Style  // nil until selected
	Palette       design.Palette
	AspectRatio   string
	Materials     []string
	Lighting      string
	Realism       string
	Negative      string
	BaseImage     image.Image
	ReferenceImage image.Image
	EmptyRoom     bool
	Policy        EditPolicy

	ProtectedObjects []string
	NoEditZones      []canvas.Rect
}

// NewContext returns a context with the fixed defaults applied.
func NewContext() Context {
	return Context{
		AspectRatio: "2:3",
		Realism:     "photorealistic",
		Negative:    "text, watermark, logo, blurry, lowres",
		Policy:      DefaultEditPolicy(),
	}
}

// HasContentImage reports whether a base photo is attached.
func (c *Context) HasContentImage() bool {
	return c.BaseImage != nil
}

// HasReferenceImage reports whether a style-reference photo is attached.
func (c *Context) HasReferenceImage() bool {
	return c.ReferenceImage != nil
}
