package prompt

// EditPolicy is the bundle of toggles controlling which preservation and
// permission clauses the compiler emits. It is pure configuration and never
// triggers any I/O of its own.
type EditPolicy struct {
	// Preserve
	PreserveLayout             bool
	PreserveCamera             bool
	PreserveLeftRight          bool
	ForbidMirrorFlip           bool
	PreserveFixedArchitecture  bool
	PreserveFurniturePositions bool

	// Physical scale/size locks
	PreserveScaleProportions bool
	ForbidSpaceResizing      bool
	ForbidOpeningResizing    bool
	ForbidCeilingHeightChange bool

	// May change
	AllowRetexture bool
	AllowRelight   bool

	// May add (small decor only)
	AllowAdditions     bool
	AdditionsWhitelist []string

	// Negatives
	Negatives string
}

// DefaultNegatives is the fixed exclusion list every policy starts with.
const DefaultNegatives = "text, watermark, logo, blurry, lowres, heavy artifacts, distorted geometry"

// DefaultEditPolicy returns the policy used for a fresh context: everything
// preserved, retexture/relight/additions allowed.
func DefaultEditPolicy() EditPolicy {
	return EditPolicy{
		PreserveLayout:             true,
		PreserveCamera:             true,
		PreserveLeftRight:          true,
		ForbidMirrorFlip:           true,
		PreserveFixedArchitecture:  true,
		PreserveFurniturePositions: true,
		PreserveScaleProportions:   true,
		ForbidSpaceResizing:        true,
		ForbidOpeningResizing:      true,
		ForbidCeilingHeightChange:  true,
		AllowRetexture:             true,
		AllowRelight:               true,
		AllowAdditions:             true,
		AdditionsWhitelist: []string{
			"rug", "floor lamp", "table lamp", "artwork", "plants",
			"side table", "throw pillows", "vase", "blanket", "small bookshelf",
		},
		Negatives: DefaultNegatives,
	}
}
