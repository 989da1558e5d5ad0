package prompt

import (
	"fmt"
	"strings"

	"homedesign/internal/design"
)

// Payload is the compiled output handed to the generation client: a system
// instruction, the assembled user instruction, and request metadata. It is
// never mutated after construction.
type Payload struct {
	System   string
	User     string
	Metadata map[string]string
}

const (
	systemInterior  = "You are an architectural image editor for photorealistic interiors. Follow all constraints exactly."
	systemOutdoor   = "You are an architectural image editor for photorealistic outdoor scenes. Follow all constraints exactly."
	systemReference = "You are an architectural image editor for photorealistic style transfer. Follow all constraints exactly."
)

// BuildPayload deterministically compiles a context into a payload. It is a
// pure function: any missing optional field is simply omitted from the output,
// and validating that the context is complete is the orchestrator's job.
func BuildPayload(ctx Context, model string) Payload {
	return Payload{
		System: systemPrompt(ctx.Option),
		User:   makeUserPrompt(ctx),
		Metadata: map[string]string{
			"aspect_ratio": ctx.AspectRatio,
			"model":        model,
			"image_mode":   "image_to_image",
		},
	}
}

func systemPrompt(option design.Option) string {
	switch option {
	case design.OptionExterior, design.OptionGarden:
		return systemOutdoor
	case design.OptionReference:
		return systemReference
	default:
		return systemInterior
	}
}

// makeUserPrompt assembles the instruction clauses in a fixed order. The order
// is part of the contract: downstream snapshots and analytics rely on the
// output being stable for an unchanged context.
func makeUserPrompt(ctx Context) string {
	isReference := ctx.Option == design.OptionReference
	subject := subjectName(ctx, isReference)

	var parts []string

	// Objective
	parts = append(parts, fmt.Sprintf("Objective: Restyle this %s photo; %s output.", subject, ctx.Realism))

	// Preserve
	var preserve []string
	if ctx.Policy.PreserveLayout {
		preserve = append(preserve, "original layout")
	}
	if ctx.Policy.PreserveCamera {
		preserve = append(preserve, "camera pose and FOV unchanged")
	}
	if ctx.Policy.PreserveLeftRight {
		preserve = append(preserve, "left/right exactly as base")
	}
	if ctx.Policy.ForbidMirrorFlip {
		preserve = append(preserve, "never mirror or flip")
	}
	if ctx.Policy.PreserveFixedArchitecture {
		preserve = append(preserve, "walls, openings, and fixed plumbing unchanged")
	}
	if ctx.Policy.PreserveFurniturePositions {
		preserve = append(preserve, "positions of existing furniture unchanged")
	}
	if ctx.Policy.PreserveScaleProportions {
		preserve = append(preserve, "real-world scale and proportions identical to base")
	}
	if ctx.Policy.ForbidSpaceResizing {
		preserve = append(preserve, "do not enlarge or shrink the room; keep wall distances unchanged")
	}
	if ctx.Policy.ForbidOpeningResizing {
		preserve = append(preserve, "do not resize windows, doors, or openings")
	}
	if ctx.Policy.ForbidCeilingHeightChange {
		preserve = append(preserve, "keep ceiling/wall heights unchanged")
	}
	if len(preserve) > 0 {
		parts = append(parts, "Preserve: "+strings.Join(preserve, ", ")+".")
	}

	// Protected objects / zones
	if len(ctx.ProtectedObjects) > 0 {
		parts = append(parts, "Preserve objects: "+strings.Join(ctx.ProtectedObjects, ", ")+"; do not remove or occlude.")
	}
	if len(ctx.NoEditZones) > 0 {
		parts = append(parts, "Edits limited to unprotected living area only; protected zones must remain unchanged.")
	}

	// May change
	if ctx.Policy.AllowRetexture {
		if !ctx.HasReferenceImage() {
			parts = append(parts, "May change: finishes, materials, textures, colors, fabrics; refine lighting without changing viewpoint or scale.")
		} else {
			parts = append(parts, "The following may be changed: finishes, materials, textures, colors, fabrics; lighting improvements; placement of elements.")
		}
	}

	// May add
	if ctx.Policy.AllowAdditions {
		white := strings.Join(ctx.Policy.AdditionsWhitelist, ", ")
		parts = append(parts, fmt.Sprintf("May add: style-consistent small decor (%s) only where space allows; do not block doors or paths.", white))
	} else {
		parts = append(parts, "Do not add new objects.")
	}

	// Style
	if !isReference {
		parts = append(parts, styleClause(ctx))
	}

	if ctx.EmptyRoom {
		parts = append(parts, "If the room is empty, add only essential, style-matching items without altering structure or scale.")
	}

	// Technical
	parts = append(parts, fmt.Sprintf("Technical: Aspect ratio %s; keep camera intrinsics; avoid geometric warping; never crop or stretch.", ctx.AspectRatio))

	// Exclusions
	parts = append(parts, fmt.Sprintf("Exclusions: %s, %s.", ctx.Policy.Negatives, ctx.Negative))

	// Reference / Base
	switch {
	case isReference:
		parts = append(parts, "Base: Use the attached room photo as the structural foundation; apply the provided style description to transform finishes, colors, and decor without altering layout, scale, or camera view.")
	case ctx.HasContentImage():
		parts = append(parts, "Reference: Use the attached photo as the base; preserve orientation and scale.")
	default:
		parts = append(parts, "Reference: Awaiting the base content image.")
	}

	return strings.Join(parts, " ")
}

func subjectName(ctx Context, isReference bool) string {
	if isReference {
		return "scene"
	}
	if ctx.Room != "" {
		return ctx.Room.Name()
	}
	if ctx.TypeSelection != "" {
		return ctx.TypeSelection
	}
	return "room"
}

func styleClause(ctx Context) string {
	styleName := "neutral"
	if ctx.Style != nil {
		styleName = ctx.Style.Name()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Style: %s.", styleName)

	if ctx.Palette != "" && ctx.Palette != design.PaletteRandom {
		hexes := make([]string, 0, len(ctx.Palette.Swatches()))
		for _, swatch := range ctx.Palette.Swatches() {
			hexes = append(hexes, "#"+swatch)
		}
		fmt.Fprintf(&b, " Palette: %s; apply cohesively.", strings.Join(hexes, ", "))
	} else {
		b.WriteString(" Palette: designer’s cohesive selection.")
	}

	if len(ctx.Materials) > 0 {
		fmt.Fprintf(&b, " Materials: %s.", strings.Join(ctx.Materials, ", "))
	}

	if ctx.Policy.AllowRelight {
		lighting := ctx.Lighting
		if lighting == "" && ctx.Style != nil {
			lighting = ctx.Style.DefaultLighting()
		}
		if lighting != "" {
			fmt.Fprintf(&b, " Lighting: %s consistent with the photo.", lighting)
		} else {
			b.WriteString(" Lighting: consistent with the photo.")
		}
	}

	return b.String()
}
