package prompt

import (
	"image"
	"strings"
	"testing"

	"homedesign/internal/canvas"
	"homedesign/internal/design"
)

func zoneQuarter() canvas.Rect {
	return canvas.Rect{X: 0, Y: 0, W: 0.25, H: 0.25}
}

func kitchenContext() Context {
	ctx := NewContext()
	ctx.Option = design.OptionInterior
	ctx.Room = design.RoomKitchen
	ctx.Style = design.StyleScandinavian
	ctx.Palette = design.PaletteBeige
	ctx.BaseImage = image.NewNRGBA(image.Rect(0, 0, 4, 3))
	return ctx
}

func TestBuildPayloadDeterministic(t *testing.T) {
	ctx := kitchenContext()
	first := BuildPayload(ctx, "gpt-image-1")
	second := BuildPayload(ctx, "gpt-image-1")
	if first.User != second.User {
		t.Fatalf("User prompt not deterministic:\n%q\n%q", first.User, second.User)
	}
	if first.System != second.System {
		t.Fatalf("System prompt not deterministic")
	}
}

func TestBuildPayloadKitchenScenario(t *testing.T) {
	payload := BuildPayload(kitchenContext(), "gpt-image-1")

	if !strings.Contains(payload.System, "photorealistic interiors") {
		t.Fatalf("System = %q, want interior system prompt", payload.System)
	}

	wantInOrder := []string{
		"Objective: Restyle this Kitchen photo; photorealistic output.",
		"Preserve: original layout, camera pose and FOV unchanged",
		"May change: finishes, materials, textures, colors, fabrics",
		"May add: style-consistent small decor (rug, floor lamp",
		"Style: Scandinavian.",
		"Palette: #FAD3C0, #FFF1E2, #EDD9C2, #F8D8E1, #FECCA8, #DEC3AF; apply cohesively.",
		"Lighting: daylight consistent with the photo.",
		"Technical: Aspect ratio 2:3",
		"Exclusions: text, watermark, logo, blurry, lowres, heavy artifacts, distorted geometry, text, watermark, logo, blurry, lowres.",
		"Reference: Use the attached photo as the base; preserve orientation and scale.",
	}
	pos := 0
	for _, clause := range wantInOrder {
		idx := strings.Index(payload.User[pos:], clause)
		if idx < 0 {
			t.Fatalf("clause %q missing or out of order in:\n%s", clause, payload.User)
		}
		pos += idx
	}

	if payload.Metadata["aspect_ratio"] != "2:3" {
		t.Fatalf("aspect_ratio = %q, want 2:3", payload.Metadata["aspect_ratio"])
	}
	if payload.Metadata["model"] != "gpt-image-1" {
		t.Fatalf("model = %q, want gpt-image-1", payload.Metadata["model"])
	}
	if payload.Metadata["image_mode"] != "image_to_image" {
		t.Fatalf("image_mode = %q, want image_to_image", payload.Metadata["image_mode"])
	}
}

// preserveFragments mirrors the compiler's fixed Preserve clause order: one
// entry per policy flag, in emission order.
var preserveFragments = []struct {
	name    string
	disable func(p *EditPolicy)
	text    string
}{
	{"layout", func(p *EditPolicy) { p.PreserveLayout = false }, "original layout"},
	{"camera", func(p *EditPolicy) { p.PreserveCamera = false }, "camera pose and FOV unchanged"},
	{"left-right", func(p *EditPolicy) { p.PreserveLeftRight = false }, "left/right exactly as base"},
	{"mirror-flip", func(p *EditPolicy) { p.ForbidMirrorFlip = false }, "never mirror or flip"},
	{"fixed architecture", func(p *EditPolicy) { p.PreserveFixedArchitecture = false }, "walls, openings, and fixed plumbing unchanged"},
	{"furniture positions", func(p *EditPolicy) { p.PreserveFurniturePositions = false }, "positions of existing furniture unchanged"},
	{"scale proportions", func(p *EditPolicy) { p.PreserveScaleProportions = false }, "real-world scale and proportions identical to base"},
	{"space resizing", func(p *EditPolicy) { p.ForbidSpaceResizing = false }, "do not enlarge or shrink the room; keep wall distances unchanged"},
	{"opening resizing", func(p *EditPolicy) { p.ForbidOpeningResizing = false }, "do not resize windows, doors, or openings"},
	{"ceiling height", func(p *EditPolicy) { p.ForbidCeilingHeightChange = false }, "keep ceiling/wall heights unchanged"},
}

func preserveClause(skip int) string {
	var parts []string
	for i, f := range preserveFragments {
		if i == skip {
			continue
		}
		parts = append(parts, f.text)
	}
	return "Preserve: " + strings.Join(parts, ", ") + "."
}

// Disabling one preserve flag must remove exactly that flag's fragment and
// leave every other fragment in place, in the same order.
func TestBuildPayloadPreserveFlagTogglesExactFragment(t *testing.T) {
	baseline := BuildPayload(kitchenContext(), "gpt-image-1")
	if !strings.Contains(baseline.User, preserveClause(-1)) {
		t.Fatalf("baseline Preserve clause missing or reordered:\n%s", baseline.User)
	}

	for i, tt := range preserveFragments {
		t.Run(tt.name, func(t *testing.T) {
			ctx := kitchenContext()
			tt.disable(&ctx.Policy)
			payload := BuildPayload(ctx, "gpt-image-1")

			want := preserveClause(i)
			if !strings.Contains(payload.User, want) {
				t.Fatalf("Preserve clause without %q = wrong fragments or order, want %q in:\n%s", tt.name, want, payload.User)
			}
			if strings.Contains(payload.User, tt.text) {
				t.Fatalf("fragment %q still present after disabling its flag:\n%s", tt.text, payload.User)
			}
		})
	}
}

func TestBuildPayloadAllPreserveFlagsOffDropsClause(t *testing.T) {
	ctx := kitchenContext()
	for _, f := range preserveFragments {
		f.disable(&ctx.Policy)
	}
	payload := BuildPayload(ctx, "gpt-image-1")
	if strings.Contains(payload.User, "Preserve: ") {
		t.Fatalf("Preserve clause should be absent with all flags off:\n%s", payload.User)
	}
}

func TestBuildPayloadRandomPaletteFallsBackToDesignerSelection(t *testing.T) {
	ctx := kitchenContext()
	ctx.Palette = design.PaletteRandom
	payload := BuildPayload(ctx, "gpt-image-1")
	if !strings.Contains(payload.User, "Palette: designer’s cohesive selection.") {
		t.Fatalf("random palette should defer to the designer, got:\n%s", payload.User)
	}
	if strings.Contains(payload.User, "#") {
		t.Fatalf("random palette must not emit hex swatches")
	}
}

func TestBuildPayloadReferenceMode(t *testing.T) {
	ctx := NewContext()
	ctx.Option = design.OptionReference
	ctx.BaseImage = image.NewNRGBA(image.Rect(0, 0, 2, 2))
	ctx.ReferenceImage = image.NewNRGBA(image.Rect(0, 0, 2, 2))
	payload := BuildPayload(ctx, "dall-e-2")

	if !strings.Contains(payload.System, "style transfer") {
		t.Fatalf("System = %q, want style-transfer system prompt", payload.System)
	}
	if !strings.Contains(payload.User, "Objective: Restyle this scene photo") {
		t.Fatalf("reference mode subject should be scene, got:\n%s", payload.User)
	}
	if strings.Contains(payload.User, "Style: ") {
		t.Fatalf("reference mode must not emit a style clause")
	}
	if !strings.Contains(payload.User, "Base: Use the attached room photo as the structural foundation") {
		t.Fatalf("reference mode missing base clause:\n%s", payload.User)
	}
	if !strings.Contains(payload.User, "The following may be changed:") {
		t.Fatalf("reference mode should use the reference wording for changes:\n%s", payload.User)
	}
}

func TestBuildPayloadNoAdditions(t *testing.T) {
	ctx := kitchenContext()
	ctx.Policy.AllowAdditions = false
	payload := BuildPayload(ctx, "gpt-image-1")
	if !strings.Contains(payload.User, "Do not add new objects.") {
		t.Fatalf("expected additions ban, got:\n%s", payload.User)
	}
	if strings.Contains(payload.User, "May add:") {
		t.Fatalf("additions clause must be absent when disallowed")
	}
}

func TestBuildPayloadProtectedObjectsAndZones(t *testing.T) {
	ctx := kitchenContext()
	ctx.ProtectedObjects = []string{"piano", "aquarium"}
	ctx.NoEditZones = append(ctx.NoEditZones, zoneQuarter())
	payload := BuildPayload(ctx, "gpt-image-1")
	if !strings.Contains(payload.User, "Preserve objects: piano, aquarium; do not remove or occlude.") {
		t.Fatalf("missing protected objects clause:\n%s", payload.User)
	}
	if !strings.Contains(payload.User, "Edits limited to unprotected living area only") {
		t.Fatalf("missing zones clause:\n%s", payload.User)
	}
}

func TestBuildPayloadAwaitingBaseImage(t *testing.T) {
	ctx := kitchenContext()
	ctx.BaseImage = nil
	payload := BuildPayload(ctx, "gpt-image-1")
	if !strings.Contains(payload.User, "Reference: Awaiting the base content image.") {
		t.Fatalf("missing awaiting clause:\n%s", payload.User)
	}
}
