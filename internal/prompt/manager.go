package prompt

import (
	"errors"
	"fmt"
	"image"

	"homedesign/internal/canvas"
	"homedesign/internal/design"
)

// ErrIncompleteContext indicates the context is missing a selection required
// before a generation attempt may start.
var ErrIncompleteContext = errors.New("prompt: context is incomplete")

// BuildRequest is everything a generation attempt needs: the compiled payload
// plus the images and mask prepared for the API's canvas contract.
type BuildRequest struct {
	Payload   Payload
	Base      image.Image // resized and padded when a base photo is attached
	Reference image.Image
	MaskPNG   []byte
	APISize   string // size parameter for text-to-image; empty in edit mode
}

// Manager owns the context for one screen-flow session and exposes the
// mutators the selection screens drive. It is the single writer of the
// context; the surrounding flow must serialize access.
type Manager struct {
	ctx Context
}

// NewManager returns a manager with a fresh default context.
func NewManager() *Manager {
	return &Manager{ctx: NewContext()}
}

// Context returns a snapshot copy of the current context.
func (m *Manager) Context() Context {
	return m.ctx
}

// SetOption selects the design flow. Switching options clears whichever of
// room/type-selection no longer applies.
func (m *Manager) SetOption(option design.Option) {
	m.ctx.Option = option
	if option != design.OptionInterior {
		m.ctx.Room = ""
	} else {
		m.ctx.TypeSelection = ""
	}
}

// SetRoom records the room selection; ignored unless the interior option is active.
func (m *Manager) SetRoom(room design.Room) {
	if m.ctx.Option == design.OptionInterior {
		m.ctx.Room = room
	}
}

// SetTypeSelection records the free-text subject for non-interior options.
func (m *Manager) SetTypeSelection(name string, option design.Option) {
	if option != design.OptionInterior {
		m.ctx.TypeSelection = design.TitleCase(name)
	}
}

// SetStyle selects the style and adopts its default lighting when the user
// has not chosen an override yet.
func (m *Manager) SetStyle(style design.Style) {
	m.ctx.Style = style
	if m.ctx.Lighting == "" && style != nil {
		m.ctx.Lighting = style.DefaultLighting()
	}
}

func (m *Manager) SetPalette(palette design.Palette) {
	m.ctx.Palette = palette
}

func (m *Manager) SetAspectRatio(ratio string) {
	m.ctx.AspectRatio = ratio
}

// AddMaterial appends a material, rejecting duplicates to keep the list set-like.
func (m *Manager) AddMaterial(material string) {
	for _, existing := range m.ctx.Materials {
		if existing == material {
			return
		}
	}
	m.ctx.Materials = append(m.ctx.Materials, material)
}

func (m *Manager) SetMaterials(materials []string) {
	m.ctx.Materials = materials
}

func (m *Manager) SetLighting(lighting string) {
	m.ctx.Lighting = lighting
}

func (m *Manager) SetPolicy(policy EditPolicy) {
	m.ctx.Policy = policy
}

func (m *Manager) SetAllowAdditions(allowed bool) {
	m.ctx.Policy.AllowAdditions = allowed
}

func (m *Manager) SetAdditionsWhitelist(items []string) {
	m.ctx.Policy.AdditionsWhitelist = items
}

func (m *Manager) SetEmptyRoom(flag bool) {
	m.ctx.EmptyRoom = flag
}

func (m *Manager) SetProtectedObjects(names []string) {
	m.ctx.ProtectedObjects = names
}

func (m *Manager) SetNoEditZones(zones []canvas.Rect) {
	m.ctx.NoEditZones = zones
}

func (m *Manager) SetBaseImage(img image.Image) {
	m.ctx.BaseImage = img
}

func (m *Manager) SetReferenceImage(img image.Image) {
	m.ctx.ReferenceImage = img
}

// Reset discards all selections and returns the context to its defaults.
func (m *Manager) Reset() {
	m.ctx = NewContext()
}

// Validate checks the invariants that must hold before a generation attempt:
// an option is selected; reference mode has both photos attached; every other
// mode has a style, and interior additionally has a room.
func (m *Manager) Validate() error {
	if m.ctx.Option == "" {
		return fmt.Errorf("%w: no option selected", ErrIncompleteContext)
	}
	if m.ctx.Option == design.OptionReference {
		if !m.ctx.HasContentImage() || !m.ctx.HasReferenceImage() {
			return fmt.Errorf("%w: reference mode requires base and reference images", ErrIncompleteContext)
		}
		return nil
	}
	if m.ctx.Style == nil {
		return fmt.Errorf("%w: no style selected", ErrIncompleteContext)
	}
	if m.ctx.Option == design.OptionInterior && m.ctx.Room == "" {
		return fmt.Errorf("%w: no room selected", ErrIncompleteContext)
	}
	return nil
}

// BuildRequest validates the context, compiles the payload, and prepares the
// attached images for the API. A base photo forces the square edit canvas
// (the edit endpoint dictates output size from its input, so no size
// parameter is produced); without one the aspect ratio picks the generation
// size string.
func (m *Manager) BuildRequest(model string) (*BuildRequest, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	req := &BuildRequest{Payload: BuildPayload(m.ctx, model)}

	if m.ctx.BaseImage == nil {
		req.APISize = canvas.FormatForAspectRatio(m.ctx.AspectRatio).String()
		return req, nil
	}

	prepared, _ := canvas.ResizeAndPad(m.ctx.BaseImage, canvas.FormatSquare)
	m.ctx.BaseImage = prepared
	req.Base = prepared
	req.Reference = m.ctx.ReferenceImage

	if len(m.ctx.NoEditZones) > 0 {
		w, h := canvas.FormatSquare.Size()
		mask, err := canvas.ProtectMask(w, h, m.ctx.NoEditZones)
		if err != nil {
			return nil, err
		}
		req.MaskPNG = mask
	}

	return req, nil
}
