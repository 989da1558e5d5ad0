package handlers

import (
	"net/http"

	"homedesign/internal/design"
)

type catalogOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type catalogPalette struct {
	Name     string   `json:"name"`
	Swatches []string `json:"swatches,omitempty"`
}

// Catalog returns the selection catalogs the client screens are built from:
// options with their display titles, rooms, the per-option style lists, and
// palettes with their swatches.
func (a *App) Catalog(w http.ResponseWriter, r *http.Request) {
	options := make([]catalogOption, 0, len(design.Options()))
	for _, o := range design.Options() {
		options = append(options, catalogOption{ID: string(o), Title: o.Title()})
	}

	rooms := make([]string, 0, len(design.Rooms()))
	for _, room := range design.Rooms() {
		rooms = append(rooms, room.Name())
	}

	interior := make([]string, 0, len(design.InteriorStyles()))
	for _, s := range design.InteriorStyles() {
		interior = append(interior, s.Name())
	}
	exterior := make([]string, 0, len(design.ExteriorStyles()))
	for _, s := range design.ExteriorStyles() {
		exterior = append(exterior, s.Name())
	}

	palettes := make([]catalogPalette, 0, len(design.Palettes()))
	for _, p := range design.Palettes() {
		palettes = append(palettes, catalogPalette{Name: p.Name(), Swatches: p.Swatches()})
	}

	a.json(w, http.StatusOK, map[string]any{
		"options": options,
		"rooms":   rooms,
		"styles": map[string]any{
			"interior": interior,
			"exterior": exterior,
		},
		"palettes": palettes,
	})
}
