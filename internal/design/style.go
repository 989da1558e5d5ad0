package design

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style is the closed union over the per-option style catalogs. Each variant
// exposes the same two accessors the prompt compiler needs: a display name and
// a default lighting description (empty for reference styles, which carry no
// lighting of their own).
type Style interface {
	Name() string
	DefaultLighting() string
}

// InteriorStyle is a style from the interior catalog.
type InteriorStyle string

const (
	StyleMinimalist    InteriorStyle = "Minimalist"
	StyleClassic       InteriorStyle = "Classic"
	StyleModern        InteriorStyle = "Modern"
	StyleJapanese      InteriorStyle = "Japanese"
	StyleChinese       InteriorStyle = "Chinese"
	StyleScandinavian  InteriorStyle = "Scandinavian"
	StyleLoft          InteriorStyle = "Loft"
	StyleContemporary  InteriorStyle = "Contemporary"
	StyleIndustrial    InteriorStyle = "Industrial"
	StyleHottic        InteriorStyle = "Hottic"
	StyleBohemian      InteriorStyle = "Bohemian"
	StyleWabiSabi      InteriorStyle = "Wabi-sabi"
	StyleVintage       InteriorStyle = "Vintage"
	StyleArtDeco       InteriorStyle = "Art Deco"
	StyleRustic        InteriorStyle = "Rustic"
	StyleFarmhouse     InteriorStyle = "Farmhouse"
	StyleMediterranean InteriorStyle = "Mediterranean"
	StyleTropical      InteriorStyle = "Tropical"
)

// InteriorStyles lists the interior catalog in presentation order.
func InteriorStyles() []InteriorStyle {
	return []InteriorStyle{
		StyleMinimalist, StyleClassic, StyleModern, StyleJapanese, StyleChinese,
		StyleScandinavian, StyleLoft, StyleContemporary, StyleIndustrial,
		StyleHottic, StyleBohemian, StyleWabiSabi, StyleVintage, StyleArtDeco,
		StyleRustic, StyleFarmhouse, StyleMediterranean, StyleTropical,
	}
}

func (s InteriorStyle) Name() string { return string(s) }

// DefaultLighting maps each interior style to the lighting mood used when the
// user has not set an explicit override.
func (s InteriorStyle) DefaultLighting() string {
	switch s {
	case StyleScandinavian, StyleMinimalist, StyleModern, StyleContemporary, StyleChinese:
		return "daylight"
	case StyleClassic, StyleArtDeco, StyleRustic, StyleFarmhouse, StyleMediterranean, StyleHottic:
		return "golden hour"
	case StyleIndustrial, StyleLoft:
		return "moody"
	case StyleJapanese, StyleWabiSabi:
		return "soft daylight"
	case StyleVintage, StyleBohemian:
		return "evening warm"
	case StyleTropical:
		return "bright daylight"
	default:
		return "daylight"
	}
}

// ExteriorStyle is a style from the exterior catalog.
type ExteriorStyle string

const (
	ExteriorModern        ExteriorStyle = "Modern"
	ExteriorContemporary  ExteriorStyle = "Contemporary"
	ExteriorMinimalist    ExteriorStyle = "Minimalist"
	ExteriorHighTech      ExteriorStyle = "High-tech"
	ExteriorScandinavian  ExteriorStyle = "Scandinavian"
	ExteriorMediterranean ExteriorStyle = "Mediterranean"
	ExteriorItalianVilla  ExteriorStyle = "Italian Villa"
	ExteriorColonial      ExteriorStyle = "Colonial"
	ExteriorGeorgian      ExteriorStyle = "Georgian"
	ExteriorVictorian     ExteriorStyle = "Victorian"
	ExteriorTudor         ExteriorStyle = "Tudor"
	ExteriorCraftsman     ExteriorStyle = "Craftsman"
	ExteriorCottage       ExteriorStyle = "Cottage style"
	ExteriorArtDeco       ExteriorStyle = "Art Deco"
	ExteriorRustic        ExteriorStyle = "Rustic"
)

// ExteriorStyles lists the exterior catalog in presentation order.
func ExteriorStyles() []ExteriorStyle {
	return []ExteriorStyle{
		ExteriorModern, ExteriorContemporary, ExteriorMinimalist, ExteriorHighTech,
		ExteriorScandinavian, ExteriorMediterranean, ExteriorItalianVilla,
		ExteriorColonial, ExteriorGeorgian, ExteriorVictorian, ExteriorTudor,
		ExteriorCraftsman, ExteriorCottage, ExteriorArtDeco, ExteriorRustic,
	}
}

func (s ExteriorStyle) Name() string            { return string(s) }
func (s ExteriorStyle) DefaultLighting() string { return "daylight" }

// GardenStyle carries a free-form garden style name.
type GardenStyle string

func (s GardenStyle) Name() string            { return string(s) }
func (s GardenStyle) DefaultLighting() string { return "bright daylight" }

// ReferenceStyle names the style extracted from a reference photo. It has no
// default lighting because the reference image dictates the mood.
type ReferenceStyle string

func (s ReferenceStyle) Name() string            { return string(s) }
func (s ReferenceStyle) DefaultLighting() string { return "" }

// StyleFor resolves a style name within the catalog belonging to the option.
// Interior and exterior names must match their catalogs; garden and reference
// accept any non-empty name, title-cased for prompt output.
func StyleFor(option Option, name string) (Style, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}
	switch option {
	case OptionInterior:
		for _, s := range InteriorStyles() {
			if strings.EqualFold(string(s), name) {
				return s, true
			}
		}
		return nil, false
	case OptionExterior:
		for _, s := range ExteriorStyles() {
			if strings.EqualFold(string(s), name) {
				return s, true
			}
		}
		return nil, false
	case OptionGarden:
		return GardenStyle(TitleCase(name)), true
	case OptionReference:
		return ReferenceStyle(TitleCase(name)), true
	default:
		return nil, false
	}
}

var titleCaser = cases.Title(language.English)

// TitleCase normalizes free-form catalog input for display and prompt use.
func TitleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}
