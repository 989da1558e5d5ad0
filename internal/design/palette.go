package design

import "strings"

// Palette names a curated color scheme. PaletteRandom is the sentinel for
// letting the generation model pick its own cohesive selection.
type Palette string

const (
	PaletteRandom       Palette = "Random"
	PaletteLively       Palette = "Lively"
	PaletteStormy       Palette = "Stormy"
	PaletteMinimalistic Palette = "Minimalistic"
	PaletteBeige        Palette = "Beige"
	PalettePastel       Palette = "Pastel"
	PaletteFloral       Palette = "Floral"
	PaletteWinterBerry  Palette = "Winter Berry"
	PaletteBeach        Palette = "Beach"
	PaletteOcean        Palette = "Ocean"
	PaletteCalm         Palette = "Calm"
	PaletteBlush        Palette = "Blush"
	PaletteElegant      Palette = "Elegant"
	PaletteHarmony      Palette = "Harmony"
	PaletteAzure        Palette = "Azure"
	PaletteLilac        Palette = "Lilac"
	PaletteEarthy       Palette = "Earthy"
	PaletteVelvet       Palette = "Velvet"
	PaletteSensual      Palette = "Sensual"
	PaletteSpicied      Palette = "Spicied"
	PaletteFresh        Palette = "Fresh"
)

// paletteSwatches holds the ordered hex swatches (no leading #) per palette.
var paletteSwatches = map[Palette][]string{
	PaletteLively:       {"242D34", "3D5F51", "B6BF8A", "AC86DD", "DDC5DF", "F2E9E4"},
	PaletteStormy:       {"17314A", "6A5568", "A35890", "9FABB7", "DAE1E9", "EFEFEF"},
	PaletteMinimalistic: {"FFFFFF", "E2E0E0", "B3B3B3", "959595", "757575", "404040"},
	PaletteBeige:        {"FAD3C0", "FFF1E2", "EDD9C2", "F8D8E1", "FECCA8", "DEC3AF"},
	PalettePastel:       {"D3F0F4", "FEF9E5", "DBE9E0", "F0F0F0", "E5D1E8", "D5F1DF"},
	PaletteFloral:       {"A9C8DA", "6693B2", "F1E9DF", "FFBB94", "E57986", "A4607B"},
	PaletteWinterBerry:  {"3E3D65", "55545C", "8AAE90", "8E8DAC", "F2EEE3", "BE8E8A"},
	PaletteBeach:        {"385066", "607A91", "A3C5DC", "F3F1E9", "D8DBD6", "EFEFEF"},
	PaletteOcean:        {"0C151D", "324663", "7D92AD", "B4CDEC", "FFFFFF", "F2F4F5"},
	PaletteCalm:         {"3E3D65", "55545C", "8AAE90", "8E8DAC", "F2EEE3", "BE8E8A"},
	PaletteBlush:        {"101729", "BE8E8A", "80626A", "E5C6C3", "F6E2E1", "EEE6D2"},
	PaletteElegant:      {"000000", "222052", "B7B7B7", "D2B589", "EEE6D2", "F6E2E1"},
	PaletteHarmony:      {"5D564F", "857F75", "CDBFA6", "A58B71", "F2EEE3", "80626A"},
	PaletteAzure:        {"E5D5BC", "F9F9F5", "C5EDE9", "92D1BD", "57B3DA", "E2F8BF"},
	PaletteLilac:        {"B9D2E2", "E3D8F2", "F2F4F5", "A7BBC7", "D3E3F0", "BD82AE"},
	PaletteEarthy:       {"EEE3D3", "6B5742", "B8A495", "C2BAA1", "9DAD84", "697C4A"},
	PaletteVelvet:       {"594049", "8D707A", "B9A1A5", "DBC9B1", "F5EEE7", "E5CBD0"},
	PaletteSensual:      {"050505", "610D27", "AD9D8E", "CBAE8E", "D9D9D9", "854543"},
	PaletteSpicied:      {"2C1D1A", "881F1E", "C26E35", "F4B34F", "ECCDB8", "EAE3D1"},
	PaletteFresh:        {"290907", "54483C", "73855D", "7E9FB0", "D2D4CF", "EEEAE1"},
}

// Palettes lists every palette in presentation order.
func Palettes() []Palette {
	return []Palette{
		PaletteRandom, PaletteLively, PaletteStormy, PaletteMinimalistic,
		PaletteBeige, PalettePastel, PaletteFloral, PaletteWinterBerry,
		PaletteBeach, PaletteOcean, PaletteCalm, PaletteBlush, PaletteElegant,
		PaletteHarmony, PaletteAzure, PaletteLilac, PaletteEarthy,
		PaletteVelvet, PaletteSensual, PaletteSpicied, PaletteFresh,
	}
}

// Name returns the display name of the palette.
func (p Palette) Name() string {
	return string(p)
}

// Swatches returns the palette's ordered hex codes without the # prefix.
// Random has no fixed swatches.
func (p Palette) Swatches() []string {
	return paletteSwatches[p]
}

// ParsePalette resolves free-form input into a known palette, case-insensitively.
func ParsePalette(s string) (Palette, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Palettes() {
		if strings.ToLower(string(p)) == needle {
			return p, true
		}
	}
	return "", false
}
