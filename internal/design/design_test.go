package design

import "testing"

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want Option
		ok   bool
	}{
		{"interior", OptionInterior, true},
		{" Exterior ", OptionExterior, true},
		{"GARDEN", OptionGarden, true},
		{"reference", OptionReference, true},
		{"bathroom", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseOption(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseOption(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseRoomCaseInsensitive(t *testing.T) {
	room, ok := ParseRoom("kitchen")
	if !ok || room != RoomKitchen {
		t.Fatalf("ParseRoom(kitchen) = %q, %v", room, ok)
	}
	if _, ok := ParseRoom("spaceship"); ok {
		t.Fatalf("unknown room should not parse")
	}
}

func TestRoomCatalogSize(t *testing.T) {
	if got := len(Rooms()); got != 15 {
		t.Fatalf("rooms = %d, want 15", got)
	}
}

func TestInteriorDefaultLighting(t *testing.T) {
	tests := []struct {
		style InteriorStyle
		want  string
	}{
		{StyleScandinavian, "daylight"},
		{StyleClassic, "golden hour"},
		{StyleIndustrial, "moody"},
		{StyleWabiSabi, "soft daylight"},
		{StyleVintage, "evening warm"},
		{StyleTropical, "bright daylight"},
	}
	for _, tt := range tests {
		if got := tt.style.DefaultLighting(); got != tt.want {
			t.Fatalf("%s lighting = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestStyleForCatalogs(t *testing.T) {
	if s, ok := StyleFor(OptionInterior, "scandinavian"); !ok || s.Name() != "Scandinavian" {
		t.Fatalf("interior lookup failed: %v %v", s, ok)
	}
	if _, ok := StyleFor(OptionInterior, "Victorian"); ok {
		t.Fatalf("Victorian is not an interior style")
	}
	if s, ok := StyleFor(OptionExterior, "victorian"); !ok || s.Name() != "Victorian" {
		t.Fatalf("exterior lookup failed: %v %v", s, ok)
	}
	if s, ok := StyleFor(OptionGarden, "english cottage"); !ok || s.Name() != "English Cottage" {
		t.Fatalf("garden free-form lookup = %v %v", s, ok)
	}
	if _, ok := StyleFor(OptionGarden, "   "); ok {
		t.Fatalf("blank style name should not resolve")
	}
}

func TestPaletteSwatches(t *testing.T) {
	if got := len(Palettes()); got != 21 {
		t.Fatalf("palettes = %d, want 21", got)
	}
	beige := PaletteBeige.Swatches()
	if len(beige) != 6 || beige[0] != "FAD3C0" {
		t.Fatalf("beige swatches = %v", beige)
	}
	if len(PaletteRandom.Swatches()) != 0 {
		t.Fatalf("random palette must carry no swatches")
	}
	if p, ok := ParsePalette("winter berry"); !ok || p != PaletteWinterBerry {
		t.Fatalf("ParsePalette(winter berry) = %q, %v", p, ok)
	}
}
