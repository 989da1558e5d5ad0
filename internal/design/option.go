package design

import "strings"

// Option enumerates the top-level design flows a user can start. The option
// chosen first decides which room/type/style catalogs apply downstream.
type Option string

const (
	OptionInterior  Option = "interior"
	OptionExterior  Option = "exterior"
	OptionGarden    Option = "garden"
	OptionReference Option = "reference"
)

// Options lists all selectable design options in presentation order.
func Options() []Option {
	return []Option{OptionInterior, OptionExterior, OptionGarden, OptionReference}
}

// Title returns the display title for the option.
func (o Option) Title() string {
	switch o {
	case OptionInterior:
		return "Interior Design"
	case OptionExterior:
		return "Exterior Design"
	case OptionGarden:
		return "Garden Design"
	case OptionReference:
		return "Reference Style"
	default:
		return ""
	}
}

// Valid reports whether o is one of the known options.
func (o Option) Valid() bool {
	switch o {
	case OptionInterior, OptionExterior, OptionGarden, OptionReference:
		return true
	default:
		return false
	}
}

// ParseOption resolves free-form input into a known option.
func ParseOption(s string) (Option, bool) {
	o := Option(strings.ToLower(strings.TrimSpace(s)))
	if o.Valid() {
		return o, true
	}
	return "", false
}
