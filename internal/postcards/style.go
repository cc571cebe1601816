package postcards

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// roadClass reduces a raw OSM highway tag to the value the precedence tables
// switch on. Multi-valued tags (semicolon separated) classify by their first
// element; an absent tag counts as unclassified.
func roadClass(highway string) string {
	if i := strings.Index(highway, ";"); i >= 0 {
		highway = highway[:i]
	}
	highway = strings.TrimSpace(highway)
	if highway == "" {
		return "unclassified"
	}
	return highway
}

// RoadColor picks the theme color for a raw highway tag. Link roads share
// the color of the class they connect; anything unrecognized gets the
// theme's default road color.
func RoadColor(highway string, theme *Theme) string {
	switch roadClass(highway) {
	case "motorway", "motorway_link":
		return theme.RoadMotorway
	case "trunk", "trunk_link", "primary", "primary_link":
		return theme.RoadPrimary
	case "secondary", "secondary_link":
		return theme.RoadSecondary
	case "tertiary", "tertiary_link":
		return theme.RoadTertiary
	case "residential", "living_street", "unclassified":
		return theme.RoadResidential
	default:
		return theme.RoadDefault
	}
}

// RoadWidth picks the stroke width in points for a raw highway tag. Widths
// narrow with road class; everything below tertiary draws hairline-thin.
func RoadWidth(highway string) float64 {
	switch roadClass(highway) {
	case "motorway", "motorway_link":
		return 1.2
	case "trunk", "trunk_link", "primary", "primary_link":
		return 1.0
	case "secondary", "secondary_link":
		return 0.8
	case "tertiary", "tertiary_link":
		return 0.6
	default:
		return 0.4
	}
}

const fadeSteps = 256

// fadeRamp builds the gradient-fade palette: fadeSteps shades of c with alpha
// stepping down from opaque to fully transparent. Callers pick the paint
// direction; the ramp itself always descends.
func fadeRamp(c color.NRGBA) []color.NRGBA {
	ramp := make([]color.NRGBA, fadeSteps)
	for i := range ramp {
		alpha := 1 - float64(i)/float64(fadeSteps-1)
		ramp[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha*255 + 0.5)}
	}
	return ramp
}

// parseHexColor parses #RGB and #RRGGBB colors into an opaque NRGBA.
func parseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xFF}
	if !strings.HasPrefix(s, "#") {
		return c, fmt.Errorf("color %q must start with '#'", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 6:
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	default:
		return c, fmt.Errorf("color %q must be #RGB or #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("color %q is not valid hex", s)
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}
