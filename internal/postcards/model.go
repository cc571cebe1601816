package postcards

import (
	"fmt"
	"sort"
	"strings"
)

// Theme is one color scheme loaded from a JSON record in the themes
// directory. Every color the compositor consumes is required; Validate
// rejects records with missing or unparseable fields so rendering never has
// to fall back per field.
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Background      string `json:"bg"`
	Text            string `json:"text"`
	Water           string `json:"water"`
	Parks           string `json:"parks"`
	RoadMotorway    string `json:"road_motorway"`
	RoadPrimary     string `json:"road_primary"`
	RoadSecondary   string `json:"road_secondary"`
	RoadTertiary    string `json:"road_tertiary"`
	RoadResidential string `json:"road_residential"`
	RoadDefault     string `json:"road_default"`
	GradientColor   string `json:"gradient_color"`
}

// Validate checks that every required color field is present and parseable.
// All problems are reported at once.
func (t *Theme) Validate() error {
	fields := map[string]string{
		"bg":               t.Background,
		"text":             t.Text,
		"water":            t.Water,
		"parks":            t.Parks,
		"road_motorway":    t.RoadMotorway,
		"road_primary":     t.RoadPrimary,
		"road_secondary":   t.RoadSecondary,
		"road_tertiary":    t.RoadTertiary,
		"road_residential": t.RoadResidential,
		"road_default":     t.RoadDefault,
		"gradient_color":   t.GradientColor,
	}
	var errs []string
	for name, value := range fields {
		if value == "" {
			errs = append(errs, fmt.Sprintf("missing field %q", name))
			continue
		}
		if _, err := parseHexColor(value); err != nil {
			errs = append(errs, fmt.Sprintf("field %q: %v", name, err))
		}
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidationError collects every problem found in a theme record.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid theme: " + strings.Join(e.Errors, "; ")
}

// ThemeColors is the color preview subset returned by the listing endpoint.
type ThemeColors struct {
	Background  string `json:"bg"`
	Text        string `json:"text"`
	Water       string `json:"water"`
	Parks       string `json:"parks"`
	RoadPrimary string `json:"road_primary"`
}

// ThemeSummary describes one selectable theme in the listing endpoint.
type ThemeSummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Colors      ThemeColors `json:"colors"`
}

// Coordinates is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PostcardRequest is the generate-endpoint payload. Optional fields keep
// these defaults when absent from the request body.
type PostcardRequest struct {
	City     string `json:"city"`
	Country  string `json:"country"`
	Theme    string `json:"theme"`
	Distance int    `json:"distance"`
	Message  string `json:"message"`
	Fast     bool   `json:"fast"`
}

// GenerateResponse is the success payload of the generate endpoint.
type GenerateResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Road is a single way of the street network with its raw OSM highway tag.
type Road struct {
	Highway string
	Points  []Coordinates
}

// NotFoundError reports a geocoding miss for a user-supplied place.
type NotFoundError struct {
	City    string
	Country string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Could not find coordinates for %s, %s", e.City, e.Country)
}
