package postcards

import (
	"fmt"
	"math"
	"strings"
)

// wrapWidth is the maximum characters per wrapped message line.
const wrapWidth = 35

// wrapText greedily word-wraps one paragraph to at most width characters per
// line, counting runes. Runs of whitespace collapse to single spaces; words
// longer than width are split at the boundary. Wrapping already-wrapped
// lines again is a no-op.
func wrapText(paragraph string, width int) []string {
	var lines []string
	var line []rune
	for _, w := range strings.Fields(paragraph) {
		word := []rune(w)
		for len(word) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		if len(word) == 0 {
			continue
		}
		switch {
		case len(line) == 0:
			line = word
		case len(line)+1+len(word) <= width:
			line = append(line, ' ')
			line = append(line, word...)
		default:
			lines = append(lines, string(line))
			line = word
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

// wrapMessage splits a message into paragraphs on newlines and wraps each.
// Blank paragraphs survive as empty lines so deliberate spacing is kept.
func wrapMessage(message string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(message, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapText(paragraph, width)...)
	}
	return lines
}

// citySlug builds the filename fragment for a city: lower-cased, spaces to
// underscores, apostrophes dropped.
func citySlug(city string) string {
	slug := strings.ToLower(city)
	slug = strings.ReplaceAll(slug, " ", "_")
	return strings.ReplaceAll(slug, "'", "")
}

// coordinateCaption formats the small caption under the map. Hemisphere
// letters come from the coordinate signs; the magnitudes print as absolute
// values to four decimals.
func coordinateCaption(point Coordinates) string {
	latHemi, lonHemi := "N", "E"
	if point.Lat < 0 {
		latHemi = "S"
	}
	if point.Lon < 0 {
		lonHemi = "W"
	}
	return fmt.Sprintf("%.4f° %s / %.4f° %s", math.Abs(point.Lat), latHemi, math.Abs(point.Lon), lonHemi)
}

// letterSpaced upper-cases s and pads two spaces between characters for the
// city title treatment.
func letterSpaced(s string) string {
	runes := []rune(strings.ToUpper(s))
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return strings.Join(out, "  ")
}
