package postcards

import (
	"bytes"
	"context"
	"math"
	"strings"

	"github.com/fogleman/gg"
	geojson "github.com/paulmach/go.geojson"

	"github.com/zjoart/mapcard/pkg/logger"
)

// Canvas geometry: a 16x10 inch landscape split into two equal panes, map on
// the left, message on the right. Fast mode halves the raster density.
const (
	canvasWidthIn  = 16.0
	canvasHeightIn = 10.0
	dpiFull        = 300.0
	dpiFast        = 150.0
)

// CreateOptions carries everything the compositor needs for one postcard.
type CreateOptions struct {
	City    string
	Country string
	Point   Coordinates
	Dist    int
	Theme   *Theme
	Message string
	Fast    bool
}

// CreatePostcard fetches map data around opts.Point, renders the two-pane
// postcard and returns it as PNG bytes. The road network is required; water
// and park layers are best-effort and simply absent when their fetch fails.
// The same inputs and map data produce byte-identical output.
func CreatePostcard(ctx context.Context, maps MapSource, opts CreateOptions) ([]byte, error) {
	dpi := dpiFull
	if opts.Fast {
		dpi = dpiFast
	}
	width := int(canvasWidthIn * dpi)
	height := int(canvasHeightIn * dpi)

	// create canvas
	dc := gg.NewContext(width, height)
	dc.SetHexColor(opts.Theme.Background)
	dc.Clear()

	paneW := float64(width) / 2
	mapPane := pane{X: 0, Y: 0, W: paneW, H: float64(height), DPI: dpi}
	msgPane := pane{X: paneW, Y: 0, W: paneW, H: float64(height), DPI: dpi}

	if err := renderMapSide(ctx, dc, maps, mapPane, opts); err != nil {
		return nil, err
	}
	renderMessageSide(dc, msgPane, opts.Theme, opts.Message)

	// subtle divider between the two sides
	setColorAlpha(dc, opts.Theme.Text, 0.3)
	dc.SetLineWidth(mapPane.px(0.5))
	dc.DrawLine(float64(width)/2, 0.05*float64(height), float64(width)/2, 0.95*float64(height))
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	logger.Debug("compose: postcard encoded", logger.Fields{"width": width, "height": height, "bytes": buf.Len()})
	return buf.Bytes(), nil
}

// pane is one half of the canvas plus the raster density used to scale
// stroke widths and font sizes.
type pane struct {
	X, Y, W, H float64
	DPI        float64
}

// px converts a size in points to pixels at the pane's density.
func (p pane) px(points float64) float64 {
	return points * p.DPI / 72
}

// xAt and yAt map pane fractions to canvas pixels. Fractions use a
// bottom-left origin, so yAt(0) is the pane floor.
func (p pane) xAt(frac float64) float64 {
	return p.X + frac*p.W
}

func (p pane) yAt(frac float64) float64 {
	return p.Y + (1-frac)*p.H
}

// projection maps WGS84 coordinates onto pane pixels. The bounding box
// height (2*dist meters) fits the pane height exactly; the box is as wide as
// it is tall, so the pane crops it left and right.
type projection struct {
	centerLat, centerLon float64
	pxPerDegLat          float64
	pxPerDegLon          float64
	centerX, centerY     float64
}

func newProjection(point Coordinates, dist int, pn pane) projection {
	latDelta := float64(dist) / metersPerDegree
	pxPerDegLat := pn.H / (2 * latDelta)
	return projection{
		centerLat:   point.Lat,
		centerLon:   point.Lon,
		pxPerDegLat: pxPerDegLat,
		pxPerDegLon: pxPerDegLat * math.Cos(point.Lat*math.Pi/180),
		centerX:     pn.X + pn.W/2,
		centerY:     pn.Y + pn.H/2,
	}
}

func (p projection) toXY(lat, lon float64) (float64, float64) {
	x := p.centerX + (lon-p.centerLon)*p.pxPerDegLon
	y := p.centerY + (p.centerLat-lat)*p.pxPerDegLat
	return x, y
}

// renderMapSide draws the left pane: polygon layers under the road network
// under the gradient fades, all clipped to the pane, then the labels.
func renderMapSide(ctx context.Context, dc *gg.Context, maps MapSource, pn pane, opts CreateOptions) error {
	theme := opts.Theme

	roads, err := maps.Roads(ctx, opts.Point, opts.Dist, opts.Fast)
	if err != nil {
		return err
	}

	// water and parks are skipped entirely in fast mode
	var water, parks *geojson.FeatureCollection
	if !opts.Fast {
		if water, err = maps.Features(ctx, opts.Point, opts.Dist, WaterFilters); err != nil {
			logger.Warn("compose: water layer unavailable", logger.WithError(err))
			water = nil
		}
		if parks, err = maps.Features(ctx, opts.Point, opts.Dist, ParkFilters); err != nil {
			logger.Warn("compose: parks layer unavailable", logger.WithError(err))
			parks = nil
		}
	}

	proj := newProjection(opts.Point, opts.Dist, pn)

	// the fetch box is wider than the pane, so clip the overflow
	dc.DrawRectangle(pn.X, pn.Y, pn.W, pn.H)
	dc.Clip()

	drawPolygonLayer(dc, water, theme.Water, proj)
	drawPolygonLayer(dc, parks, theme.Parks, proj)
	drawRoads(dc, roads, theme, proj, pn)

	drawFade(dc, pn, theme.GradientColor, fadeBottom)
	drawFade(dc, pn, theme.GradientColor, fadeTop)

	dc.ResetClip()

	drawMapLabels(dc, pn, opts)
	return nil
}

// drawPolygonLayer fills every Polygon and MultiPolygon feature. A nil or
// empty collection draws nothing.
func drawPolygonLayer(dc *gg.Context, fc *geojson.FeatureCollection, hex string, proj projection) {
	if fc == nil || len(fc.Features) == 0 {
		return
	}
	dc.SetHexColor(hex)
	for _, feature := range fc.Features {
		if feature.Geometry == nil {
			continue
		}
		if feature.Geometry.Type == "Polygon" {
			tracePolygon(dc, feature.Geometry.Polygon, proj)
		} else if feature.Geometry.Type == "MultiPolygon" {
			for _, polygon := range feature.Geometry.MultiPolygon {
				tracePolygon(dc, polygon, proj)
			}
		}
	}
	dc.Fill()
}

// tracePolygon appends each ring of a GeoJSON polygon (coordinates in
// lon/lat order) to the current path.
func tracePolygon(dc *gg.Context, rings [][][]float64, proj projection) {
	for _, ring := range rings {
		started := false
		for _, coord := range ring {
			if len(coord) < 2 {
				continue
			}
			x, y := proj.toXY(coord[1], coord[0])
			if !started {
				dc.MoveTo(x, y)
				started = true
			} else {
				dc.LineTo(x, y)
			}
		}
		if started {
			dc.ClosePath()
		}
	}
}

// drawRoads strokes each way with the color and width of its highway class.
func drawRoads(dc *gg.Context, roads []Road, theme *Theme, proj projection, pn pane) {
	for _, road := range roads {
		if len(road.Points) < 2 {
			continue
		}
		for i, pt := range road.Points {
			x, y := proj.toXY(pt.Lat, pt.Lon)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.SetHexColor(RoadColor(road.Highway, theme))
		dc.SetLineWidth(pn.px(RoadWidth(road.Highway)))
		dc.Stroke()
	}
}

type fadeLocation int

const (
	fadeBottom fadeLocation = iota
	fadeTop
)

// drawFade paints the gradient ramp over a quarter of the pane as stacked
// horizontal bands. The bottom quarter fades from opaque at the pane floor
// to transparent; the top quarter mirrors it, transparent at its floor and
// opaque at the pane ceiling.
func drawFade(dc *gg.Context, pn pane, hex string, loc fadeLocation) {
	base, err := parseHexColor(hex)
	if err != nil {
		return
	}
	ramp := fadeRamp(base)

	quarter := pn.H / 4
	bandH := quarter / float64(len(ramp))
	bottomEdge := pn.Y + pn.H
	if loc == fadeTop {
		bottomEdge = pn.Y + quarter
	}

	for i := range ramp {
		shade := ramp[i]
		if loc == fadeTop {
			shade = ramp[len(ramp)-1-i]
		}
		yTop := bottomEdge - float64(i+1)*bandH
		yBottom := bottomEdge - float64(i)*bandH
		dc.SetColor(shade)
		dc.DrawRectangle(pn.X, yTop, pn.W, yBottom-yTop)
		dc.Fill()
	}
}

// drawMapLabels draws the city title treatment at the bottom of the map pane.
func drawMapLabels(dc *gg.Context, pn pane, opts CreateOptions) {
	theme := opts.Theme
	set := getFonts()

	// city name, letter spaced
	dc.SetHexColor(theme.Text)
	dc.SetFontFace(newFace(set.Bold, 36, pn.DPI))
	dc.DrawStringAnchored(letterSpaced(opts.City), pn.xAt(0.5), pn.yAt(0.12), 0.5, 0)

	// country
	dc.SetFontFace(newFace(set.Light, 16, pn.DPI))
	dc.DrawStringAnchored(strings.ToUpper(opts.Country), pn.xAt(0.5), pn.yAt(0.08), 0.5, 0)

	// coordinates caption
	setColorAlpha(dc, theme.Text, 0.7)
	dc.SetFontFace(newFace(set.Regular, 10, pn.DPI))
	dc.DrawStringAnchored(coordinateCaption(opts.Point), pn.xAt(0.5), pn.yAt(0.05), 0.5, 0)

	// decorative rule between city and country
	dc.SetHexColor(theme.Text)
	dc.SetLineWidth(pn.px(1))
	dc.DrawLine(pn.xAt(0.3), pn.yAt(0.10), pn.xAt(0.7), pn.yAt(0.10))
	dc.Stroke()
}

// renderMessageSide draws the right pane. A message of only whitespace
// leaves the whole pane as bare background, stamp and rules included.
func renderMessageSide(dc *gg.Context, pn pane, theme *Theme, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}

	set := getFonts()

	// message block, top-aligned, line advance 1.5x the font size
	dc.SetHexColor(theme.Text)
	dc.SetFontFace(newFace(set.Regular, 18, pn.DPI))
	lineHeight := pn.px(18 * 1.5)
	x := pn.xAt(0.1)
	y := pn.yAt(0.85)
	for _, line := range wrapMessage(message, wrapWidth) {
		if line != "" {
			dc.DrawStringAnchored(line, x, y, 0, 1)
		}
		y += lineHeight
	}

	// stamp box, dashed
	setColorAlpha(dc, theme.Text, 0.3)
	dc.SetLineWidth(pn.px(1))
	dc.SetDash(pn.px(4), pn.px(4))
	dc.DrawRectangle(pn.xAt(0.7), pn.yAt(0.90), 0.2*pn.W, 0.15*pn.H)
	dc.Stroke()
	dc.SetDash()

	dc.SetFontFace(newFace(set.Mono, 8, pn.DPI))
	dc.DrawStringAnchored("STAMP", pn.xAt(0.8), pn.yAt(0.825), 0.5, 0.5)

	// address rules
	dc.SetLineWidth(pn.px(0.5))
	for _, frac := range []float64{0.4, 0.32, 0.24, 0.16} {
		dc.DrawLine(pn.xAt(0.1), pn.yAt(frac), pn.xAt(0.9), pn.yAt(frac))
		dc.Stroke()
	}

	// attribution
	setColorAlpha(dc, theme.Text, 0.5)
	dc.SetFontFace(newFace(set.Light, 6, pn.DPI))
	dc.DrawStringAnchored("© OpenStreetMap contributors", pn.xAt(0.9), pn.yAt(0.03), 1, 0)
}

// setColorAlpha sets the draw color to a theme hex color at reduced opacity.
// Theme colors are validated at load, so a parse miss here just falls back
// to black.
func setColorAlpha(dc *gg.Context, hex string, alpha float64) {
	c, _ := parseHexColor(hex)
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
}
