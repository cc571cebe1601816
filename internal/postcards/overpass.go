package postcards

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	geojson "github.com/paulmach/go.geojson"

	"github.com/zjoart/mapcard/pkg/logger"
)

// TagFilter selects OSM elements carrying key=value.
type TagFilter struct {
	Key   string
	Value string
}

// Filters for the two optional polygon layers.
var (
	WaterFilters = []TagFilter{{Key: "natural", Value: "water"}, {Key: "waterway", Value: "riverbank"}}
	ParkFilters  = []TagFilter{{Key: "leisure", Value: "park"}, {Key: "landuse", Value: "grass"}}
)

// MapSource supplies map data around a point. A Roads failure is fatal for
// the request; Features is best-effort and callers treat an error as "layer
// absent".
type MapSource interface {
	Roads(ctx context.Context, point Coordinates, dist int, drivableOnly bool) ([]Road, error)
	Features(ctx context.Context, point Coordinates, dist int, filters []TagFilter) (*geojson.FeatureCollection, error)
}

// metersPerDegree approximates one degree of latitude.
const metersPerDegree = 111320.0

// boundingBox returns the south,west,north,east box dist meters around a
// point. Longitude degrees shrink with latitude, so the east/west delta is
// scaled by cos(lat).
func boundingBox(point Coordinates, dist int) (south, west, north, east float64) {
	latDelta := float64(dist) / metersPerDegree
	lonDelta := float64(dist) / (metersPerDegree * math.Cos(point.Lat*math.Pi/180))
	return point.Lat - latDelta, point.Lon - lonDelta, point.Lat + latDelta, point.Lon + lonDelta
}

// nonDrivable lists the highway classes excluded from the fast network, the
// standard "drive" filter.
const nonDrivable = "abandoned|bridleway|bus_guideway|construction|corridor|cycleway|elevator|escalator|footway|path|pedestrian|planned|platform|proposed|raceway|razed|service|steps|track"

// OverpassSource fetches street networks and polygon layers from an Overpass
// API endpoint.
type OverpassSource struct {
	BaseURL string
	Client  *http.Client
}

func NewOverpassSource(baseURL string, timeout time.Duration) *OverpassSource {
	return &OverpassSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// external structs for the Overpass JSON output
type overpassPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassMember struct {
	Type     string          `json:"type"`
	Role     string          `json:"role"`
	Geometry []overpassPoint `json:"geometry"`
}

type overpassElement struct {
	Type     string            `json:"type"`
	Tags     map[string]string `json:"tags"`
	Geometry []overpassPoint   `json:"geometry"`
	Members  []overpassMember  `json:"members"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

func (o *OverpassSource) query(ctx context.Context, body string) (*overpassResponse, error) {
	form := url.Values{"data": {body}}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.Client.Do(req)
	if err != nil {
		logger.Warn("overpass: failed fetching", logger.WithError(err))
		return nil, ExternalError{API: "overpass"}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Warn("overpass: returned non-200", logger.Fields{"status": resp.StatusCode})
		return nil, ExternalError{API: "overpass"}
	}

	var out overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Warn("overpass: failed decoding response", logger.WithError(err))
		return nil, ExternalError{API: "overpass"}
	}
	return &out, nil
}

// Roads fetches the street network inside the bounding box around point.
// With drivableOnly the query keeps motor-traffic ways only; otherwise every
// tagged highway comes back, footpaths included.
func (o *OverpassSource) Roads(ctx context.Context, point Coordinates, dist int, drivableOnly bool) ([]Road, error) {
	south, west, north, east := boundingBox(point, dist)
	bbox := fmt.Sprintf("%f,%f,%f,%f", south, west, north, east)

	way := fmt.Sprintf(`way["highway"](%s);`, bbox)
	if drivableOnly {
		way = fmt.Sprintf(`way["highway"]["highway"!~"%s"]["area"!~"yes"](%s);`, nonDrivable, bbox)
	}
	q := "[out:json][timeout:90];" + way + "out geom;"

	resp, err := o.query(ctx, q)
	if err != nil {
		return nil, err
	}

	var roads []Road
	for _, el := range resp.Elements {
		if el.Type != "way" || len(el.Geometry) < 2 {
			continue
		}
		roads = append(roads, Road{
			Highway: el.Tags["highway"],
			Points:  toCoordinates(el.Geometry),
		})
	}
	logger.Info("overpass: roads fetched", logger.Fields{"count": len(roads), "drivable_only": drivableOnly})
	return roads, nil
}

// Features fetches polygon features matching any of the tag filters. Closed
// ways become Polygons; the outer members of relations become one
// MultiPolygon per relation. Unclosed rings are closed by repeating the
// first point.
func (o *OverpassSource) Features(ctx context.Context, point Coordinates, dist int, filters []TagFilter) (*geojson.FeatureCollection, error) {
	south, west, north, east := boundingBox(point, dist)
	bbox := fmt.Sprintf("%f,%f,%f,%f", south, west, north, east)

	var b strings.Builder
	b.WriteString("[out:json][timeout:90];(")
	for _, f := range filters {
		fmt.Fprintf(&b, "way[%q=%q](%s);relation[%q=%q](%s);", f.Key, f.Value, bbox, f.Key, f.Value, bbox)
	}
	b.WriteString(");out geom;")

	resp, err := o.query(ctx, b.String())
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, el := range resp.Elements {
		switch el.Type {
		case "way":
			ring := toRing(el.Geometry)
			if len(ring) < 4 {
				continue
			}
			fc.AddFeature(geojson.NewPolygonFeature([][][]float64{ring}))
		case "relation":
			var polygons [][][][]float64
			for _, m := range el.Members {
				if m.Type != "way" || (m.Role != "outer" && m.Role != "") {
					continue
				}
				ring := toRing(m.Geometry)
				if len(ring) < 4 {
					continue
				}
				polygons = append(polygons, [][][]float64{ring})
			}
			if len(polygons) > 0 {
				fc.AddFeature(geojson.NewMultiPolygonFeature(polygons...))
			}
		}
	}
	logger.Info("overpass: features fetched", logger.Fields{"count": len(fc.Features)})
	return fc, nil
}

// toRing converts way geometry to a closed GeoJSON ring in lon/lat order.
func toRing(points []overpassPoint) [][]float64 {
	ring := make([][]float64, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, []float64{p.Lon, p.Lat})
	}
	if len(ring) > 0 {
		first, last := ring[0], ring[len(ring)-1]
		if first[0] != last[0] || first[1] != last[1] {
			ring = append(ring, first)
		}
	}
	return ring
}

func toCoordinates(points []overpassPoint) []Coordinates {
	out := make([]Coordinates, len(points))
	for i, p := range points {
		out[i] = Coordinates{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}
