package postcards

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

type fakeMapSource struct {
	roads       []Road
	features    *geojson.FeatureCollection
	roadsErr    error
	featuresErr error

	featureCalls int
	lastDist     int
	lastDrivable bool
}

func (f *fakeMapSource) Roads(ctx context.Context, point Coordinates, dist int, drivableOnly bool) ([]Road, error) {
	f.lastDist = dist
	f.lastDrivable = drivableOnly
	if f.roadsErr != nil {
		return nil, f.roadsErr
	}
	return f.roads, nil
}

func (f *fakeMapSource) Features(ctx context.Context, point Coordinates, dist int, filters []TagFilter) (*geojson.FeatureCollection, error) {
	f.featureCalls++
	if f.featuresErr != nil {
		return nil, f.featuresErr
	}
	return f.features, nil
}

var testPoint = Coordinates{Lat: 48.8566, Lon: 2.3522}

func testRoads() []Road {
	const d = 0.01
	return []Road{
		{Highway: "primary", Points: []Coordinates{
			{Lat: testPoint.Lat - d, Lon: testPoint.Lon - d},
			{Lat: testPoint.Lat + d, Lon: testPoint.Lon + d},
		}},
		{Highway: "residential", Points: []Coordinates{
			{Lat: testPoint.Lat - d, Lon: testPoint.Lon + d},
			{Lat: testPoint.Lat + d, Lon: testPoint.Lon - d},
		}},
		{Highway: "motorway", Points: []Coordinates{
			{Lat: testPoint.Lat, Lon: testPoint.Lon - d},
			{Lat: testPoint.Lat, Lon: testPoint.Lon + d},
		}},
	}
}

func testWater() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(geojson.NewPolygonFeature([][][]float64{{
		{2.34, 48.85}, {2.36, 48.85}, {2.36, 48.86}, {2.34, 48.86}, {2.34, 48.85},
	}}))
	return fc
}

func testOptions(fast bool, message string) CreateOptions {
	return CreateOptions{
		City:    "Paris",
		Country: "France",
		Point:   testPoint,
		Dist:    8000,
		Theme:   testTheme(),
		Message: message,
		Fast:    fast,
	}
}

func TestCreatePostcardFast(t *testing.T) {
	maps := &fakeMapSource{roads: testRoads()}

	out, err := CreatePostcard(context.Background(), maps, testOptions(true, "Wish you were here!"))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 2400 || cfg.Height != 1500 {
		t.Errorf("expected 2400x1500 at 150 dpi, got %dx%d", cfg.Width, cfg.Height)
	}
	if maps.featureCalls != 0 {
		t.Errorf("fast mode must not fetch polygon layers, got %d calls", maps.featureCalls)
	}
	if !maps.lastDrivable {
		t.Errorf("fast mode must request the drivable network")
	}
}

func TestCreatePostcardFull(t *testing.T) {
	maps := &fakeMapSource{roads: testRoads(), features: testWater()}

	out, err := CreatePostcard(context.Background(), maps, testOptions(false, "Greetings"))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 4800 || cfg.Height != 3000 {
		t.Errorf("expected 4800x3000 at 300 dpi, got %dx%d", cfg.Width, cfg.Height)
	}
	if maps.featureCalls != 2 {
		t.Errorf("expected water and parks fetched, got %d calls", maps.featureCalls)
	}
	if maps.lastDrivable {
		t.Errorf("full mode must request every highway")
	}
}

func TestCreatePostcardDeterministic(t *testing.T) {
	opts := testOptions(true, "Same ink, same card")

	first, err := CreatePostcard(context.Background(), &fakeMapSource{roads: testRoads()}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CreatePostcard(context.Background(), &fakeMapSource{roads: testRoads()}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different bytes")
	}
}

func TestCreatePostcardRoadsFetchIsFatal(t *testing.T) {
	boom := errors.New("overpass down")
	maps := &fakeMapSource{roadsErr: boom}

	_, err := CreatePostcard(context.Background(), maps, testOptions(true, ""))
	if err != boom {
		t.Fatalf("expected the roads error back, got %v", err)
	}
}

func TestCreatePostcardMissingLayersTolerated(t *testing.T) {
	maps := &fakeMapSource{roads: testRoads(), featuresErr: errors.New("layer timeout")}

	out, err := CreatePostcard(context.Background(), maps, testOptions(false, ""))
	if err != nil {
		t.Fatalf("polygon layer failures must not fail the render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty output")
	}
}

func TestMessagePaneBlankForWhitespace(t *testing.T) {
	empty, err := CreatePostcard(context.Background(), &fakeMapSource{roads: testRoads()}, testOptions(true, ""))
	if err != nil {
		t.Fatal(err)
	}
	whitespace, err := CreatePostcard(context.Background(), &fakeMapSource{roads: testRoads()}, testOptions(true, "  \n\t "))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(empty, whitespace) {
		t.Error("whitespace-only message should render exactly like no message")
	}

	written, err := CreatePostcard(context.Background(), &fakeMapSource{roads: testRoads()}, testOptions(true, "Hello"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(empty, written) {
		t.Error("a real message should change the output")
	}
}
