package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/nbr"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestCreateFootprintGeoJSON(t *testing.T) {
	band := &raster.Band{
		Data:         [][]float64{{0.1, 0.2}, {0.3, 0.4}},
		Width:        2,
		Height:       2,
		GeoTransform: [6]float64{100, 10, 0, 200, 0, -10},
	}
	summary := nbr.Summary{Scene: "test-scene", ValidPixels: 4, MeanNBR: 0.25}

	outPath := filepath.Join(t.TempDir(), "footprint.geojson")
	if err := CreateFootprintGeoJSON(band, summary, outPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("output is not valid GeoJSON: %v", err)
	}
	if len(collection.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(collection.Features))
	}

	polygon, ok := collection.Features[0].Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("geometry is %T, want orb.Polygon", collection.Features[0].Geometry)
	}
	ring := polygon[0]
	if ring[0] != (orb.Point{100, 200}) {
		t.Errorf("upper-left corner = %v, want {100 200}", ring[0])
	}
	if ring[2] != (orb.Point{120, 180}) {
		t.Errorf("lower-right corner = %v, want {120 180}", ring[2])
	}

	if collection.Features[0].Properties.MustString("scene") != "test-scene" {
		t.Errorf("scene property = %v", collection.Features[0].Properties["scene"])
	}
}

func TestCreateQuicklookImage(t *testing.T) {
	band := &raster.Band{
		Data:         [][]float64{{-0.5, 0.5}, {-9999, 0.0}},
		Width:        2,
		Height:       2,
		GeoTransform: [6]float64{100, 10, 0, 200, 0, -10},
		NoData:       -9999,
		HasNoData:    true,
	}

	outPath := filepath.Join(t.TempDir(), "quicklook.png")
	if err := CreateQuicklookImage(band, 0.1, outPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("quicklook file not written: %v", err)
	}
}
