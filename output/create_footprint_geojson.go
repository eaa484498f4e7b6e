package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/nbr"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func pixelToWorld(gt [6]float64, x, y float64) orb.Point {
	return orb.Point{
		gt[0] + gt[1]*x + gt[2]*y,
		gt[3] + gt[4]*x + gt[5]*y,
	}
}

// CreateFootprintGeoJSON writes the scene footprint as a GeoJSON feature
// carrying the NBR summary in its properties. Coordinates are in the
// raster's native reference system.
func CreateFootprintGeoJSON(band *raster.Band, summary nbr.Summary, outputPath string) error {
	if !strings.HasSuffix(outputPath, ".geojson") {
		outputPath += ".geojson"
	}

	gt := band.GeoTransform
	w := float64(band.Width)
	h := float64(band.Height)
	ring := orb.Ring{
		pixelToWorld(gt, 0, 0),
		pixelToWorld(gt, w, 0),
		pixelToWorld(gt, w, h),
		pixelToWorld(gt, 0, h),
		pixelToWorld(gt, 0, 0),
	}

	feature := geojson.NewFeature(orb.Polygon{ring})
	feature.Properties = geojson.Properties{
		"scene":         summary.Scene,
		"valid_pixels":  summary.ValidPixels,
		"nodata_pixels": summary.NoDataPixels,
		"min_nbr":       summary.MinNBR,
		"max_nbr":       summary.MaxNBR,
		"mean_nbr":      summary.MeanNBR,
		"burned_pixels": summary.BurnedPixels,
		"burned_ratio":  summary.BurnedRatio,
	}

	collection := geojson.NewFeatureCollection()
	collection.Append(feature)

	data, err := collection.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal footprint GeoJSON: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write footprint GeoJSON: %w", err)
	}

	fmt.Println("Footprint GeoJSON created successfully at", outputPath)
	return nil
}
