package raster

import (
	"fmt"
	"os"

	"github.com/airbusgeo/godal"
)

// WriteGeoTIFF persists a band as a single-band Float32 GeoTIFF carrying
// the band's geotransform, projection and no-data value. The file is
// written to a temporary sibling first and renamed into place, so a failed
// write never leaves a partial output behind.
func WriteGeoTIFF(path string, band *Band) error {
	registerDrivers()

	tmpPath := path + ".tmp"
	if err := writeGeoTIFF(tmpPath, band); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func writeGeoTIFF(path string, band *Band) error {
	dataset, err := godal.Create(godal.GTiff, path, 1, godal.Float32, band.Width, band.Height,
		godal.CreationOption("COMPRESS=LZW", "TILED=YES"))
	if err != nil {
		return fmt.Errorf("failed to create output raster %s: %w", path, err)
	}
	defer dataset.Close()

	if err := dataset.SetGeoTransform(band.GeoTransform); err != nil {
		return fmt.Errorf("failed to set geotransform on %s: %w", path, err)
	}

	if band.Projection != "" {
		sr, err := godal.NewSpatialRefFromWKT(band.Projection)
		if err != nil {
			return fmt.Errorf("failed to parse projection for %s: %w", path, err)
		}
		defer sr.Close()
		if err := dataset.SetSpatialRef(sr); err != nil {
			return fmt.Errorf("failed to set projection on %s: %w", path, err)
		}
	}

	outBand := dataset.Bands()[0]
	if band.HasNoData {
		if err := outBand.SetNoData(band.NoData); err != nil {
			return fmt.Errorf("failed to set no-data value on %s: %w", path, err)
		}
	}

	samples := make([]float32, band.Width*band.Height)
	for y, row := range band.Data {
		for x, value := range row {
			samples[y*band.Width+x] = float32(value)
		}
	}
	if err := outBand.Write(0, 0, samples, band.Width, band.Height); err != nil {
		return fmt.Errorf("failed to write raster data to %s: %w", path, err)
	}

	return nil
}
