package nbr

import (
	"fmt"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/properties"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/raster"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/scene"
)

// ShapeMismatchError reports that the NIR and SWIR bands do not share the
// same pixel grid or georeferencing. It is the only fatal condition of the
// ratio itself; every per-pixel degeneracy maps to the no-data value.
type ShapeMismatchError struct {
	Reason     string
	NIRWidth   int
	NIRHeight  int
	SWIRWidth  int
	SWIRHeight int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape-mismatch: %s (nir %dx%d, swir %dx%d)",
		e.Reason, e.NIRWidth, e.NIRHeight, e.SWIRWidth, e.SWIRHeight)
}

func newShapeMismatchError(reason string, nir, swir *raster.Band) *ShapeMismatchError {
	return &ShapeMismatchError{
		Reason:     reason,
		NIRWidth:   nir.Width,
		NIRHeight:  nir.Height,
		SWIRWidth:  swir.Width,
		SWIRHeight: swir.Height,
	}
}

// EvaluateBandBurnRatio computes the Normalized Burn Ratio
// (NIR - SWIR) / (NIR + SWIR) over two already-loaded bands.
//
// The bands must be pixel-aligned; that precondition is checked here, once,
// before any pixel is computed. Negative reflectance is clamped to zero
// first. A pixel flagged no-data in either input, or whose clamped
// denominator is zero, becomes the no-data value of the output; the output
// never contains NaN or Inf. The result carries the inputs' geotransform
// and projection verbatim and leaves the inputs untouched.
func EvaluateBandBurnRatio(nir, swir *raster.Band) (*raster.Band, error) {
	if nir.Width != swir.Width || nir.Height != swir.Height {
		return nil, newShapeMismatchError("band dimensions differ", nir, swir)
	}
	if nir.GeoTransform != swir.GeoTransform {
		return nil, newShapeMismatchError("band geotransforms differ", nir, swir)
	}
	if nir.Projection != swir.Projection {
		return nil, newShapeMismatchError("band projections differ", nir, swir)
	}

	noData := properties.NoDataValue()

	flat := make([]float64, nir.Width*nir.Height)
	rows := make([][]float64, nir.Height)
	for y := range rows {
		rows[y] = flat[y*nir.Width : (y+1)*nir.Width]
		for x := 0; x < nir.Width; x++ {
			nirValue := nir.Data[y][x]
			swirValue := swir.Data[y][x]

			if nir.IsNoData(nirValue) || swir.IsNoData(swirValue) {
				rows[y][x] = noData
				continue
			}
			if nirValue < 0 {
				nirValue = 0
			}
			if swirValue < 0 {
				swirValue = 0
			}

			denominator := nirValue + swirValue
			if denominator == 0 {
				rows[y][x] = noData
				continue
			}
			rows[y][x] = (nirValue - swirValue) / denominator
		}
	}

	return &raster.Band{
		Data:         rows,
		Width:        nir.Width,
		Height:       nir.Height,
		GeoTransform: nir.GeoTransform,
		Projection:   nir.Projection,
		NoData:       noData,
		HasNoData:    true,
	}, nil
}

// EvaluateCOGBurnRatio runs the full pipeline for one scene: resolve and
// load the NIR and SWIR band files, compute the burn ratio, and write the
// result as a single-band GeoTIFF at outputPath. Any error aborts before
// the output file exists.
func EvaluateCOGBurnRatio(scenePath, outputPath string) error {
	nir, swir, err := scene.New(scenePath).LoadBands()
	if err != nil {
		return err
	}

	result, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		return err
	}

	return raster.WriteGeoTIFF(outputPath, result)
}
