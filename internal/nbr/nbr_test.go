package nbr

import (
	"errors"
	"math"
	"testing"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/raster"
)

var testGeoTransform = [6]float64{699960, 30, 0, 3800040, 0, -30}

const testProjection = `PROJCS["WGS 84 / UTM zone 11N"]`

func bandFromValues(values [][]float64) *raster.Band {
	return &raster.Band{
		Data:         values,
		Width:        len(values[0]),
		Height:       len(values),
		GeoTransform: testGeoTransform,
		Projection:   testProjection,
	}
}

func zeroBand(width, height int) *raster.Band {
	rows := make([][]float64, height)
	for i := range rows {
		rows[i] = make([]float64, width)
	}
	return &raster.Band{
		Data:         rows,
		Width:        width,
		Height:       height,
		GeoTransform: testGeoTransform,
		Projection:   testProjection,
	}
}

func TestEvaluateBandBurnRatioFormula(t *testing.T) {
	nir := bandFromValues([][]float64{{0.5}})
	swir := bandFromValues([][]float64{{0.1}})

	result, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Data[0][0]; math.Abs(got-0.667) > 1e-3 {
		t.Errorf("NBR(0.5, 0.1) = %f, want 0.667", got)
	}
}

func TestEvaluateBandBurnRatioZeroDenominator(t *testing.T) {
	nir := bandFromValues([][]float64{{0, 0.5}})
	swir := bandFromValues([][]float64{{0, 0.1}})

	result, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Data[0][0]; got != result.NoData {
		t.Errorf("zero denominator pixel = %f, want no-data %f", got, result.NoData)
	}
	for _, row := range result.Data {
		for _, value := range row {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				t.Fatalf("output contains NaN/Inf: %f", value)
			}
		}
	}
}

func TestEvaluateBandBurnRatioRange(t *testing.T) {
	nir := bandFromValues([][]float64{
		{0.8, 0.05, 1200},
		{-0.3, 0.42, 0.0001},
	})
	swir := bandFromValues([][]float64{
		{0.1, 0.9, 300},
		{0.2, -0.1, 0.5},
	})

	result, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for y, row := range result.Data {
		for x, value := range row {
			if result.IsNoData(value) {
				continue
			}
			if value < -1 || value > 1 {
				t.Errorf("pixel (%d,%d) = %f outside [-1, 1]", y, x, value)
			}
		}
	}
}

func TestEvaluateBandBurnRatioNegativeClamping(t *testing.T) {
	// Negative reflectance clamps to zero, so (-0.3, 0.2) behaves like
	// (0, 0.2) and yields -1 rather than a value below the valid range.
	nir := bandFromValues([][]float64{{-0.3}})
	swir := bandFromValues([][]float64{{0.2}})

	result, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Data[0][0]; got != -1 {
		t.Errorf("clamped pixel = %f, want -1", got)
	}
}

func TestEvaluateBandBurnRatioNoDataPropagation(t *testing.T) {
	// The two inputs declare different sentinels; a no-data pixel in either
	// band forces the output to the single shared output sentinel.
	nir := bandFromValues([][]float64{{-1, 0.5, 0.5}})
	nir.NoData = -1
	nir.HasNoData = true
	swir := bandFromValues([][]float64{{0.1, 255, 0.1}})
	swir.NoData = 255
	swir.HasNoData = true

	result, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Data[0][0]; got != result.NoData {
		t.Errorf("nir no-data pixel = %f, want %f", got, result.NoData)
	}
	if got := result.Data[0][1]; got != result.NoData {
		t.Errorf("swir no-data pixel = %f, want %f", got, result.NoData)
	}
	if got := result.Data[0][2]; result.IsNoData(got) {
		t.Errorf("valid pixel unexpectedly mapped to no-data")
	}
}

func TestEvaluateBandBurnRatioMetadataFidelity(t *testing.T) {
	nir := bandFromValues([][]float64{{0.5}})
	swir := bandFromValues([][]float64{{0.1}})

	result, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.GeoTransform != nir.GeoTransform {
		t.Errorf("geotransform not copied verbatim: %v != %v", result.GeoTransform, nir.GeoTransform)
	}
	if result.Projection != nir.Projection {
		t.Errorf("projection not copied verbatim: %q != %q", result.Projection, nir.Projection)
	}
	if result.Width != nir.Width || result.Height != nir.Height {
		t.Errorf("dimensions changed: %dx%d != %dx%d", result.Width, result.Height, nir.Width, nir.Height)
	}
	if !result.HasNoData {
		t.Error("output band has no declared no-data value")
	}
}

func TestEvaluateBandBurnRatioShapeMismatch(t *testing.T) {
	nir := zeroBand(100, 100)
	swir := zeroBand(100, 99)

	_, err := EvaluateBandBurnRatio(nir, swir)
	var shapeMismatch *ShapeMismatchError
	if !errors.As(err, &shapeMismatch) {
		t.Fatalf("got %v, want ShapeMismatchError", err)
	}
	if shapeMismatch.NIRHeight != 100 || shapeMismatch.SWIRHeight != 99 {
		t.Errorf("error carries wrong dimensions: %+v", shapeMismatch)
	}
}

func TestEvaluateBandBurnRatioGeoreferenceMismatch(t *testing.T) {
	nir := zeroBand(10, 10)
	swir := zeroBand(10, 10)
	swir.GeoTransform[0] += 30

	var shapeMismatch *ShapeMismatchError
	if _, err := EvaluateBandBurnRatio(nir, swir); !errors.As(err, &shapeMismatch) {
		t.Fatalf("geotransform mismatch: got %v, want ShapeMismatchError", err)
	}

	swir.GeoTransform = nir.GeoTransform
	swir.Projection = `PROJCS["WGS 84 / UTM zone 12N"]`
	if _, err := EvaluateBandBurnRatio(nir, swir); !errors.As(err, &shapeMismatch) {
		t.Fatalf("projection mismatch: got %v, want ShapeMismatchError", err)
	}
}

func TestEvaluateBandBurnRatioDoesNotMutateInputs(t *testing.T) {
	nir := bandFromValues([][]float64{{-0.3, 0.5}})
	swir := bandFromValues([][]float64{{0.2, 0.1}})

	if _, err := EvaluateBandBurnRatio(nir, swir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if nir.Data[0][0] != -0.3 || swir.Data[0][0] != 0.2 {
		t.Errorf("inputs mutated: nir=%v swir=%v", nir.Data[0], swir.Data[0])
	}
}

func TestEvaluateBandBurnRatioIdempotence(t *testing.T) {
	nir := bandFromValues([][]float64{{0.5, 0, -2}, {0.1, 0.9, 0.3}})
	swir := bandFromValues([][]float64{{0.1, 0, 0.4}, {0.1, 0.2, 0.3}})

	first, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := EvaluateBandBurnRatio(nir, swir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for y := range first.Data {
		for x := range first.Data[y] {
			if first.Data[y][x] != second.Data[y][x] {
				t.Fatalf("pixel (%d,%d) differs between runs: %f != %f",
					y, x, first.Data[y][x], second.Data[y][x])
			}
		}
	}
}
