package nbr

import "github.com/fire-guardian/fire-guardian-cli-poc/internal/raster"

// Summary aggregates one scene's NBR raster for the batch report. Low NBR
// marks burned vegetation, so BurnedPixels counts valid pixels below the
// configured threshold.
type Summary struct {
	Scene        string  `csv:"scene"`
	ValidPixels  int     `csv:"valid_pixels"`
	NoDataPixels int     `csv:"nodata_pixels"`
	MinNBR       float64 `csv:"min_nbr"`
	MaxNBR       float64 `csv:"max_nbr"`
	MeanNBR      float64 `csv:"mean_nbr"`
	BurnedPixels int     `csv:"burned_pixels"`
	BurnedRatio  float64 `csv:"burned_ratio"`
}

// Summarize computes the summary of an NBR raster produced by
// EvaluateBandBurnRatio.
func Summarize(sceneName string, band *raster.Band, burnThreshold float64) Summary {
	summary := Summary{Scene: sceneName}

	sum := 0.0
	for _, row := range band.Data {
		for _, value := range row {
			if band.IsNoData(value) {
				summary.NoDataPixels++
				continue
			}
			if summary.ValidPixels == 0 {
				summary.MinNBR = value
				summary.MaxNBR = value
			}
			if value < summary.MinNBR {
				summary.MinNBR = value
			}
			if value > summary.MaxNBR {
				summary.MaxNBR = value
			}
			if value < burnThreshold {
				summary.BurnedPixels++
			}
			sum += value
			summary.ValidPixels++
		}
	}

	if summary.ValidPixels > 0 {
		summary.MeanNBR = sum / float64(summary.ValidPixels)
		summary.BurnedRatio = float64(summary.BurnedPixels) / float64(summary.ValidPixels)
	}
	return summary
}
