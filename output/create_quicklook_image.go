package output

import (
	"fmt"
	"strings"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/raster"
	"github.com/fogleman/gg"
)

// CreateQuicklookImage renders an NBR raster as a PNG for a quick visual
// check. Valid pixels map to a gray ramp over [-1, 1], pixels under the
// burn threshold are tinted red, and no-data pixels are black.
func CreateQuicklookImage(band *raster.Band, burnThreshold float64, outputImagePath string) error {
	if !strings.HasSuffix(outputImagePath, ".png") {
		outputImagePath += ".png"
	}

	dc := gg.NewContext(band.Width, band.Height)
	for y := 0; y < band.Height; y++ {
		for x := 0; x < band.Width; x++ {
			value := band.Data[y][x]
			if band.IsNoData(value) {
				dc.SetRGB(0, 0, 0)
				dc.SetPixel(x, y)
				continue
			}

			gray := (value + 1) / 2
			if gray < 0 {
				gray = 0
			} else if gray > 1 {
				gray = 1
			}
			if value < burnThreshold {
				dc.SetRGB(0.6+0.4*gray, 0.2*gray, 0.2*gray)
			} else {
				dc.SetRGB(gray, gray, gray)
			}
			dc.SetPixel(x, y)
		}
	}

	if err := dc.SavePNG(outputImagePath); err != nil {
		return fmt.Errorf("failed to save quicklook image: %w", err)
	}

	fmt.Println("Quicklook image created successfully at", outputImagePath)
	return nil
}
