package delivery

import (
	"fmt"
	"os"
	"strings"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/cache"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/nbr"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/properties"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/raster"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/scene"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/utils"
	"github.com/fire-guardian/fire-guardian-cli-poc/output"
)

func summaryCache() *cache.FileCache[nbr.Summary] {
	return cache.NewFileCache[nbr.Summary]("summary_cache")
}

// sceneCacheKey keys the summary cache on the scene handle plus the band
// file modification times, so a re-delivered scene invalidates its entry.
func sceneCacheKey(sc *scene.Scene) (string, error) {
	params := []interface{}{sc.Path}
	for _, role := range []scene.BandRole{scene.RoleNIR, scene.RoleSWIR} {
		path, err := sc.ResolveBand(role)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("failed to stat band file %s: %w", path, err)
		}
		params = append(params, path, info.ModTime().UnixNano())
	}
	return summaryCache().GenerateKey(params...), nil
}

// CachedSummary returns the cached summary for a scene when both the cache
// entry and the output raster from a previous run are still present.
func CachedSummary(scenePath, outputPath string) (nbr.Summary, bool) {
	if _, err := os.Stat(outputPath); err != nil {
		return nbr.Summary{}, false
	}
	key, err := sceneCacheKey(scene.New(scenePath))
	if err != nil {
		return nbr.Summary{}, false
	}
	return summaryCache().Get(key)
}

// EvaluateScene runs the burn-ratio pipeline for one scene and writes the
// NBR raster to outputPath. The raster is the contractual artifact; the
// quicklook PNG and footprint GeoJSON written next to it are best-effort
// and their failures are reported but not fatal.
func EvaluateScene(scenePath, outputPath string) (nbr.Summary, error) {
	sc := scene.New(scenePath)

	var nirBand, swirBand *raster.Band
	var err error
	utils.ExecuteWithGdalMutex(func() {
		nirBand, swirBand, err = sc.LoadBands()
	})
	if err != nil {
		return nbr.Summary{}, err
	}

	result, err := nbr.EvaluateBandBurnRatio(nirBand, swirBand)
	if err != nil {
		return nbr.Summary{}, err
	}

	utils.ExecuteWithGdalMutex(func() {
		err = raster.WriteGeoTIFF(outputPath, result)
	})
	if err != nil {
		return nbr.Summary{}, err
	}

	burnThreshold := properties.BurnThreshold()
	summary := nbr.Summarize(sc.Name(), result, burnThreshold)

	if key, err := sceneCacheKey(sc); err == nil {
		if err := summaryCache().Set(key, summary); err != nil {
			fmt.Printf("Failed to cache scene summary: %v\n", err)
		}
	}

	sideOutputBase := strings.TrimSuffix(outputPath, ".tif")
	if err := output.CreateQuicklookImage(result, burnThreshold, sideOutputBase+"_quicklook.png"); err != nil {
		fmt.Printf("Failed to create quicklook image: %v\n", err)
	}
	if err := output.CreateFootprintGeoJSON(result, summary, sideOutputBase+"_footprint.geojson"); err != nil {
		fmt.Printf("Failed to create footprint GeoJSON: %v\n", err)
	}

	return summary, nil
}
