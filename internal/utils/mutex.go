package utils

import "sync"

var gdalMu sync.Mutex

// ExecuteWithGdalMutex serializes GDAL dataset access. godal calls are not
// safe to run concurrently, so batch workers funnel raster reads and writes
// through here while keeping the pure ratio math parallel.
func ExecuteWithGdalMutex(fn func()) {
	gdalMu.Lock()
	defer gdalMu.Unlock()
	fn()
}
