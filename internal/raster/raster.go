package raster

import (
	"fmt"
	"sync"

	"github.com/airbusgeo/godal"
)

// Band holds one spectral band fully in memory, together with the
// georeferencing needed to write it back out. Data is row-sliced over a
// single flat buffer, so Data[y][x] addresses the sample at column x of
// row y.
type Band struct {
	Data         [][]float64
	Width        int
	Height       int
	GeoTransform [6]float64
	Projection   string
	NoData       float64
	HasNoData    bool
}

var registerDriversOnce sync.Once

func registerDrivers() {
	registerDriversOnce.Do(func() {
		godal.RegisterInternalDrivers()
	})
}

// ReadBand reads band 1 of a GeoTIFF into a Band. The dataset handle is
// closed before returning; only the in-memory copy survives.
func ReadBand(path string) (*Band, error) {
	registerDrivers()

	dataset, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open raster %s: %w", path, err)
	}
	defer dataset.Close()

	bands := dataset.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("raster %s has no bands", path)
	}
	band := bands[0]

	width := dataset.Structure().SizeX
	height := dataset.Structure().SizeY
	data := make([]float64, width*height)
	if err := band.Read(0, 0, data, width, height); err != nil {
		return nil, fmt.Errorf("failed to read raster data from %s: %w", path, err)
	}
	rows := make([][]float64, height)
	for i := range rows {
		rows[i] = data[i*width : (i+1)*width]
	}

	geoTransform, err := dataset.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("failed to get geotransform from %s: %w", path, err)
	}

	projection := ""
	if sr := dataset.SpatialRef(); sr != nil {
		defer sr.Close()
		wkt, err := sr.WKT()
		if err != nil {
			return nil, fmt.Errorf("failed to export projection of %s: %w", path, err)
		}
		projection = wkt
	}

	noData, hasNoData := band.NoData()

	return &Band{
		Data:         rows,
		Width:        width,
		Height:       height,
		GeoTransform: geoTransform,
		Projection:   projection,
		NoData:       noData,
		HasNoData:    hasNoData,
	}, nil
}

// AlignedWith reports whether two bands share the exact same pixel grid and
// georeferencing. The geotransform comparison is bitwise: the output copies
// spatial metadata verbatim, so "close enough" does not count.
func (b *Band) AlignedWith(other *Band) bool {
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	if b.GeoTransform != other.GeoTransform {
		return false
	}
	return b.Projection == other.Projection
}

// IsNoData reports whether a sample equals the band's declared no-data
// value. Bands without a declared value never report no-data.
func (b *Band) IsNoData(value float64) bool {
	return b.HasNoData && value == b.NoData
}
