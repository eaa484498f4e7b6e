package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/properties"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/raster"
)

// BandRole is the semantic role a band file plays in the burn ratio.
type BandRole string

const (
	RoleNIR  BandRole = "NIR"
	RoleSWIR BandRole = "SWIR"
)

// BandMatcher maps a semantic band role to the filename token that marks a
// file as that band. The token match is the single piece of product
// knowledge in the loader; everything downstream is product-agnostic.
type BandMatcher struct {
	Role  BandRole
	Token string
}

// HLS Harmonized Landsat Sentinel band conventions. S30 (Sentinel-2) names
// its NIR narrow band B8A and SWIR-2 B12; L30 (Landsat 8/9) uses B05 and
// B07 for the same spectral regions.
var (
	SentinelMatchers = []BandMatcher{
		{Role: RoleNIR, Token: ".B8A.tif"},
		{Role: RoleSWIR, Token: ".B12.tif"},
	}
	LandsatMatchers = []BandMatcher{
		{Role: RoleNIR, Token: ".B05.tif"},
		{Role: RoleSWIR, Token: ".B07.tif"},
	}
)

// BandNotFoundError reports that a scene has no file, or more than one
// file, matching a required spectral band.
type BandNotFoundError struct {
	Role       BandRole
	Scene      string
	Candidates []string
}

func (e *BandNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("band-not-found: no file matching the %s band in scene %s", e.Role, e.Scene)
	}
	return fmt.Sprintf("band-not-found: %d files match the %s band in scene %s: %s",
		len(e.Candidates), e.Role, e.Scene, strings.Join(e.Candidates, ", "))
}

// Scene identifies one satellite acquisition by its on-disk handle: either
// a directory holding the band files, or a scene prefix such as
// data/HLS.S30.T11SKD.2022286T184329.v2.0 that the band filenames extend.
type Scene struct {
	Path     string
	Matchers []BandMatcher
}

// New creates a Scene with the band convention resolved for its handle:
// env token overrides first, then the Landsat set for HLS.L30 scenes, the
// Sentinel-2 set otherwise.
func New(path string) *Scene {
	return &Scene{Path: path, Matchers: MatchersFor(path)}
}

// MatchersFor picks the band-naming convention for a scene handle.
func MatchersFor(path string) []BandMatcher {
	nirToken := properties.NIRBandToken()
	swirToken := properties.SWIRBandToken()
	if nirToken != "" && swirToken != "" {
		return []BandMatcher{
			{Role: RoleNIR, Token: nirToken},
			{Role: RoleSWIR, Token: swirToken},
		}
	}
	if strings.Contains(filepath.Base(path), "HLS.L30") {
		return LandsatMatchers
	}
	return SentinelMatchers
}

func (s *Scene) matcher(role BandRole) (BandMatcher, error) {
	for _, m := range s.Matchers {
		if m.Role == role {
			return m, nil
		}
	}
	return BandMatcher{}, fmt.Errorf("no matcher configured for the %s band", role)
}

// ResolveBand returns the path of the single file carrying the given band.
// Zero or several candidates is a BandNotFoundError.
func (s *Scene) ResolveBand(role BandRole) (string, error) {
	matcher, err := s.matcher(role)
	if err != nil {
		return "", err
	}

	dir := s.Path
	prefix := ""
	if info, err := os.Stat(s.Path); err != nil || !info.IsDir() {
		dir = filepath.Dir(s.Path)
		prefix = filepath.Base(s.Path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read scene directory %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.Contains(name, matcher.Token) {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}

	if len(candidates) != 1 {
		return "", &BandNotFoundError{Role: role, Scene: s.Path, Candidates: candidates}
	}
	return candidates[0], nil
}

// LoadBands resolves and reads the NIR and SWIR bands of the scene.
func (s *Scene) LoadBands() (nir, swir *raster.Band, err error) {
	nirPath, err := s.ResolveBand(RoleNIR)
	if err != nil {
		return nil, nil, err
	}
	swirPath, err := s.ResolveBand(RoleSWIR)
	if err != nil {
		return nil, nil, err
	}

	nir, err = raster.ReadBand(nirPath)
	if err != nil {
		return nil, nil, err
	}
	swir, err = raster.ReadBand(swirPath)
	if err != nil {
		return nil, nil, err
	}
	return nir, swir, nil
}

// Name returns a short identifier for the scene, used in reports and
// output filenames. Scene handles are directories or filename prefixes,
// never files, so the base name is taken whole.
func (s *Scene) Name() string {
	return filepath.Base(s.Path)
}
