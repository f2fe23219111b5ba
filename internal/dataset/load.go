package dataset

import (
	"fmt"
	"os"
	"time"
)

// Source names one snapshot of the two input files. The captured mod times
// let a calling layer notice when the files have been regenerated; loading
// itself never depends on them.
type Source struct {
	MetricsPath string
	GeoJSONPath string

	metricsModTime time.Time
	geoModTime     time.Time
}

// NewSource stats both files so the snapshot's mod times are pinned.
func NewSource(metricsPath, geoJSONPath string) (Source, error) {
	s := Source{MetricsPath: metricsPath, GeoJSONPath: geoJSONPath}
	var err error
	if s.metricsModTime, err = modTime(metricsPath); err != nil {
		return Source{}, err
	}
	if s.geoModTime, err = modTime(geoJSONPath); err != nil {
		return Source{}, err
	}
	return s, nil
}

// Stale reports whether either file has changed on disk since the Source was
// created.
func (s Source) Stale() (bool, error) {
	mt, err := modTime(s.MetricsPath)
	if err != nil {
		return false, err
	}
	gt, err := modTime(s.GeoJSONPath)
	if err != nil {
		return false, err
	}
	return !mt.Equal(s.metricsModTime) || !gt.Equal(s.geoModTime), nil
}

func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}

// Load reads the metrics table and geometry collection into an immutable
// Dataset. It is side-effect-free and idempotent for a given snapshot.
func Load(src Source) (*Dataset, error) {
	mf, err := os.Open(src.MetricsPath)
	if err != nil {
		return nil, fmt.Errorf("open metrics: %w", err)
	}
	defer mf.Close()

	precincts, cols, err := parseMetricsCSV(mf)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.MetricsPath, err)
	}

	gf, err := os.Open(src.GeoJSONPath)
	if err != nil {
		return nil, fmt.Errorf("open geojson: %w", err)
	}
	defer gf.Close()

	features, err := parseGeoJSON(gf)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.GeoJSONPath, err)
	}

	ds := &Dataset{
		Precincts:     precincts,
		Features:      features,
		HasVoters:     cols.voters,
		HasSupporters: cols.supporters,
		HasBounds:     cols.bounds,
		HasCentroids:  cols.centroids,
	}
	ds.index()
	return ds, nil
}
