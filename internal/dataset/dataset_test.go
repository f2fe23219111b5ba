package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNormalizeID verifies that the mixed identifier representations found
// in the source files all collapse to one canonical text form.
func TestNormalizeID(t *testing.T) {
	cases := map[string]string{
		"123":     "123",
		"123.0":   "123",
		" 123 ":   "123",
		"123.5":   "123.5",
		"A-17":    "A-17",
		" A-17 ":  "A-17",
		"":        "",
		"0":       "0",
		"51041.0": "51041",
	}
	for in, want := range cases {
		if got := NormalizeID(in); got != want {
			t.Errorf("NormalizeID(%q) = %q, want %q", in, got, want)
		}
	}
}

const sampleCSV = `van_precinct_id,van_precinct_name,county_name,Current Region,Current Turf,voters,supporters,min_lat,min_lon,max_lat,max_lon
101.0,Alpha,Henrico,Region A,Turf X,100,60,37.1,-77.5,37.2,-77.4
102,Beta,Henrico,Region A,Turf Y,50,20,37.0,-77.6,37.1,-77.5
103,Gamma,Chesterfield,Region B,Turf Z,25,5,,,,
`

// TestParseMetricsCSV verifies column detection, id normalization and the
// optional bounding-box group on a representative table.
func TestParseMetricsCSV(t *testing.T) {
	rows, cols, err := parseMetricsCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parseMetricsCSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if !cols.voters || !cols.supporters || !cols.bounds {
		t.Errorf("expected voters/supporters/bounds columns detected, got %+v", cols)
	}
	if cols.centroids {
		t.Error("centroids should not be detected")
	}

	if rows[0].ID != "101" {
		t.Errorf("expected float id normalized to 101, got %q", rows[0].ID)
	}
	if rows[0].Bounds == nil || rows[0].Bounds.MinLat != 37.1 {
		t.Errorf("expected bounds on row 0, got %+v", rows[0].Bounds)
	}
	if rows[2].Bounds != nil {
		t.Errorf("row with blank box cells should have nil bounds, got %+v", rows[2].Bounds)
	}
	if rows[1].Voters != 50 || rows[1].Supporters != 20 {
		t.Errorf("unexpected counts on row 1: %+v", rows[1])
	}
}

// TestParseMetricsCSV_MissingRequiredColumn verifies the fail-fast error for
// a table without a join key.
func TestParseMetricsCSV_MissingRequiredColumn(t *testing.T) {
	csv := "van_precinct_name,county_name,Current Region,Current Turf\nAlpha,Henrico,Region A,Turf X\n"
	_, _, err := parseMetricsCSV(strings.NewReader(csv))
	if err == nil || !strings.Contains(err.Error(), "van_precinct_id") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

// TestParseMetricsCSV_DuplicateID verifies that two rows normalizing to the
// same id are rejected, since the id is the dataset's unique key.
func TestParseMetricsCSV_DuplicateID(t *testing.T) {
	csv := "van_precinct_id,van_precinct_name,county_name,Current Region,Current Turf\n" +
		"7,Alpha,Henrico,Region A,Turf X\n" +
		"7.0,Beta,Henrico,Region A,Turf Y\n"
	_, _, err := parseMetricsCSV(strings.NewReader(csv))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

// TestParseMetricsCSV_OptionalColumnsAbsent verifies graceful degradation
// when a dataset variant ships without counts or boxes.
func TestParseMetricsCSV_OptionalColumnsAbsent(t *testing.T) {
	csv := "van_precinct_id,van_precinct_name,county_name,Current Region,Current Turf\n" +
		"1,Alpha,Henrico,Region A,Turf X\n"
	rows, cols, err := parseMetricsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parseMetricsCSV: %v", err)
	}
	if cols.voters || cols.supporters || cols.bounds || cols.centroids {
		t.Errorf("no optional columns should be detected, got %+v", cols)
	}
	if rows[0].Voters != 0 || rows[0].Bounds != nil {
		t.Errorf("absent columns should read as zero values, got %+v", rows[0])
	}
}

const sampleGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"van_precinct_id": 101, "Current Turf": "stale turf"}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
		{"type": "Feature", "properties": {"van_precinct_id": "102"}, "geometry": {"type": "Polygon", "coordinates": [[[2,2],[3,2],[3,3],[2,2]]]}},
		{"type": "Feature", "properties": {"name": "no id"}, "geometry": {"type": "Polygon", "coordinates": []}}
	]
}`

// TestParseGeoJSON verifies numeric id normalization and that features
// without a usable join key are skipped.
func TestParseGeoJSON(t *testing.T) {
	features, err := parseGeoJSON(strings.NewReader(sampleGeoJSON))
	if err != nil {
		t.Fatalf("parseGeoJSON: %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("expected 2 features (id-less one dropped), got %d", len(features))
	}
	if features[0].ID != "101" {
		t.Errorf("expected numeric id normalized to 101, got %q", features[0].ID)
	}
	if len(features[0].Geometry) == 0 {
		t.Error("geometry should be carried through raw")
	}
}

// TestParseGeoJSON_NotACollection verifies the loader rejects a bare
// geometry object.
func TestParseGeoJSON_NotACollection(t *testing.T) {
	_, err := parseGeoJSON(strings.NewReader(`{"type": "Polygon", "coordinates": []}`))
	if err == nil {
		t.Fatal("expected error for non-FeatureCollection input")
	}
}

// writeDataFiles drops a matching CSV/GeoJSON pair into a temp dir.
func writeDataFiles(t *testing.T, csvBody, geoBody string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	metrics := filepath.Join(dir, "metrics.csv")
	geo := filepath.Join(dir, "precincts.geojson")
	if err := os.WriteFile(metrics, []byte(csvBody), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(geo, []byte(geoBody), 0o644); err != nil {
		t.Fatal(err)
	}
	return metrics, geo
}

// TestLoadAndLookup verifies the end-to-end load path and id lookup.
func TestLoadAndLookup(t *testing.T) {
	metrics, geo := writeDataFiles(t, sampleCSV, sampleGeoJSON)
	src, err := NewSource(metrics, geo)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	ds, err := Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p, ok := ds.Lookup("101.0")
	if !ok {
		t.Fatal("Lookup(101.0) should resolve via normalization")
	}
	if p.Name != "Alpha" || p.Region != "Region A" {
		t.Errorf("unexpected precinct: %+v", p)
	}
	if _, ok := ds.Lookup("999"); ok {
		t.Error("Lookup(999) should miss")
	}

	// Loading twice from the same snapshot yields equal data.
	again, err := Load(src)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(again.Precincts) != len(ds.Precincts) || len(again.Features) != len(ds.Features) {
		t.Error("Load is not idempotent for a fixed snapshot")
	}
}

// TestCopyPrecincts verifies the working copy is detached from the dataset.
func TestCopyPrecincts(t *testing.T) {
	metrics, geo := writeDataFiles(t, sampleCSV, sampleGeoJSON)
	src, _ := NewSource(metrics, geo)
	ds, err := Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	work := ds.CopyPrecincts()
	work[0].Turf = "Somewhere Else"
	if ds.Precincts[0].Turf == "Somewhere Else" {
		t.Error("mutating the copy must not touch the dataset")
	}
}

// TestSourceStale verifies mtime-based staleness detection.
func TestSourceStale(t *testing.T) {
	metrics, geo := writeDataFiles(t, sampleCSV, sampleGeoJSON)
	src, err := NewSource(metrics, geo)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}

	stale, err := src.Stale()
	if err != nil || stale {
		t.Fatalf("fresh source should not be stale (stale=%v, err=%v)", stale, err)
	}

	// Rewrite the CSV with a different timestamp.
	info, _ := os.Stat(metrics)
	if err := os.WriteFile(metrics, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	bumped := info.ModTime().Add(2 * time.Second)
	if err := os.Chtimes(metrics, bumped, bumped); err != nil {
		t.Fatal(err)
	}

	stale, err = src.Stale()
	if err != nil {
		t.Fatalf("Stale: %v", err)
	}
	if !stale {
		t.Error("source should be stale after the CSV's mtime moved")
	}
}
