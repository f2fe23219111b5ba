package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// metricsColumns records which optional columns were present in the header.
type metricsColumns struct {
	voters     bool
	supporters bool
	bounds     bool
	centroids  bool
}

var requiredColumns = []string{
	"van_precinct_id", "van_precinct_name", "county_name",
	"Current Region", "Current Turf",
}

var boundsColumns = []string{"min_lat", "min_lon", "max_lat", "max_lon"}

// parseMetricsCSV reads the precinct metrics table. Required columns must all
// be present; the voters/supporters and bounding-box column groups are
// optional and their absence is reported through metricsColumns.
func parseMetricsCSV(rd io.Reader) ([]Precinct, metricsColumns, error) {
	var cols metricsColumns

	r := csv.NewReader(bufio.NewReader(rd))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, cols, err
	}
	if len(records) < 1 {
		return nil, cols, errors.New("csv has no header row")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	for _, k := range requiredColumns {
		if _, ok := col[k]; !ok {
			return nil, cols, fmt.Errorf("missing required column: %s", k)
		}
	}

	_, hasVoters := col["voters"]
	_, hasSupporters := col["supporters"]
	cols.voters = hasVoters
	cols.supporters = hasSupporters

	cols.bounds = true
	for _, k := range boundsColumns {
		if _, ok := col[k]; !ok {
			cols.bounds = false
			break
		}
	}
	_, hasCLat := col["centroid_lat"]
	_, hasCLon := col["centroid_lon"]
	cols.centroids = hasCLat && hasCLon

	seen := map[string]int{}
	var out []Precinct

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		id := NormalizeID(get("van_precinct_id"))
		if id == "" {
			return nil, cols, fmt.Errorf("row %d: van_precinct_id is required", rowIdx+1)
		}
		if prev, dup := seen[id]; dup {
			return nil, cols, fmt.Errorf("row %d: duplicate van_precinct_id %q (first seen on row %d)", rowIdx+1, id, prev)
		}
		seen[id] = rowIdx + 1

		p := Precinct{
			ID:     id,
			Name:   get("van_precinct_name"),
			County: get("county_name"),
			Region: get("Current Region"),
			Turf:   get("Current Turf"),
		}

		if cols.voters {
			p.Voters, err = parseCount(get("voters"))
			if err != nil {
				return nil, cols, fmt.Errorf("row %d: voters: %w", rowIdx+1, err)
			}
		}
		if cols.supporters {
			p.Supporters, err = parseCount(get("supporters"))
			if err != nil {
				return nil, cols, fmt.Errorf("row %d: supporters: %w", rowIdx+1, err)
			}
		}

		if cols.bounds {
			b, ok, err := parseBounds(get)
			if err != nil {
				return nil, cols, fmt.Errorf("row %d: %w", rowIdx+1, err)
			}
			if ok {
				p.Bounds = b
			}
		}
		if cols.centroids {
			latS, lonS := get("centroid_lat"), get("centroid_lon")
			if latS != "" && lonS != "" {
				lat, err1 := strconv.ParseFloat(latS, 64)
				lon, err2 := strconv.ParseFloat(lonS, 64)
				if err1 != nil || err2 != nil {
					return nil, cols, fmt.Errorf("row %d: bad centroid %q,%q", rowIdx+1, latS, lonS)
				}
				p.Centroid = &LatLon{Lat: lat, Lon: lon}
			}
		}

		out = append(out, p)
	}

	return out, cols, nil
}

// parseCount accepts integer counts that the source files sometimes write as
// floats ("1500.0"). Blank cells read as zero. Negative counts are rejected.
func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative count: %q", s)
	}
	return int64(f), nil
}

// parseBounds reads the four bounding-box cells for one row. A row with all
// four blank simply has no bounds; a partially filled group is an error.
func parseBounds(get func(string) string) (*Bounds, bool, error) {
	vals := make([]string, len(boundsColumns))
	blank := 0
	for i, k := range boundsColumns {
		vals[i] = get(k)
		if vals[i] == "" {
			blank++
		}
	}
	if blank == len(boundsColumns) {
		return nil, false, nil
	}
	if blank > 0 {
		return nil, false, errors.New("partial bounding box (some of min/max lat/lon blank)")
	}
	nums := make([]float64, len(vals))
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false, fmt.Errorf("bad %s value %q", boundsColumns[i], v)
		}
		nums[i] = f
	}
	return &Bounds{MinLat: nums[0], MinLon: nums[1], MaxLat: nums[2], MaxLon: nums[3]}, true, nil
}
