package dataset

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Precinct is one row of the metrics table. Region and Turf are the only
// fields the assignment editor ever rewrites on a working copy.
type Precinct struct {
	ID         string  `json:"van_precinct_id"`
	Name       string  `json:"van_precinct_name"`
	County     string  `json:"county_name"`
	Region     string  `json:"current_region"`
	Turf       string  `json:"current_turf"`
	Voters     int64   `json:"voters"`
	Supporters int64   `json:"supporters"`
	Bounds     *Bounds `json:"bounds,omitempty"`
	Centroid   *LatLon `json:"centroid,omitempty"`
}

// Bounds is a precomputed lat/lon bounding box for one or more precincts.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Feature is one boundary shape, reduced at load to the normalized join key
// and the raw geometry. Display properties from the source file are dropped
// so tooltips are always rebuilt from the current table, never from a copy
// that an edit can leave stale.
type Feature struct {
	ID       string
	Geometry json.RawMessage
}

// Dataset bundles one immutable snapshot of the metrics table and its
// geometry collection. The Has* flags record which optional columns the
// snapshot actually carries so aggregation can degrade instead of erroring.
type Dataset struct {
	Precincts []Precinct
	Features  []Feature

	HasVoters     bool
	HasSupporters bool
	HasBounds     bool
	HasCentroids  bool

	byID map[string]int
}

// Lookup returns the precinct with the given normalized id.
func (d *Dataset) Lookup(id string) (*Precinct, bool) {
	i, ok := d.byID[NormalizeID(id)]
	if !ok {
		return nil, false
	}
	return &d.Precincts[i], true
}

// CopyPrecincts returns a fresh slice of the precinct rows, suitable as an
// editing session's working copy. Bounds and Centroid pointers are shared;
// neither is ever mutated after load.
func (d *Dataset) CopyPrecincts() []Precinct {
	out := make([]Precinct, len(d.Precincts))
	copy(out, d.Precincts)
	return out
}

func (d *Dataset) index() {
	d.byID = make(map[string]int, len(d.Precincts))
	for i := range d.Precincts {
		d.byID[d.Precincts[i].ID] = i
	}
}

// NormalizeID maps the mixed identifier representations found in the source
// files (CSV cells like "123.0", JSON numbers, padded strings) onto one
// canonical text form so table/geometry joins line up. Integral numerics
// collapse to their minimal integer text; everything else is trimmed.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// normalizeIDValue handles the scalar types encoding/json produces for a
// feature's id property.
func normalizeIDValue(v any) string {
	switch t := v.(type) {
	case string:
		return NormalizeID(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return NormalizeID(t.String())
	default:
		return ""
	}
}
