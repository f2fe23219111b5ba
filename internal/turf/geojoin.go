package turf

import (
	"encoding/json"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
)

// DefaultPalette is the 20-color qualitative palette shared by the map and
// both charts. Turfs wrap around it modulo its length when they outnumber
// the entries.
var DefaultPalette = []string{
	"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
	"#ffff33", "#a65628", "#f781bf", "#999999", "#66c2a5",
	"#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f",
	"#e5c494", "#b3b3b3", "#1b9e77", "#d95f02", "#7570b3",
}

// TurfColors assigns each distinct turf of the current subset a palette
// color by its position in the sorted turf list. The same turf therefore
// gets the same color across the map and charts within one render pass;
// stability across different selections is deliberately not promised.
func TurfColors(turfs []string, palette []string) map[string]string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	out := make(map[string]string, len(turfs))
	for i, t := range turfs {
		out[t] = palette[i%len(palette)]
	}
	return out
}

// RenderedFeature is one GeoJSON feature ready for the map widget, with
// display properties rebuilt from the current table rather than carried
// over from the geometry file.
type RenderedFeature struct {
	Type       string            `json:"type"`
	Properties FeatureProperties `json:"properties"`
	Geometry   json.RawMessage   `json:"geometry"`
}

type FeatureProperties struct {
	ID         string `json:"van_precinct_id"`
	Name       string `json:"van_precinct_name"`
	County     string `json:"county_name"`
	Region     string `json:"current_region"`
	Turf       string `json:"current_turf"`
	Voters     *int64 `json:"voters,omitempty"`
	Supporters *int64 `json:"supporters,omitempty"`
}

// FeatureCollection wraps the joined subset for serialization.
type FeatureCollection struct {
	Type     string            `json:"type"`
	Features []RenderedFeature `json:"features"`
}

// JoinFeatures selects the features whose id appears in rows and rebuilds
// each feature's tooltip properties from the row it joined to. Features with
// no matching row, and rows with no matching feature, are silently dropped.
// At most one feature is emitted per id.
func JoinFeatures(rows []dataset.Precinct, features []dataset.Feature, hasVoters, hasSupporters bool) []RenderedFeature {
	if len(rows) == 0 {
		return nil
	}
	byID := make(map[string]*dataset.Precinct, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	var out []RenderedFeature
	emitted := make(map[string]struct{}, len(rows))
	for i := range features {
		p, ok := byID[features[i].ID]
		if !ok {
			continue
		}
		if _, dup := emitted[features[i].ID]; dup {
			continue
		}
		emitted[features[i].ID] = struct{}{}

		props := FeatureProperties{
			ID:     p.ID,
			Name:   p.Name,
			County: p.County,
			Region: p.Region,
			Turf:   p.Turf,
		}
		if hasVoters {
			v := p.Voters
			props.Voters = &v
		}
		if hasSupporters {
			s := p.Supporters
			props.Supporters = &s
		}
		out = append(out, RenderedFeature{
			Type:       "Feature",
			Properties: props,
			Geometry:   features[i].Geometry,
		})
	}
	return out
}

// BoundsOf folds the precomputed per-row bounding boxes into one box for
// fitting the map view. Rows without bounds are skipped; nil means no row
// had them and the caller should fall back to the default view.
func BoundsOf(rows []dataset.Precinct) *dataset.Bounds {
	var acc *dataset.Bounds
	for i := range rows {
		b := rows[i].Bounds
		if b == nil {
			continue
		}
		if acc == nil {
			acc = &dataset.Bounds{MinLat: b.MinLat, MinLon: b.MinLon, MaxLat: b.MaxLat, MaxLon: b.MaxLon}
			continue
		}
		if b.MinLat < acc.MinLat {
			acc.MinLat = b.MinLat
		}
		if b.MinLon < acc.MinLon {
			acc.MinLon = b.MinLon
		}
		if b.MaxLat > acc.MaxLat {
			acc.MaxLat = b.MaxLat
		}
		if b.MaxLon > acc.MaxLon {
			acc.MaxLon = b.MaxLon
		}
	}
	return acc
}
