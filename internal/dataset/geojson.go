package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// rawFeatureCollection mirrors the GeoJSON shape on disk. Geometry stays a
// raw message end to end; nothing in this service interprets coordinates.
type rawFeatureCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// parseGeoJSON reads a feature collection and keeps, per feature, only the
// normalized van_precinct_id and the raw geometry. Features with no usable
// id can never join a table row and are skipped.
func parseGeoJSON(rd io.Reader) ([]Feature, error) {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	var fc rawFeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}
	if len(fc.Features) == 0 {
		return nil, errors.New("feature collection has no features")
	}

	out := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		id := normalizeIDValue(f.Properties["van_precinct_id"])
		if id == "" || len(f.Geometry) == 0 {
			continue
		}
		out = append(out, Feature{ID: id, Geometry: f.Geometry})
	}
	return out, nil
}
