package turf

import (
	"encoding/json"
	"net/http"

	"github.com/OrganizeVA/turf-backend/internal/config"
	"github.com/OrganizeVA/turf-backend/internal/dataset"
	"github.com/OrganizeVA/turf-backend/internal/middleware"
)

// Handler serves the dashboard's read endpoints. All of them work off the
// calling session's working copy, so applied edits show up immediately in
// every table, chart and map layer.
type Handler struct {
	Palette    []string
	QuickViews []config.QuickView

	// Fallback map view when no filtered row carries a bounding box.
	MapCenterLat float64
	MapCenterLon float64
	MapZoom      int
}

// TableRow is one row of the "precincts in selection" table. Voters and
// supporters are omitted when the dataset lacks those columns.
type TableRow struct {
	Turf       string          `json:"current_turf"`
	Name       string          `json:"van_precinct_name"`
	ID         string          `json:"van_precinct_id"`
	County     string          `json:"county_name"`
	Region     string          `json:"current_region"`
	Voters     *int64          `json:"voters,omitempty"`
	Supporters *int64          `json:"supporters,omitempty"`
	Centroid   *dataset.LatLon `json:"centroid,omitempty"`
	Changed    bool            `json:"changed"`
}

type queryResponse struct {
	Rows       []TableRow        `json:"rows"`
	Summary    Summary           `json:"summary"`
	Display    summaryDisplay    `json:"summary_display"`
	PerTurf    []TurfSummary     `json:"per_turf"`
	Series     []PrecinctVoters  `json:"per_precinct"`
	Bounds     *dataset.Bounds   `json:"bounds"`
	TurfColors map[string]string `json:"turf_colors"`
	Fallback   fallbackView      `json:"fallback_view"`
}

type summaryDisplay struct {
	Count       string `json:"count"`
	TotalVoters string `json:"total_voters"`
	SupportRate string `json:"support_rate"`
}

type fallbackView struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

// RegionsHandler lists the selectable regions with the all-regions sentinel
// prepended, exactly what the sidebar multiselect needs.
func (h *Handler) RegionsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	regions := DistinctRegions(session.WorkingCopy())
	out := append([]string{AllRegions}, regions...)
	writeJSON(w, map[string]any{"regions": out})
}

// TurfsHandler lists the turfs available inside the regions given as
// repeated ?region= parameters.
func (h *Handler) TurfsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	regions := r.URL.Query()["region"]
	turfs := DistinctTurfs(session.WorkingCopy(), regions)
	writeJSON(w, map[string]any{"turfs": turfs})
}

// QueryHandler is the dashboard's main read: filtered table rows, KPI
// summary, per-turf breakdown, charting series, map bounds and turf colors
// in one response.
func (h *Handler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	var sel Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ds := session.Dataset()
	rows := Filter(session.WorkingCopy(), sel)
	SortForDisplay(rows)

	summary := Aggregate(rows, ds.HasVoters, ds.HasSupporters)
	summary.ModifiedCount = len(session.ChangedIDs())

	resp := queryResponse{
		Rows:    make([]TableRow, 0, len(rows)),
		Summary: summary,
		Display: summaryDisplay{
			Count:       FormatCount(int64(summary.Count)),
			TotalVoters: FormatCount(summary.TotalVoters),
			SupportRate: FormatRate(summary.SupportRate),
		},
		PerTurf:    PerTurf(rows, ds.HasVoters, ds.HasSupporters),
		Series:     PerPrecinct(rows, ds.HasVoters),
		Bounds:     BoundsOf(rows),
		TurfColors: TurfColors(DistinctTurfs(rows, []string{AllRegions}), h.Palette),
		Fallback:   fallbackView{Lat: h.MapCenterLat, Lon: h.MapCenterLon, Zoom: h.MapZoom},
	}
	for i := range rows {
		row := TableRow{
			Turf:    rows[i].Turf,
			Name:    rows[i].Name,
			ID:      rows[i].ID,
			County:  rows[i].County,
			Region:  rows[i].Region,
			Changed: session.Changed(rows[i].ID),
		}
		if ds.HasVoters {
			v := rows[i].Voters
			row.Voters = &v
		}
		if ds.HasSupporters {
			s := rows[i].Supporters
			row.Supporters = &s
		}
		// Centroids ride along for label placement on the map.
		if ds.HasCentroids {
			row.Centroid = rows[i].Centroid
		}
		resp.Rows = append(resp.Rows, row)
	}

	writeJSON(w, resp)
}

// FeaturesHandler returns the joined GeoJSON subset for the current
// selection, with tooltip properties rebuilt from the working copy.
func (h *Handler) FeaturesHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	var sel Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ds := session.Dataset()
	rows := Filter(session.WorkingCopy(), sel)
	features := JoinFeatures(rows, ds.Features, ds.HasVoters, ds.HasSupporters)
	if features == nil {
		features = []RenderedFeature{}
	}

	writeJSON(w, map[string]any{
		"collection": FeatureCollection{Type: "FeatureCollection", Features: features},
		"turf_colors": TurfColors(
			DistinctTurfs(rows, []string{AllRegions}), h.Palette),
	})
}

// QuickViewsHandler lists the configured filter presets.
func (h *Handler) QuickViewsHandler(w http.ResponseWriter, r *http.Request) {
	views := h.QuickViews
	if views == nil {
		views = []config.QuickView{}
	}
	writeJSON(w, map[string]any{"quick_views": views})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
