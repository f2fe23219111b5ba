package export

import (
	"fmt"
	"net/http"

	"github.com/OrganizeVA/turf-backend/internal/middleware"
	"github.com/OrganizeVA/turf-backend/internal/turf"
)

// PrecinctsHandler downloads the filtered precinct table. The selection
// arrives as repeated ?regions= / ?turfs= query parameters so the frontend
// can use a plain link.
func PrecinctsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	sel := selectionFromQuery(r)
	ds := session.Dataset()
	rows := turf.Filter(session.WorkingCopy(), sel)

	setDownloadHeaders(w, "precincts_in_selection.csv")
	if err := PrecinctCSV(w, rows, ds.HasVoters, ds.HasSupporters); err != nil {
		http.Error(w, "Failed to write CSV", http.StatusInternalServerError)
	}
}

// TurfSummaryHandler downloads the per-turf breakdown of the filtered rows.
func TurfSummaryHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	sel := selectionFromQuery(r)
	ds := session.Dataset()
	rows := turf.Filter(session.WorkingCopy(), sel)
	summaries := turf.PerTurf(rows, ds.HasVoters, ds.HasSupporters)

	setDownloadHeaders(w, "breakdown_by_turf.csv")
	if err := TurfSummaryCSV(w, summaries, ds.HasVoters, ds.HasSupporters); err != nil {
		http.Error(w, "Failed to write CSV", http.StatusInternalServerError)
	}
}

// AssignmentsHandler downloads the session's whole working copy with the
// Changed column, regardless of the current filter.
func AssignmentsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	ds := session.Dataset()
	rows := session.WorkingCopy()

	setDownloadHeaders(w, "precinct_assignments.csv")
	if err := AssignmentsCSV(w, rows, ds.HasVoters, ds.HasSupporters, session.Changed); err != nil {
		http.Error(w, "Failed to write CSV", http.StatusInternalServerError)
	}
}

func selectionFromQuery(r *http.Request) turf.Selection {
	q := r.URL.Query()
	return turf.Selection{Regions: q["regions"], Turfs: q["turfs"]}
}

func setDownloadHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
