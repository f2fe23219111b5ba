package editor

import (
	"encoding/json"
	"net/http"

	"github.com/OrganizeVA/turf-backend/internal/utils"
)

// sessionFromContext mirrors middleware.SessionFromContext without the
// import cycle (the middleware package depends on this one).
func sessionFromContext(r *http.Request) (*Session, bool) {
	s, ok := r.Context().Value(utils.ContextSessionKey).(*Session)
	return s, ok
}

type stageRequest struct {
	ID     string `json:"van_precinct_id"`
	Region string `json:"region"`
	Turf   string `json:"turf"`
}

// StageHandler records candidate reassignments for a batch of precincts.
// Unknown ids are skipped and counted, not treated as errors.
func StageHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	var input []stageRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	staged, unknown := 0, 0
	for _, entry := range input {
		if session.Stage(entry.ID, StagedChange{Region: entry.Region, Turf: entry.Turf}) {
			staged++
		} else {
			unknown++
		}
	}

	writeJSON(w, map[string]any{"staged": staged, "unknown": unknown})
}

// ApplyHandler commits every staged entry with at least one non-empty field
// to the working copy.
func ApplyHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	applied, anyApplied := session.Apply()
	msg := "No changes to apply. Select new regions or turfs first."
	if anyApplied {
		msg = "Changes applied."
	}
	writeJSON(w, map[string]any{"applied": applied, "message": msg})
}

// ResetHandler restores the pristine dataset and clears the changed-set.
func ResetHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	msg := "No changes to reset."
	if session.Reset() {
		msg = "All changes reset."
	}
	writeJSON(w, map[string]any{"message": msg})
}

// ChangesHandler reports which precincts this session has modified.
func ChangesHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		http.Error(w, "No editing session", http.StatusInternalServerError)
		return
	}

	ids := session.ChangedIDs()
	writeJSON(w, map[string]any{"changed_ids": ids, "count": len(ids)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
