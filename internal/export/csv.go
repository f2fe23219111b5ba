package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
	"github.com/OrganizeVA/turf-backend/internal/turf"
)

// PrecinctCSV writes the "precincts in selection" table: rows sorted by
// (turf, name) with the voters/supporters columns included only when the
// dataset carries them.
func PrecinctCSV(w io.Writer, rows []dataset.Precinct, hasVoters, hasSupporters bool) error {
	sorted := make([]dataset.Precinct, len(rows))
	copy(sorted, rows)
	turf.SortForDisplay(sorted)

	cw := csv.NewWriter(w)
	header := []string{"Current Turf", "van_precinct_name", "van_precinct_id", "county_name"}
	if hasVoters {
		header = append(header, "voters")
	}
	if hasSupporters {
		header = append(header, "supporters")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range sorted {
		rec := []string{sorted[i].Turf, sorted[i].Name, sorted[i].ID, sorted[i].County}
		if hasVoters {
			rec = append(rec, strconv.FormatInt(sorted[i].Voters, 10))
		}
		if hasSupporters {
			rec = append(rec, strconv.FormatInt(sorted[i].Supporters, 10))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TurfSummaryCSV writes the "breakdown by turf" table.
func TurfSummaryCSV(w io.Writer, summaries []turf.TurfSummary, hasVoters, hasSupporters bool) error {
	cw := csv.NewWriter(w)
	header := []string{"Current Turf"}
	if hasVoters {
		header = append(header, "voters")
	}
	if hasSupporters {
		header = append(header, "supporters")
	}
	header = append(header, "precinct_count")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range summaries {
		rec := []string{s.Turf}
		if hasVoters {
			rec = append(rec, strconv.FormatInt(s.Voters, 10))
		}
		if hasSupporters {
			rec = append(rec, strconv.FormatInt(s.Supporters, 10))
		}
		rec = append(rec, strconv.Itoa(s.PrecinctCount))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// AssignmentsCSV writes the full working copy annotated with a Changed
// column, the export a user takes away after an editing session. changed
// reports whether the given precinct id was modified; nil means none were.
func AssignmentsCSV(w io.Writer, rows []dataset.Precinct, hasVoters, hasSupporters bool, changed func(id string) bool) error {
	sorted := make([]dataset.Precinct, len(rows))
	copy(sorted, rows)
	turf.SortForDisplay(sorted)

	cw := csv.NewWriter(w)
	header := []string{"van_precinct_id", "van_precinct_name", "county_name", "Current Region", "Current Turf"}
	if hasVoters {
		header = append(header, "voters")
	}
	if hasSupporters {
		header = append(header, "supporters")
	}
	header = append(header, "Changed")
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range sorted {
		rec := []string{sorted[i].ID, sorted[i].Name, sorted[i].County, sorted[i].Region, sorted[i].Turf}
		if hasVoters {
			rec = append(rec, strconv.FormatInt(sorted[i].Voters, 10))
		}
		if hasSupporters {
			rec = append(rec, strconv.FormatInt(sorted[i].Supporters, 10))
		}
		wasChanged := changed != nil && changed(sorted[i].ID)
		rec = append(rec, strconv.FormatBool(wasChanged))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
