package turf

import (
	"sort"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
)

// Summary is the KPI rollup for a filtered row set. SupportRate is nil when
// it is not applicable: either count column is missing from the dataset or
// the voter sum is zero. It is never silently reported as 0%.
type Summary struct {
	Count           int      `json:"count"`
	TotalVoters     int64    `json:"total_voters"`
	TotalSupporters int64    `json:"total_supporters"`
	SupportRate     *float64 `json:"support_rate"`
	ModifiedCount   int      `json:"modified_count"`
}

// TurfSummary is one row of the "Breakdown by Turf" table.
type TurfSummary struct {
	Turf          string `json:"turf"`
	Voters        int64  `json:"voters"`
	Supporters    int64  `json:"supporters"`
	PrecinctCount int    `json:"precinct_count"`
}

// PrecinctVoters is one bar of the voter-distribution chart.
type PrecinctVoters struct {
	ID     string `json:"van_precinct_id"`
	Name   string `json:"van_precinct_name"`
	Turf   string `json:"turf"`
	Voters int64  `json:"voters"`
}

// Aggregate computes the KPI scalars for rows. The Has* flags come from the
// dataset and gate which sums are meaningful; an empty row set yields zero
// counts and a nil rate, not an error.
func Aggregate(rows []dataset.Precinct, hasVoters, hasSupporters bool) Summary {
	s := Summary{Count: len(rows)}
	if hasVoters {
		for i := range rows {
			s.TotalVoters += rows[i].Voters
		}
	}
	if hasSupporters {
		for i := range rows {
			s.TotalSupporters += rows[i].Supporters
		}
	}
	if hasVoters && hasSupporters && s.TotalVoters > 0 {
		rate := float64(s.TotalSupporters) / float64(s.TotalVoters)
		s.SupportRate = &rate
	}
	return s
}

// PerTurf groups rows by turf and sums their counts, sorted by turf name.
func PerTurf(rows []dataset.Precinct, hasVoters, hasSupporters bool) []TurfSummary {
	byTurf := map[string]*TurfSummary{}
	for i := range rows {
		t := rows[i].Turf
		ts, ok := byTurf[t]
		if !ok {
			ts = &TurfSummary{Turf: t}
			byTurf[t] = ts
		}
		ts.PrecinctCount++
		if hasVoters {
			ts.Voters += rows[i].Voters
		}
		if hasSupporters {
			ts.Supporters += rows[i].Supporters
		}
	}

	out := make([]TurfSummary, 0, len(byTurf))
	for _, ts := range byTurf {
		out = append(out, *ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Turf < out[j].Turf })
	return out
}

// PerPrecinct is the charting series: voters per precinct, sorted by
// (turf, name). Returns nil when the dataset has no voters column.
func PerPrecinct(rows []dataset.Precinct, hasVoters bool) []PrecinctVoters {
	if !hasVoters {
		return nil
	}
	sorted := make([]dataset.Precinct, len(rows))
	copy(sorted, rows)
	SortForDisplay(sorted)

	out := make([]PrecinctVoters, 0, len(sorted))
	for i := range sorted {
		out = append(out, PrecinctVoters{
			ID:     sorted[i].ID,
			Name:   sorted[i].Name,
			Turf:   sorted[i].Turf,
			Voters: sorted[i].Voters,
		})
	}
	return out
}
