package turf

import (
	"sort"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
)

// AllRegions is the sentinel a client puts in Selection.Regions to mean
// "every region in the dataset". It expands at filter time, never from a
// cached snapshot.
const AllRegions = "All Regions"

// Selection is the transient region/turf multi-selection driving every
// screen. An empty Regions list deliberately selects nothing; an empty
// Turfs list means no turf filter.
type Selection struct {
	Regions []string `json:"regions"`
	Turfs   []string `json:"turfs"`
}

// regionSet expands the selection's region list against the given rows,
// resolving the AllRegions sentinel. Nil means "show nothing".
func (s Selection) regionSet(rows []dataset.Precinct) map[string]struct{} {
	if len(s.Regions) == 0 {
		return nil
	}
	for _, r := range s.Regions {
		if r == AllRegions {
			set := make(map[string]struct{})
			for i := range rows {
				if rows[i].Region != "" {
					set[rows[i].Region] = struct{}{}
				}
			}
			return set
		}
	}
	set := make(map[string]struct{}, len(s.Regions))
	for _, r := range s.Regions {
		if r != "" && r != AllRegions {
			set[r] = struct{}{}
		}
	}
	return set
}

// DistinctRegions returns the sorted distinct region names present in rows.
func DistinctRegions(rows []dataset.Precinct) []string {
	seen := map[string]struct{}{}
	var out []string
	for i := range rows {
		r := rows[i].Region
		if r == "" {
			continue
		}
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	sort.Strings(out)
	return out
}

// DistinctTurfs returns the sorted distinct turfs of rows whose region is in
// the given list (which may carry the AllRegions sentinel). The sidebar uses
// this to constrain turf choices to the selected regions.
func DistinctTurfs(rows []dataset.Precinct, regions []string) []string {
	set := Selection{Regions: regions}.regionSet(rows)
	if set == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for i := range rows {
		if _, ok := set[rows[i].Region]; !ok {
			continue
		}
		t := rows[i].Turf
		if t == "" {
			continue
		}
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
