package turf

import (
	"sort"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
)

// Filter applies the selection to the given rows. An empty region selection
// returns an empty result by policy ("show nothing until a region is
// chosen"); an empty turf selection passes every turf in the selected
// regions. Pure and deterministic; result order follows input order and
// callers sort for display themselves.
func Filter(rows []dataset.Precinct, sel Selection) []dataset.Precinct {
	regions := sel.regionSet(rows)
	if regions == nil {
		return nil
	}

	var turfs map[string]struct{}
	if len(sel.Turfs) > 0 {
		turfs = make(map[string]struct{}, len(sel.Turfs))
		for _, t := range sel.Turfs {
			turfs[t] = struct{}{}
		}
	}

	var out []dataset.Precinct
	for i := range rows {
		if _, ok := regions[rows[i].Region]; !ok {
			continue
		}
		if turfs != nil {
			if _, ok := turfs[rows[i].Turf]; !ok {
				continue
			}
		}
		out = append(out, rows[i])
	}
	return out
}

// SortForDisplay orders rows by (turf, precinct name) ascending, the
// convention every table and chart uses.
func SortForDisplay(rows []dataset.Precinct) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Turf != rows[j].Turf {
			return rows[i].Turf < rows[j].Turf
		}
		return rows[i].Name < rows[j].Name
	})
}
