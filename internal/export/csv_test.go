package export_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
	"github.com/OrganizeVA/turf-backend/internal/export"
	"github.com/OrganizeVA/turf-backend/internal/turf"
)

func sampleRows() []dataset.Precinct {
	return []dataset.Precinct{
		{ID: "P2", Name: "Beta", County: "Henrico", Region: "Region A", Turf: "Turf Y", Voters: 50, Supporters: 20},
		{ID: "P1", Name: "Alpha", County: "Henrico", Region: "Region A", Turf: "Turf X", Voters: 100, Supporters: 60},
	}
}

func readAll(t *testing.T, s string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	if err != nil {
		t.Fatalf("re-reading written CSV: %v", err)
	}
	return records
}

// TestPrecinctCSV verifies the table projection: header, (turf, name) sort
// and raw numeric cells.
func TestPrecinctCSV(t *testing.T) {
	var sb strings.Builder
	if err := export.PrecinctCSV(&sb, sampleRows(), true, true); err != nil {
		t.Fatalf("PrecinctCSV: %v", err)
	}

	records := readAll(t, sb.String())
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	wantHeader := "Current Turf,van_precinct_name,van_precinct_id,county_name,voters,supporters"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}
	// Sorted by turf: X/Alpha before Y/Beta.
	if records[1][1] != "Alpha" || records[2][1] != "Beta" {
		t.Errorf("rows not sorted for display: %v", records[1:])
	}
	if records[1][4] != "100" {
		t.Errorf("voters cell = %q, want raw 100", records[1][4])
	}
}

// TestPrecinctCSV_WithoutCounts verifies the optional columns disappear from
// the projection when the dataset lacks them.
func TestPrecinctCSV_WithoutCounts(t *testing.T) {
	var sb strings.Builder
	if err := export.PrecinctCSV(&sb, sampleRows(), false, false); err != nil {
		t.Fatalf("PrecinctCSV: %v", err)
	}
	records := readAll(t, sb.String())
	if len(records[0]) != 4 {
		t.Errorf("expected 4 columns without counts, got %v", records[0])
	}
}

// TestTurfSummaryCSV verifies the breakdown projection round-trips the
// aggregator's output.
func TestTurfSummaryCSV(t *testing.T) {
	summaries := turf.PerTurf(sampleRows(), true, true)

	var sb strings.Builder
	if err := export.TurfSummaryCSV(&sb, summaries, true, true); err != nil {
		t.Fatalf("TurfSummaryCSV: %v", err)
	}
	records := readAll(t, sb.String())
	if len(records) != 3 {
		t.Fatalf("expected header + 2 turfs, got %d", len(records))
	}
	if records[1][0] != "Turf X" || records[1][1] != "100" || records[1][3] != "1" {
		t.Errorf("turf X row wrong: %v", records[1])
	}
}

// TestAssignmentsCSV verifies the Changed column reflects the provided
// predicate and defaults to false with a nil predicate.
func TestAssignmentsCSV(t *testing.T) {
	rows := sampleRows()

	var sb strings.Builder
	err := export.AssignmentsCSV(&sb, rows, true, true, func(id string) bool { return id == "P1" })
	if err != nil {
		t.Fatalf("AssignmentsCSV: %v", err)
	}
	records := readAll(t, sb.String())
	last := len(records[0]) - 1
	if records[0][last] != "Changed" {
		t.Fatalf("last column should be Changed, got %q", records[0][last])
	}
	for _, rec := range records[1:] {
		want := "false"
		if rec[0] == "P1" {
			want = "true"
		}
		if rec[last] != want {
			t.Errorf("row %s Changed = %q, want %q", rec[0], rec[last], want)
		}
	}

	sb.Reset()
	if err := export.AssignmentsCSV(&sb, rows, true, true, nil); err != nil {
		t.Fatalf("AssignmentsCSV nil predicate: %v", err)
	}
	for _, rec := range readAll(t, sb.String())[1:] {
		if rec[last] != "false" {
			t.Errorf("nil predicate should mark everything false, got %v", rec)
		}
	}
}
