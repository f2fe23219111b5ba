// export-assignments writes the assignments CSV for a dataset without going
// through the server: every row with its current region/turf and
// Changed=false. Useful as the baseline file before an editing session.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
	"github.com/OrganizeVA/turf-backend/internal/export"
)

func main() {
	metrics := flag.String("metrics", "output/precincts_metrics_updated.csv", "precinct metrics CSV")
	geojson := flag.String("geojson", "output/precincts_simplified_updated.geojson", "precinct geometry GeoJSON")
	out := flag.String("out", "precinct_assignments.csv", "output CSV path")
	flag.Parse()

	src, err := dataset.NewSource(*metrics, *geojson)
	if err != nil {
		log.Fatal(err)
	}
	ds, err := dataset.Load(src)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := export.AssignmentsCSV(f, ds.Precincts, ds.HasVoters, ds.HasSupporters, nil); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d rows to %s", len(ds.Precincts), *out)
}
