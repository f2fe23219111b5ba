// validate-data loads a metrics CSV and its GeoJSON companion and reports
// the join misses in both directions, since the dashboard itself drops them
// silently.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/OrganizeVA/turf-backend/internal/dataset"
)

func main() {
	metrics := flag.String("metrics", "output/precincts_metrics_updated.csv", "precinct metrics CSV")
	geojson := flag.String("geojson", "output/precincts_simplified_updated.geojson", "precinct geometry GeoJSON")
	flag.Parse()

	src, err := dataset.NewSource(*metrics, *geojson)
	if err != nil {
		log.Fatal(err)
	}
	ds, err := dataset.Load(src)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("precincts: %d\n", len(ds.Precincts))
	fmt.Printf("features:  %d\n", len(ds.Features))
	fmt.Printf("columns:   voters=%v supporters=%v bounds=%v centroids=%v\n",
		ds.HasVoters, ds.HasSupporters, ds.HasBounds, ds.HasCentroids)

	featureIDs := make(map[string]int, len(ds.Features))
	for _, f := range ds.Features {
		featureIDs[f.ID]++
	}

	var rowsWithoutFeature, duplicateFeatures int
	for i := range ds.Precincts {
		if featureIDs[ds.Precincts[i].ID] == 0 {
			rowsWithoutFeature++
		}
	}
	for _, n := range featureIDs {
		if n > 1 {
			duplicateFeatures += n - 1
		}
	}

	featuresWithoutRow := 0
	for _, f := range ds.Features {
		if _, ok := ds.Lookup(f.ID); !ok {
			featuresWithoutRow++
		}
	}

	fmt.Printf("rows without a feature (invisible on map): %d\n", rowsWithoutFeature)
	fmt.Printf("features without a row (never rendered):   %d\n", featuresWithoutRow)
	fmt.Printf("duplicate features per id:                 %d\n", duplicateFeatures)
}
