package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/OrganizeVA/turf-backend/internal/config"
	"github.com/OrganizeVA/turf-backend/internal/dataset"
	"github.com/OrganizeVA/turf-backend/internal/editor"
	"github.com/OrganizeVA/turf-backend/internal/export"
	"github.com/OrganizeVA/turf-backend/internal/middleware"
	"github.com/OrganizeVA/turf-backend/internal/turf"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	configPath := os.Getenv("TURF_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	src, err := dataset.NewSource(cfg.MetricsPath, cfg.GeoJSONPath)
	if err != nil {
		log.Fatal("Failed to locate data files: ", err)
	}
	data, err := dataset.NewStore(src)
	if err != nil {
		log.Fatal("Failed to load dataset: ", err)
	}
	ds := data.Current()
	log.Printf("dataset loaded: %d precincts, %d features", len(ds.Precincts), len(ds.Features))

	sessions := editor.NewStore(data, time.Duration(cfg.SessionTTL))

	dashboards := &turf.Handler{
		Palette:      cfg.Palette,
		QuickViews:   cfg.QuickViews,
		MapCenterLat: cfg.MapCenterLat,
		MapCenterLon: cfg.MapCenterLon,
		MapZoom:      cfg.MapZoom,
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessions))
		r.Mount("/dashboard", turf.SetupRoutes(dashboards))
		r.Mount("/editor", editor.SetupRoutes())

		limiter := rate.NewLimiter(rate.Limit(cfg.DownloadsPerSecond), cfg.DownloadBurst)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitMiddleware(limiter))
			r.Mount("/export", export.SetupRoutes())
		})
	})

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
