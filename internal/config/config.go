package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Config is the service configuration, read from a YAML file named by
// TURF_CONFIG (default config.yaml). Missing file means built-in defaults;
// the data paths still have to point at real files for the server to boot.
type Config struct {
	MetricsPath string `yaml:"metrics_path"`
	GeoJSONPath string `yaml:"geojson_path"`

	// Fallback map view when the filtered rows carry no bounding boxes.
	MapCenterLat float64 `yaml:"map_center_lat"`
	MapCenterLon float64 `yaml:"map_center_lon"`
	MapZoom      int     `yaml:"map_zoom"`

	// Editing sessions are dropped after this much idle time.
	SessionTTL Duration `yaml:"session_ttl"`

	// Optional override of the built-in turf color palette.
	Palette []string `yaml:"palette"`

	AllowedOrigins []string `yaml:"allowed_origins"`

	// CSV download rate limit, per client-visible server.
	DownloadsPerSecond float64 `yaml:"downloads_per_second"`
	DownloadBurst      int     `yaml:"download_burst"`

	QuickViews []QuickView `yaml:"quick_views"`
}

// QuickView is a named filter preset that jumps the dashboard to a set of
// regions and turfs worth reviewing.
type QuickView struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Regions     []string `yaml:"regions" json:"regions"`
	Turfs       []string `yaml:"turfs" json:"turfs"`
}

// Duration lets YAML carry human-readable values like "30m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("bad duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default is the configuration the server runs with when no file exists.
// The map fallback centers on Richmond, matching the source dashboards.
func Default() Config {
	return Config{
		MetricsPath:        "output/precincts_metrics_updated.csv",
		GeoJSONPath:        "output/precincts_simplified_updated.geojson",
		MapCenterLat:       37.5407,
		MapCenterLon:       -77.4360,
		MapZoom:            7,
		SessionTTL:         Duration(2 * time.Hour),
		AllowedOrigins:     []string{"http://localhost:5173", "http://localhost:5174"},
		DownloadsPerSecond: 2,
		DownloadBurst:      5,
	}
}

// Load reads the config file at path, falling back to Default when the file
// does not exist. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("config %s: session_ttl must be positive", path)
	}
	if cfg.DownloadsPerSecond <= 0 || cfg.DownloadBurst <= 0 {
		return Config{}, fmt.Errorf("config %s: download rate limit must be positive", path)
	}
	return cfg, nil
}
