// Package config loads runtime settings from the environment, with a .env
// file picked up in development.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SwaggerConfig overrides host and schemes in the served API docs.
type SwaggerConfig struct {
	Host    string
	Schemes []string
}

// Config holds every runtime setting the server needs.
type Config struct {
	AppEnv       string
	Port         string
	ThemesDir    string
	StaticDir    string
	PostcardsDir string
	FontsDir     string

	NominatimURL       string
	NominatimUserAgent string
	GeocodeDelay       time.Duration
	GeocodeTimeout     time.Duration

	OverpassURL     string
	OverpassTimeout time.Duration

	Swagger SwaggerConfig
}

// Load reads .env when present and builds the config from the environment.
// Every setting has a working default so a bare `go run` serves locally.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "8080"),
		ThemesDir:    getEnv("THEMES_DIR", "themes"),
		StaticDir:    getEnv("STATIC_DIR", filepath.Join("web", "static")),
		PostcardsDir: getEnv("POSTCARDS_DIR", filepath.Join("web", "static", "postcards")),
		FontsDir:     getEnv("FONTS_DIR", "fonts"),

		NominatimURL:       getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
		NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", "mapcard-webapp"),
		GeocodeDelay:       getDuration("GEOCODE_DELAY", time.Second),
		GeocodeTimeout:     getDuration("GEOCODE_TIMEOUT", 20*time.Second),

		OverpassURL:     getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OverpassTimeout: getDuration("OVERPASS_TIMEOUT", 90*time.Second),

		Swagger: SwaggerConfig{
			Host:    getEnv("SWAGGER_HOST", ""),
			Schemes: splitList(getEnv("SWAGGER_SCHEMES", "")),
		},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
