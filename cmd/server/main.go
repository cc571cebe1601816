package main

import (
	"net/http"
	"os"

	"github.com/zjoart/mapcard/cmd/routes"
	"github.com/zjoart/mapcard/internal/config"
	"github.com/zjoart/mapcard/internal/postcards"
	"github.com/zjoart/mapcard/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	postcards.SetFontsDir(cfg.FontsDir)

	if err := os.MkdirAll(cfg.PostcardsDir, 0o755); err != nil {
		logger.Fatal("main: create postcards directory failed", logger.WithError(err))
	}

	svc := postcards.NewService(
		postcards.NewThemeStore(cfg.ThemesDir),
		postcards.NewNominatimGeocoder(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.GeocodeDelay, cfg.GeocodeTimeout),
		postcards.NewOverpassSource(cfg.OverpassURL, cfg.OverpassTimeout),
		cfg.PostcardsDir,
	)

	handler := routes.SetUpRoutes(svc, cfg)

	logger.Info("main: server listening", logger.Fields{"port": cfg.Port, "env": cfg.AppEnv})
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatal("main: server stopped", logger.WithError(err))
	}
}
