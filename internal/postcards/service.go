package postcards

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjoart/mapcard/pkg/logger"
)

// Service wires the theme store, geocoder and map source into the generate
// pipeline. It keeps no mutable state, so one instance serves concurrent
// requests.
type Service struct {
	Themes       *ThemeStore
	Geocoder     Geocoder
	Maps         MapSource
	PostcardsDir string

	now func() time.Time
}

func NewService(themes *ThemeStore, geocoder Geocoder, maps MapSource, postcardsDir string) *Service {
	return &Service{
		Themes:       themes,
		Geocoder:     geocoder,
		Maps:         maps,
		PostcardsDir: postcardsDir,
		now:          time.Now,
	}
}

// ListThemes returns the selectable theme summaries.
func (s *Service) ListThemes() ([]ThemeSummary, error) {
	return s.Themes.List()
}

// Generate runs the full pipeline: load theme, geocode the place, render the
// postcard, write it to disk. It returns the filename; the handler maps the
// error kinds to HTTP statuses.
func (s *Service) Generate(ctx context.Context, req PostcardRequest) (string, error) {
	logger.Info("service: Generate started", logger.Fields{
		"city":     req.City,
		"country":  req.Country,
		"theme":    req.Theme,
		"distance": req.Distance,
		"fast":     req.Fast,
	})

	theme, err := s.Themes.Load(req.Theme)
	if err != nil {
		return "", err
	}

	point, err := s.Geocoder.Resolve(ctx, req.City, req.Country)
	if err != nil {
		return "", err
	}

	image, err := CreatePostcard(ctx, s.Maps, CreateOptions{
		City:    req.City,
		Country: req.Country,
		Point:   point,
		Dist:    req.Distance,
		Theme:   theme,
		Message: req.Message,
		Fast:    req.Fast,
	})
	if err != nil {
		logger.Error("service: render failed", logger.WithError(err))
		return "", err
	}

	if err := os.MkdirAll(s.PostcardsDir, 0o755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%s_%s.png", citySlug(req.City), req.Theme, s.now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(s.PostcardsDir, filename), image, 0o644); err != nil {
		logger.Error("service: write postcard failed", logger.Fields{"filename": filename}, logger.WithError(err))
		return "", err
	}

	logger.Info("service: Generate completed", logger.Fields{"filename": filename, "bytes": len(image)})
	return filename, nil
}
