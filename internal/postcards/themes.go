package postcards

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjoart/mapcard/pkg/logger"
)

var ErrNotFound = errors.New("not found")

// Colors substituted in the listing when a record omits a preview field.
// Rendering never uses these; a full record is required to generate.
const (
	defaultBackground  = "#FFFFFF"
	defaultText        = "#000000"
	defaultWater       = "#C0C0C0"
	defaultParks       = "#F0F0F0"
	defaultRoadPrimary = "#333333"
)

// ThemeStore reads theme records from a directory of {id}.json files. The
// directory is the whole catalog: dropping a file in adds a theme, no
// registry to update.
type ThemeStore struct {
	Dir string
}

func NewThemeStore(dir string) *ThemeStore {
	return &ThemeStore{Dir: dir}
}

// List returns a summary for every readable record, in filename order.
// Unreadable or malformed records are skipped so one bad file cannot take
// down the listing.
func (s *ThemeStore) List() ([]ThemeSummary, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []ThemeSummary{}, nil
		}
		return nil, err
	}

	summaries := []ThemeSummary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")

		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err != nil {
			logger.Warn("themes: skipping unreadable record", logger.Fields{"id": id}, logger.WithError(err))
			continue
		}
		var t Theme
		if err := json.Unmarshal(data, &t); err != nil {
			logger.Warn("themes: skipping malformed record", logger.Fields{"id": id}, logger.WithError(err))
			continue
		}

		summaries = append(summaries, ThemeSummary{
			ID:          id,
			Name:        orDefault(t.Name, id),
			Description: t.Description,
			Colors: ThemeColors{
				Background:  orDefault(t.Background, defaultBackground),
				Text:        orDefault(t.Text, defaultText),
				Water:       orDefault(t.Water, defaultWater),
				Parks:       orDefault(t.Parks, defaultParks),
				RoadPrimary: orDefault(t.RoadPrimary, defaultRoadPrimary),
			},
		})
	}

	logger.Debug("themes: listed", logger.Fields{"count": len(summaries)})
	return summaries, nil
}

// Load reads and validates the full record for id. It returns ErrNotFound
// when no record exists and a *ValidationError when required color fields
// are missing or malformed.
func (s *ThemeStore) Load(id string) (*Theme, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, id+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("themes: record not found", logger.Fields{"id": id})
			return nil, ErrNotFound
		}
		return nil, err
	}

	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		logger.Warn("themes: record failed validation", logger.Fields{"id": id}, logger.WithError(err))
		return nil, err
	}
	return &t, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
