package postcards

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zjoart/mapcard/pkg/logger"
)

// fontSet holds the parsed typefaces shared by every render. Loaded once per
// process, immutable afterwards.
type fontSet struct {
	Bold    *truetype.Font
	Regular *truetype.Font
	Light   *truetype.Font
	Mono    *truetype.Font
}

var (
	fontsDir  = "fonts"
	fontsOnce sync.Once
	fonts     *fontSet
)

// SetFontsDir points the loader at the directory holding the Roboto faces.
// Call it before the first render; later calls have no effect.
func SetFontsDir(dir string) {
	fontsDir = dir
}

// getFonts returns the process-wide font set, loading it on first use.
func getFonts() *fontSet {
	fontsOnce.Do(func() {
		fonts = loadFonts()
	})
	return fonts
}

// loadFonts parses the Roboto faces from fontsDir. When any of the three
// files is missing the whole set falls back to the embedded Go faces, which
// carry no light weight, so Light maps to Regular there. The mono face used
// for the stamp label is always the embedded one.
func loadFonts() *fontSet {
	mono, err := truetype.Parse(gomono.TTF)
	if err != nil {
		panic(err)
	}

	bold, errBold := parseFontFile(filepath.Join(fontsDir, "Roboto-Bold.ttf"))
	regular, errRegular := parseFontFile(filepath.Join(fontsDir, "Roboto-Regular.ttf"))
	light, errLight := parseFontFile(filepath.Join(fontsDir, "Roboto-Light.ttf"))
	if errBold == nil && errRegular == nil && errLight == nil {
		logger.Info("fonts: loaded Roboto faces", logger.Fields{"dir": fontsDir})
		return &fontSet{Bold: bold, Regular: regular, Light: light, Mono: mono}
	}

	logger.Info("fonts: Roboto faces unavailable, using embedded Go faces", logger.Fields{"dir": fontsDir})
	embBold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		panic(err)
	}
	embRegular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return &fontSet{Bold: embBold, Regular: embRegular, Light: embRegular, Mono: mono}
}

func parseFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// newFace derives a drawing face at the given point size for a canvas
// rasterized at dpi dots per inch.
func newFace(f *truetype.Font, points, dpi float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}
