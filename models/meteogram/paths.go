package meteogram

import (
	"path/filepath"
	"regexp"

	"github.com/theMomax/openmeteogram/config"
)

// Config paths
const (
	PathDirectory = "meteogram.directory"
)

// DefaultModel is the model whose meteograms are served if none is requested.
const DefaultModel = "wrf"

// CitiesFile is the name of a model's city list.
const CitiesFile = "cities.json"

func init() {
	config.RootCtx.PersistentFlags().String(PathDirectory, "data", "directory containing meteogram/<model>/<city>.json")
	config.Viper.BindPFlag(PathDirectory, config.RootCtx.PersistentFlags().Lookup(PathDirectory))
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidName reports whether s may be used as a model name or city slug.
func ValidName(s string) bool {
	return namePattern.MatchString(s)
}

// Directory returns the configured data directory.
func Directory() string {
	return config.Viper.GetString(PathDirectory)
}

// CitiesPath returns the path of model's city list below dir.
func CitiesPath(dir, model string) string {
	return filepath.Join(dir, "meteogram", model, CitiesFile)
}

// PayloadPath returns the path of the meteogram for model and slug below
// dir.
func PayloadPath(dir, model, slug string) string {
	return filepath.Join(dir, "meteogram", model, slug+".json")
}

// Cities returns model's city list below dir or FallbackCities if it can't
// be read.
func Cities(dir, model string) []City {
	path := CitiesPath(dir, model)
	cities, err := LoadCities(path)
	if err != nil {
		log.WithError(err).WithField("file", path).Warn("city list unavailable, using fallback")
		return FallbackCities
	}
	return cities
}
