package verification

import (
	"github.com/theMomax/openmeteogram/config"
)

// Config paths
const (
	PathGridPattern = "verification.grid"
	PathOffset      = "verification.offset"
)

func init() {
	config.RootCtx.PersistentFlags().String(PathGridPattern, "/home/sig07/WRF/ARWpost/wrfout_d01_*", "glob matching the WRF output files the meteograms were derived from")
	config.Viper.BindPFlag(PathGridPattern, config.RootCtx.PersistentFlags().Lookup(PathGridPattern))

	config.RootCtx.PersistentFlags().Duration(PathOffset, 0, "offset added to the WRF times before they are matched with the meteogram's")
	config.Viper.BindPFlag(PathOffset, config.RootCtx.PersistentFlags().Lookup(PathOffset))
}

// ForCity returns the Config comparing the meteogram at path with the
// configured grid files at the given coordinates.
func ForCity(path string, latitude, longitude float64) Config {
	return Config{
		MeteogramFile: path,
		GridPattern:   config.Viper.GetString(PathGridPattern),
		Latitude:      latitude,
		Longitude:     longitude,
		Offset:        config.Viper.GetDuration(PathOffset),
	}
}

