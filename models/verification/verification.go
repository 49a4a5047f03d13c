// Package verification compares a published meteogram with the WRF output
// it was derived from.
package verification

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/theMomax/openmeteogram/config"
	"github.com/theMomax/openmeteogram/models/grid"
	"github.com/theMomax/openmeteogram/models/meteogram"
	"github.com/theMomax/openmeteogram/utils/convert"
	timeutils "github.com/theMomax/openmeteogram/utils/time"
)

func init() {
	config.OnInitialize(func() {
		log = config.NewLogger()
	})
}

var log = logrus.New()

// Error constants
var (
	ErrInvalidConfig = errors.New("invalid verification config")
)

// WRF variables the model series is derived from.
const (
	VarTemperature    = grid.VarTemperature
	VarWindU          = "U10"
	VarWindV          = "V10"
	VarConvectiveRain = "RAINC"
	VarGridScaleRain  = "RAINNC"
)

// Config describes one comparison.
type Config struct {
	// MeteogramFile is the published meteogram's path.
	MeteogramFile string `validate:"required"`
	// GridPattern is a glob matching the WRF output files.
	GridPattern string  `validate:"required"`
	Latitude    float64 `validate:"gte=-90,lte=90"`
	Longitude   float64 `validate:"gte=-180,lte=180"`

	// Offset is added to the model times, e.g. for output in local time.
	Offset time.Duration
}

// Run loads the meteogram and the grid files described by cfg and compares
// them at the grid point nearest to cfg's coordinates.
func Run(cfg Config) (*Report, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	payload, err := meteogram.Load(cfg.MeteogramFile)
	if err != nil {
		return nil, err
	}
	obs, err := payload.Series()
	if err != nil {
		return nil, err
	}

	paths, err := grid.Glob(cfg.GridPattern)
	if err != nil {
		return nil, err
	}
	ds, err := grid.Open(paths...)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	log.WithFields(logrus.Fields{
		"meteogram":  cfg.MeteogramFile,
		"grid_files": len(paths),
	}).Debug("verifying meteogram")

	return Verify(ds, obs, cfg.Latitude, cfg.Longitude, cfg.Offset)
}

// Verify compares obs with ds at the grid point nearest to (latitude,
// longitude).
func Verify(ds grid.Dataset, obs *meteogram.Series, latitude, longitude float64, offset time.Duration) (*Report, error) {
	lat, lon, err := ds.Coordinates()
	if err != nil {
		return nil, err
	}
	cell, err := grid.Nearest(lat, lon, latitude, longitude)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"south_north": cell.SouthNorth,
		"west_east":   cell.WestEast,
		"lat":         lat[cell.SouthNorth][cell.WestEast],
		"lon":         lon[cell.SouthNorth][cell.WestEast],
	}).Debug("resolved nearest grid point")

	model, err := ModelSeries(ds, cell, offset)
	if err != nil {
		return nil, err
	}

	r := Compare(obs, model)
	r.Cell = cell
	r.Time = timeutils.Now()
	return r, nil
}

// ModelSeries derives the meteogram variables from ds at cell. Times are
// shifted by offset and truncated to the minute. If relative humidity is
// unavailable, it is NaN throughout.
func ModelSeries(ds grid.Dataset, cell grid.Cell, offset time.Duration) (*meteogram.Series, error) {
	read := func(names ...string) ([][]float64, error) {
		out := make([][]float64, len(names))
		for i, name := range names {
			s, err := ds.Series(name, cell)
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	}

	vars, err := read(VarTemperature, VarWindU, VarWindV, VarConvectiveRain, VarGridScaleRain)
	if err != nil {
		return nil, err
	}
	t2, u10, v10, rainc, rainnc := vars[0], vars[1], vars[2], vars[3], vars[4]

	times := ds.Times()
	s := &meteogram.Series{
		Times:         make([]time.Time, len(times)),
		Temperature:   convert.KelvinToCelsius(t2),
		Wind:          convert.WindSpeed(u10, v10),
		Precipitation: convert.Deaccumulate(convert.Add(rainc, rainnc)),
	}
	for i, t := range times {
		s.Times[i] = timeutils.Floor(t.Add(offset), time.Minute)
	}

	s.RelativeHumidity, err = grid.RelativeHumidity(ds, cell)
	if err != nil {
		if !errors.Is(err, grid.ErrVariableNotFound) {
			return nil, err
		}
		log.WithError(err).Warn("relative humidity unavailable")
		s.RelativeHumidity = convert.Fill(len(times), nan)
	}

	for _, v := range [][]float64{s.Temperature, s.Wind, s.Precipitation, s.RelativeHumidity} {
		if len(v) != len(times) {
			return nil, fmt.Errorf("%w: %d values for %d timesteps", grid.ErrShape, len(v), len(times))
		}
	}
	return s, nil
}
