// Package grid reads gridded WRF model output.
package grid

import (
	"errors"
	"time"
)

// Error constants
var (
	ErrVariableNotFound = errors.New("variable not found")
	ErrNoFiles          = errors.New("no grid files")
	ErrShape            = errors.New("unexpected variable shape")
	ErrUnsupportedType  = errors.New("unsupported variable type")
)

// Variables read from WRF output.
const (
	VarTimes     = "Times"
	VarLatitude  = "XLAT"
	VarLongitude = "XLONG"
)

// TimesLayout is the layout of WRF's Times variable. Times are UTC.
const TimesLayout = "2006-01-02_15:04:05"

// Cell addresses a grid point by its (south_north, west_east) indices.
type Cell struct {
	SouthNorth int `json:"south_north"`
	WestEast   int `json:"west_east"`
}

// Dataset is gridded model output with a leading Time dimension.
type Dataset interface {
	// Times returns the valid time of every timestep.
	Times() []time.Time
	// Coordinates returns the latitude and longitude of every grid point
	// indexed [south_north][west_east].
	Coordinates() (lat, lon [][]float64, err error)
	// Series returns the named [Time, south_north, west_east] variable at
	// cell for every timestep.
	Series(name string, cell Cell) ([]float64, error)
	// Has reports whether every timestep carries the named variable.
	Has(name string) bool
	Close()
}
