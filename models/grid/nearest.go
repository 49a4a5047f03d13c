package grid

import (
	"fmt"
	"math"
)

// EarthRadius is the mean earth radius in km.
const EarthRadius = 6371.0088

// Distance returns the great-circle distance in km between two points given
// in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p1, p2 := radians(lat1), radians(lat2)
	dp := p2 - p1
	dl := radians(lon2 - lon1)
	a := math.Sin(dp/2)*math.Sin(dp/2) + math.Cos(p1)*math.Cos(p2)*math.Sin(dl/2)*math.Sin(dl/2)
	return 2 * EarthRadius * math.Asin(math.Min(1, math.Sqrt(a)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Nearest returns the grid point closest to (latitude, longitude). lat and
// lon are indexed [south_north][west_east]. Points with NaN coordinates are
// skipped.
func Nearest(lat, lon [][]float64, latitude, longitude float64) (Cell, error) {
	if len(lat) == 0 || len(lat) != len(lon) {
		return Cell{}, fmt.Errorf("%w: latitude has %d rows, longitude %d", ErrShape, len(lat), len(lon))
	}

	best, found := math.Inf(1), false
	var cell Cell
	for j := range lat {
		if len(lat[j]) != len(lon[j]) {
			return Cell{}, fmt.Errorf("%w: row %d has %d latitudes, %d longitudes", ErrShape, j, len(lat[j]), len(lon[j]))
		}
		for i := range lat[j] {
			if math.IsNaN(lat[j][i]) || math.IsNaN(lon[j][i]) {
				continue
			}
			if d := Distance(latitude, longitude, lat[j][i], lon[j][i]); d < best {
				best, found = d, true
				cell = Cell{SouthNorth: j, WestEast: i}
			}
		}
	}
	if !found {
		return Cell{}, fmt.Errorf("%w: no valid coordinates", ErrShape)
	}
	return cell, nil
}
