// Package gridtest writes small WRF-like netCDF files for tests.
package gridtest

import (
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Dimension names as written by WRF.
const (
	DimTime       = "Time"
	DimDateStrLen = "DateStrLen"
	DimSouthNorth = "south_north"
	DimWestEast   = "west_east"
)

// File describes the content of one wrfout file. Fields maps a variable name
// to one value per timestep, written to every grid point of that timestep.
type File struct {
	Times []time.Time
	// Lat and Lon are indexed [south_north][west_east].
	Lat, Lon [][]float32
	Fields   map[string][]float32
}

// Grid returns coordinates of a rows x cols grid starting at (lat0, lon0)
// with the given spacing in degrees.
func Grid(rows, cols int, lat0, lon0, step float32) (lat, lon [][]float32) {
	lat = make([][]float32, rows)
	lon = make([][]float32, rows)
	for j := 0; j < rows; j++ {
		lat[j] = make([]float32, cols)
		lon[j] = make([]float32, cols)
		for i := 0; i < cols; i++ {
			lat[j][i] = lat0 + float32(j)*step
			lon[j][i] = lon0 + float32(i)*step
		}
	}
	return lat, lon
}

// Write stores f as a netCDF classic file at path.
func Write(path string, f File) error {
	w, err := netcdf.OpenWriter(path, netcdf.KindCDF)
	if err != nil {
		return err
	}

	rows, cols := len(f.Lat), len(f.Lat[0])
	dims := []string{DimTime, DimSouthNorth, DimWestEast}

	times := make([]string, len(f.Times))
	for i, t := range f.Times {
		times[i] = t.UTC().Format("2006-01-02_15:04:05")
	}
	vars := []struct {
		name string
		v    api.Variable
	}{
		{"Times", api.Variable{Values: times, Dimensions: []string{DimTime, DimDateStrLen}}},
		{"XLAT", api.Variable{Values: repeat(len(f.Times), f.Lat), Dimensions: dims}},
		{"XLONG", api.Variable{Values: repeat(len(f.Times), f.Lon), Dimensions: dims}},
	}
	for name, values := range f.Fields {
		vars = append(vars, struct {
			name string
			v    api.Variable
		}{name, api.Variable{Values: field(values, rows, cols), Dimensions: dims}})
	}

	for _, v := range vars {
		if err := w.AddVar(v.name, v.v); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func repeat(n int, plane [][]float32) [][][]float32 {
	out := make([][][]float32, n)
	for t := range out {
		out[t] = plane
	}
	return out
}

func field(values []float32, rows, cols int) [][][]float32 {
	out := make([][][]float32, len(values))
	for t, v := range values {
		out[t] = make([][]float32, rows)
		for j := range out[t] {
			out[t][j] = make([]float32, cols)
			for i := range out[t][j] {
				out[t][j][i] = v
			}
		}
	}
	return out
}
