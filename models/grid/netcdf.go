package grid

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/sirupsen/logrus"
	"github.com/theMomax/openmeteogram/config"
	"golang.org/x/sync/errgroup"
)

func init() {
	config.OnInitialize(func() {
		log = config.NewLogger()
	})
}

var log = logrus.New()

// file is a single netCDF file, classic or netCDF-4.
type file struct {
	path  string
	group api.Group
	vars  map[string]bool
	times []time.Time
}

func openFile(path string) (*file, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	f := &file{
		path:  path,
		group: g,
		vars:  make(map[string]bool),
	}
	for _, name := range g.ListVariables() {
		f.vars[name] = true
	}
	if f.times, err = f.readTimes(); err != nil {
		g.Close()
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"file":      path,
		"timesteps": len(f.times),
	}).Debug("opened grid file")
	return f, nil
}

func (f *file) readTimes() ([]time.Time, error) {
	if !f.vars[VarTimes] {
		return nil, fmt.Errorf("%s: %w: %s", f.path, ErrVariableNotFound, VarTimes)
	}
	v, err := f.group.GetVariable(VarTimes)
	if err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", f.path, VarTimes, err)
	}

	var raw []string
	switch values := v.Values.(type) {
	case []string:
		raw = values
	case string:
		raw = []string{values}
	default:
		return nil, fmt.Errorf("%s: %w: %s is %T", f.path, ErrUnsupportedType, VarTimes, v.Values)
	}

	times := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.ParseInLocation(TimesLayout, strings.Trim(s, "\x00 "), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.path, err)
		}
		times[i] = t
	}
	return times, nil
}

// column reads the named variable at cell for every timestep of the file.
func (f *file) column(name string, cell Cell) ([]float64, error) {
	if !f.vars[name] {
		return nil, fmt.Errorf("%s: %w: %s", f.path, ErrVariableNotFound, name)
	}
	vg, err := f.group.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", f.path, name, err)
	}
	shape := vg.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%s: %w: %s has %d dimensions", f.path, ErrShape, name, len(shape))
	}
	j, i := int64(cell.SouthNorth), int64(cell.WestEast)
	if j < 0 || i < 0 || j >= shape[1] || i >= shape[2] {
		return nil, fmt.Errorf("%s: %w: cell %v outside %v", f.path, ErrShape, cell, shape)
	}
	values, err := vg.GetSliceMD([]int64{0, j, i}, []int64{shape[0], j + 1, i + 1})
	if err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", f.path, name, err)
	}
	return flatten(values)
}

// plane reads the first timestep of a [Time, south_north, west_east] or
// [south_north, west_east] variable.
func (f *file) plane(name string) ([][]float64, error) {
	if !f.vars[name] {
		return nil, fmt.Errorf("%s: %w: %s", f.path, ErrVariableNotFound, name)
	}
	vg, err := f.group.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", f.path, name, err)
	}

	shape := vg.Shape()
	var values any
	switch len(shape) {
	case 3:
		values, err = vg.GetSliceMD([]int64{0, 0, 0}, []int64{1, shape[1], shape[2]})
	case 2:
		values, err = vg.Values()
	default:
		return nil, fmt.Errorf("%s: %w: %s has %d dimensions", f.path, ErrShape, name, len(shape))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", f.path, name, err)
	}

	flat, err := flatten(values)
	if err != nil {
		return nil, err
	}
	rows, cols := int(shape[len(shape)-2]), int(shape[len(shape)-1])
	if len(flat) != rows*cols {
		return nil, fmt.Errorf("%s: %w: %s has %d values, want %d", f.path, ErrShape, name, len(flat), rows*cols)
	}
	out := make([][]float64, rows)
	for r := range out {
		out[r] = flat[r*cols : (r+1)*cols]
	}
	return out, nil
}

func flatten(v any) ([]float64, error) {
	var out []float64
	var walk func(rv reflect.Value) error
	walk = func(rv reflect.Value) error {
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				if err := walk(rv.Index(i)); err != nil {
					return err
				}
			}
		case reflect.Float32, reflect.Float64:
			out = append(out, rv.Float())
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
			out = append(out, float64(rv.Int()))
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
			out = append(out, float64(rv.Uint()))
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Kind())
		}
		return nil
	}
	return out, walk(reflect.ValueOf(v))
}

// Collection concatenates files along their Time dimension in the order
// they were opened.
type Collection struct {
	files []*file
}

// Open opens all files concurrently. If any of them fails, the others are
// closed again.
func Open(paths ...string) (*Collection, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	files := make([]*file, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			f, err := openFile(p)
			files[i] = f
			return err
		})
	}
	if err := g.Wait(); err != nil {
		for _, f := range files {
			if f != nil {
				f.group.Close()
			}
		}
		return nil, err
	}
	return &Collection{files: files}, nil
}

// Glob returns the files matching pattern in lexical order, which is
// chronological for WRF's wrfout_<domain>_<date> names.
func Glob(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %q", ErrNoFiles, pattern)
	}
	sort.Strings(paths)
	return paths, nil
}

// Times implements Dataset.
func (c *Collection) Times() []time.Time {
	var times []time.Time
	for _, f := range c.files {
		times = append(times, f.times...)
	}
	return times
}

// Coordinates implements Dataset. They are taken from the first file.
func (c *Collection) Coordinates() (lat, lon [][]float64, err error) {
	if lat, err = c.files[0].plane(VarLatitude); err != nil {
		return nil, nil, err
	}
	if lon, err = c.files[0].plane(VarLongitude); err != nil {
		return nil, nil, err
	}
	return lat, lon, nil
}

// Series implements Dataset.
func (c *Collection) Series(name string, cell Cell) ([]float64, error) {
	var series []float64
	for _, f := range c.files {
		col, err := f.column(name, cell)
		if err != nil {
			return nil, err
		}
		if len(col) != len(f.times) {
			return nil, fmt.Errorf("%s: %w: %s has %d timesteps, Times has %d", f.path, ErrShape, name, len(col), len(f.times))
		}
		series = append(series, col...)
	}
	return series, nil
}

// Has implements Dataset.
func (c *Collection) Has(name string) bool {
	for _, f := range c.files {
		if !f.vars[name] {
			return false
		}
	}
	return len(c.files) > 0
}

// Close implements Dataset.
func (c *Collection) Close() {
	for _, f := range c.files {
		f.group.Close()
	}
}
