package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cache "github.com/theMomax/openmeteogram/cache/verification"
	"github.com/theMomax/openmeteogram/config"
	"github.com/theMomax/openmeteogram/models/grid/gridtest"
	"github.com/theMomax/openmeteogram/models/meteogram"
	"github.com/theMomax/openmeteogram/models/verification"
)

const observed = `{
	"timestamps": ["2024-05-01T00:00:00Z", "2024-05-01T01:00:00Z", "2024-05-01T02:00:00Z"],
	"temp": [27.85, 27.85, null],
	"precip": [0, 1, 0],
	"wind": [18, 18, 18],
	"rh": [null, null, null]
}`

// site writes a city list, a meteogram and WRF output below a temporary
// directory and points the configuration at them.
func site(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	model := filepath.Join(dir, "meteogram", "wrf")
	require.NoError(t, os.MkdirAll(model, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(model, "cities.json"),
		[]byte(`[{"name":"Acapulco","slug":"acapulco","lat":16.863,"lon":-99.89}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(model, "acapulco.json"), []byte(observed), 0o644))

	lat, lon := gridtest.Grid(2, 2, 16.75, -100, 0.25)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, gridtest.Write(filepath.Join(dir, "wrfout_d01_2024-05-01_00:00:00"), gridtest.File{
		Times:  []time.Time{start, start.Add(time.Hour), start.Add(2 * time.Hour)},
		Lat:    lat,
		Lon:    lon,
		Fields: map[string][]float32{"T2": {300, 301, 302}, "U10": {3, 3, 3}, "V10": {4, 4, 4}, "RAINC": {0, 0, 0}, "RAINNC": {0, 0, 0}},
	}))

	config.Viper.Set(meteogram.PathDirectory, dir)
	config.Viper.Set(verification.PathGridPattern, filepath.Join(dir, "wrfout_d01_*"))
	config.Viper.Set(PathVerifyFile, filepath.Join(model, "acapulco.json"))
	t.Cleanup(func() {
		config.Viper.Set(meteogram.PathDirectory, "data")
		config.Viper.Set(verification.PathGridPattern, "")
		config.Viper.Set(PathVerifyFile, "")
		config.Viper.Set(PathVerifyJSON, false)
		cache.Reset()
	})
	return dir
}

func TestVerify(t *testing.T) {
	site(t)

	var out bytes.Buffer
	require.NoError(t, verify(&out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "N points compared: 3", lines[0])
	for i, want := range []struct {
		label string
		value float64
	}{
		{"MAE Temp (°C): ", 0.5},
		{"MAE Wind (km/h): ", 0},
		{"MAE Precip (mm/h): ", 1.0 / 3},
	} {
		line := lines[i+1]
		require.True(t, strings.HasPrefix(line, want.label), line)
		v, err := strconv.ParseFloat(strings.TrimPrefix(line, want.label), 64)
		require.NoError(t, err)
		assert.InDelta(t, want.value, v, 1e-9, line)
	}
}

func TestVerifyJSON(t *testing.T) {
	site(t)
	config.Viper.Set(PathVerifyJSON, true)

	var out bytes.Buffer
	require.NoError(t, verify(&out))
	assert.Contains(t, out.String(), `"compared":3`)
	assert.Contains(t, out.String(), `"rh":null`)
}

func TestVerifyMissingMeteogram(t *testing.T) {
	dir := site(t)
	config.Viper.Set(PathVerifyFile, filepath.Join(dir, "missing.json"))

	assert.ErrorIs(t, verify(&bytes.Buffer{}), os.ErrNotExist)
}

func TestScheduledJob(t *testing.T) {
	_, err := scheduledJob([]string{"deploy"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = scheduledJob(nil, &bytes.Buffer{})
	assert.Error(t, err)

	site(t)
	job, err := scheduledJob([]string{JobVerify}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, job(context.Background()))

	report, ok := cache.Get("wrf/acapulco")
	require.True(t, ok)
	assert.Equal(t, 3, report.Compared)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, job(ctx), context.Canceled)
}
