package grid

import (
	"fmt"
	"math"
)

// Variables used for relative humidity.
const (
	VarRelativeHumidity = "RH2"
	VarTemperature      = "T2"
	VarMixingRatio      = "Q2"
	VarSurfacePressure  = "PSFC"
)

// constants of WRF's relative humidity diagnostic
const (
	ezero   = 6.112 // hPa
	eslcon1 = 17.67
	eslcon2 = 29.65 // K
	celkel  = 273.15
	eps     = 0.622
)

// RelativeHumidity returns the 2 m relative humidity in % at cell. It
// prefers a stored RH2 (or rh2) and otherwise derives it from T2 (K), Q2
// (kg/kg) and PSFC (Pa).
func RelativeHumidity(ds Dataset, cell Cell) ([]float64, error) {
	for _, name := range []string{VarRelativeHumidity, "rh2"} {
		if ds.Has(name) {
			return ds.Series(name, cell)
		}
	}

	for _, name := range []string{VarTemperature, VarMixingRatio, VarSurfacePressure} {
		if !ds.Has(name) {
			return nil, fmt.Errorf("%w: %s (needed for relative humidity)", ErrVariableNotFound, name)
		}
	}
	t, err := ds.Series(VarTemperature, cell)
	if err != nil {
		return nil, err
	}
	q, err := ds.Series(VarMixingRatio, cell)
	if err != nil {
		return nil, err
	}
	p, err := ds.Series(VarSurfacePressure, cell)
	if err != nil {
		return nil, err
	}

	rh := make([]float64, len(t))
	for i := range rh {
		rh[i] = Humidity(t[i], q[i], p[i])
	}
	return rh, nil
}

// Humidity returns the relative humidity in % for temperature t (K), water
// vapour mixing ratio qv (kg/kg) and pressure p (Pa).
func Humidity(t, qv, p float64) float64 {
	es := ezero * math.Exp(eslcon1*(t-celkel)/(t-eslcon2))
	qvs := eps * es / (0.01*p - (1-eps)*es)
	return 100 * math.Max(0, math.Min(1, qv/qvs))
}
