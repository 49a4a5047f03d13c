package verification

import (
	"math"
	"sort"

	"github.com/theMomax/openmeteogram/models/meteogram"
	"github.com/theMomax/openmeteogram/utils/numbers"
	timeutils "github.com/theMomax/openmeteogram/utils/time"
)

var nan = math.NaN()

// Pair references a model and an observation sample valid at the same
// minute.
type Pair struct {
	Model       int
	Observation int
}

// Align pairs the samples of model and obs by their minute. Observations
// are visited chronologically. If model holds a minute more than once, the
// last sample wins.
func Align(model, obs *meteogram.Series) []Pair {
	index := make(map[int64]int, model.Len())
	for i, t := range model.Times {
		index[timeutils.Minute(t)] = i
	}

	order := make([]int, obs.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return obs.Times[order[a]].Before(obs.Times[order[b]])
	})

	pairs := make([]Pair, 0, len(order))
	for _, o := range order {
		if m, ok := index[timeutils.Minute(obs.Times[o])]; ok {
			pairs = append(pairs, Pair{Model: m, Observation: o})
		}
	}
	return pairs
}

// Compare computes the mean absolute error of every variable over the
// aligned samples. NaN samples are ignored.
func Compare(obs, model *meteogram.Series) *Report {
	pairs := Align(model, obs)

	pick := func(m, o []float64) (pm, po []float64) {
		pm, po = make([]float64, len(pairs)), make([]float64, len(pairs))
		for k, p := range pairs {
			pm[k], po[k] = m[p.Model], o[p.Observation]
		}
		return pm, po
	}

	r := &Report{Compared: len(pairs)}

	mt, ot := pick(model.Temperature, obs.Temperature)
	r.Temperature = numbers.MAE(mt, ot)

	mw, ow := pick(model.Wind, obs.Wind)
	r.Wind = numbers.MAE(mw, ow)

	mp, op := pick(model.Precipitation, obs.Precipitation)
	r.Precipitation = numbers.MAE(mp, op)

	mr, or := pick(model.RelativeHumidity, obs.RelativeHumidity)
	r.RelativeHumidity = numbers.MAE(mr, or)
	r.HasRelativeHumidity = !numbers.AllNaN(mr)

	return r
}
