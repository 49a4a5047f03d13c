package numbers

import "math"

// Average is a (temporarily weighted) running mean over the values produced
// by its operator. Values, for which the operator returns NaN, are skipped.
type Average struct {
	sum      float64
	count    float64
	weight   float64
	operator func(...float64) float64
}

// NewMAE returns an unweighted Mean Absolute Error. The Apply function takes
// two arguments: the expected and actual value. Pairs containing NaN do not
// contribute.
func NewMAE() *Average {
	return NewAverage(1, ABSDIFF)
}

// NewAverage returns an Average, that multiplies the previous sum and count
// by weight each time a new value is applied. A weight of 1 results in the
// arithmetic mean.
func NewAverage(weight float64, operator func(...float64) float64) *Average {
	return &Average{
		sum:      0,
		count:    0,
		weight:   weight,
		operator: operator,
	}
}

func (a *Average) Apply(args ...float64) {
	v := a.operator(args...)
	if math.IsNaN(v) {
		return
	}

	a.sum *= a.weight
	a.count *= a.weight

	a.sum = (a.sum + v)
	a.count++
}

// Get returns the current mean. It is NaN, if no value was applied yet.
func (a *Average) Get() float64 {
	if a.count == 0.0 {
		return math.NaN()
	}
	return a.sum / a.count
}

func ABSDIFF(args ...float64) float64 {
	if len(args) == 0 {
		return 0
	}
	d := args[0]
	for i := 1; i < len(args); i++ {
		d -= args[i]
	}
	return math.Abs(d)
}

// MAE returns the mean absolute error between the pairwise elements of
// expected and actual, ignoring pairs where either side is NaN. It is NaN if
// there is no such pair. Surplus elements of the longer slice are ignored.
func MAE(expected, actual []float64) float64 {
	a := NewMAE()
	for i := 0; i < len(expected) && i < len(actual); i++ {
		a.Apply(expected[i], actual[i])
	}
	return a.Get()
}

// AllNaN reports whether every element of values is NaN. It is true for an
// empty slice.
func AllNaN(values []float64) bool {
	for _, v := range values {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}
