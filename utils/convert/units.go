package convert

import "math"

// Conversion constants
const (
	// ZeroCelsius is 0 °C in Kelvin.
	ZeroCelsius = 273.15

	// KMHPerMS converts m/s to km/h.
	KMHPerMS = 3.6
)

// KelvinToCelsius converts every temperature from Kelvin to degrees Celsius.
func KelvinToCelsius(kelvin []float64) []float64 {
	c := make([]float64, len(kelvin))
	for i, k := range kelvin {
		c[i] = k - ZeroCelsius
	}
	return c
}

// WindSpeed returns the magnitude of the wind vectors given by their u and v
// components in m/s. The unit of the result is km/h. If u and v differ in
// length, the result has the length of the shorter one.
func WindSpeed(u, v []float64) []float64 {
	n := len(u)
	if len(v) < n {
		n = len(v)
	}
	s := make([]float64, n)
	for i := 0; i < n; i++ {
		s[i] = math.Sqrt(u[i]*u[i]+v[i]*v[i]) * KMHPerMS
	}
	return s
}

// Deaccumulate turns a cumulative series into per-step amounts. The first
// step is 0. A negative difference indicates a reset of the accumulation
// counter and becomes NaN.
func Deaccumulate(cumulative []float64) []float64 {
	d := make([]float64, len(cumulative))
	for i := 1; i < len(cumulative); i++ {
		delta := cumulative[i] - cumulative[i-1]
		if delta < 0 {
			delta = math.NaN()
		}
		d[i] = delta
	}
	return d
}

// Add returns the element-wise sum of a and b, truncated to the shorter one.
func Add(a, b []float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	s := make([]float64, n)
	for i := 0; i < n; i++ {
		s[i] = a[i] + b[i]
	}
	return s
}

// Fill returns a slice of length n with every element set to v.
func Fill(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
