package verification

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/theMomax/openmeteogram/models/grid"
)

// Report holds the mean absolute errors of one comparison. Metrics are NaN
// if no valid pair was found.
type Report struct {
	Compared int
	// Temperature is in °C.
	Temperature float64
	// Wind is in km/h.
	Wind float64
	// Precipitation is in mm/h.
	Precipitation float64
	// RelativeHumidity is in %. It is only meaningful if HasRelativeHumidity.
	RelativeHumidity    float64
	HasRelativeHumidity bool

	Cell grid.Cell
	Time time.Time
}

// WriteTo writes the report's text form to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	lines := []struct {
		format string
		value  interface{}
	}{
		{"N points compared: %d\n", r.Compared},
		{"MAE Temp (°C): %v\n", r.Temperature},
		{"MAE Wind (km/h): %v\n", r.Wind},
		{"MAE Precip (mm/h): %v\n", r.Precipitation},
	}
	if r.HasRelativeHumidity {
		lines = append(lines, struct {
			format string
			value  interface{}
		}{"MAE RH (%%): %v\n", r.RelativeHumidity})
	}
	for _, l := range lines {
		n, err := fmt.Fprintf(w, l.format, l.value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type reportJSON struct {
	Compared         int       `json:"compared"`
	Temperature      *float64  `json:"temp"`
	Wind             *float64  `json:"wind"`
	Precipitation    *float64  `json:"precip"`
	RelativeHumidity *float64  `json:"rh"`
	Cell             grid.Cell `json:"cell"`
	Time             time.Time `json:"time"`
}

// MarshalJSON implements json.Marshaler. Undefined metrics are null.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		Compared:      r.Compared,
		Temperature:   number(r.Temperature),
		Wind:          number(r.Wind),
		Precipitation: number(r.Precipitation),
		Cell:          r.Cell,
		Time:          r.Time,
	}
	if r.HasRelativeHumidity {
		out.RelativeHumidity = number(r.RelativeHumidity)
	}
	return json.Marshal(out)
}

func number(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
