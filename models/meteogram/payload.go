package meteogram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
)

// Error constants
var (
	ErrMalformed = errors.New("malformed meteogram")
)

// Values is a sequence of measurements. JSON null decodes as NaN and NaN
// encodes as null.
type Values []float64

// UnmarshalJSON implements json.Unmarshaler.
func (v *Values) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = nil
		return nil
	}
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Values, len(raw))
	for i, r := range raw {
		if r == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *r
	}
	*v = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	b := make([]byte, 0, 8*len(v)+2)
	b = append(b, '[')
	for i, f := range v {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, f, 'g', -1, 64)
	}
	return append(b, ']'), nil
}

// Payload is a meteogram as published for the site: a point forecast with
// parallel arrays for the timestamps and every variable.
type Payload struct {
	City       string   `json:"city,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
	Timestamps []string `json:"timestamps"`
	// Temp is the 2 m temperature in °C.
	Temp Values `json:"temp"`
	// Precip is the hourly precipitation in mm/h.
	Precip Values `json:"precip"`
	// Wind is the 10 m wind speed in km/h.
	Wind Values `json:"wind"`
	// RH is the 2 m relative humidity in %.
	RH Values `json:"rh"`
}

// Load reads the meteogram stored at path.
func Load(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses a JSON encoded meteogram. All five arrays are required.
func Decode(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.Timestamps == nil {
		return nil, fmt.Errorf("%w: no timestamps", ErrMalformed)
	}
	for _, a := range []struct {
		key    string
		values Values
	}{
		{"temp", p.Temp},
		{"precip", p.Precip},
		{"wind", p.Wind},
		{"rh", p.RH},
	} {
		if a.values == nil {
			return nil, fmt.Errorf("%w: no %s", ErrMalformed, a.key)
		}
	}
	return &p, nil
}

// Len returns the amount of complete records, i.e. the length of the
// shortest array.
func (p *Payload) Len() int {
	n := len(p.Timestamps)
	for _, v := range []Values{p.Temp, p.Precip, p.Wind, p.RH} {
		if len(v) < n {
			n = len(v)
		}
	}
	return n
}

// Normalize prepares the payload for the site. City and coordinates default
// to fallback's, records with unparsable timestamps are dropped and all
// arrays are cut to the same length.
func (p *Payload) Normalize(fallback City) {
	if p.City == "" {
		p.City = fallback.Name
	}
	if p.Lat == nil {
		lat := fallback.Lat
		p.Lat = &lat
	}
	if p.Lon == nil {
		lon := fallback.Lon
		p.Lon = &lon
	}

	n := p.Len()
	ts := make([]string, 0, n)
	temp := make(Values, 0, n)
	precip := make(Values, 0, n)
	wind := make(Values, 0, n)
	rh := make(Values, 0, n)
	for i := 0; i < n; i++ {
		if _, err := ParseTime(p.Timestamps[i]); err != nil {
			continue
		}
		ts = append(ts, p.Timestamps[i])
		temp = append(temp, p.Temp[i])
		precip = append(precip, p.Precip[i])
		wind = append(wind, p.Wind[i])
		rh = append(rh, p.RH[i])
	}
	p.Timestamps, p.Temp, p.Precip, p.Wind, p.RH = ts, temp, precip, wind, rh
}
