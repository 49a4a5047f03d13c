package meteogram

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/theMomax/openmeteogram/config"
)

func init() {
	config.OnInitialize(func() {
		log = config.NewLogger()
	})
}

var log = logrus.New()

// Series is a point time series of the four variables shown in a meteogram.
// All slices have the length of Times.
type Series struct {
	Times            []time.Time
	Temperature      []float64
	Precipitation    []float64
	Wind             []float64
	RelativeHumidity []float64
}

// Len returns the amount of timesteps.
func (s *Series) Len() int {
	return len(s.Times)
}

// zoned layouts carry their own offset. Everything else is read as UTC.
var (
	zoned = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04:05Z07:00",
	}
	naive = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02_15:04:05",
		"2006-01-02T15",
		"2006-01-02",
	}
)

// ParseTime parses the timestamp formats found in meteograms and WRF output.
// The result is in UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range zoned {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range naive {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", ErrMalformed, s)
}

// Series converts the payload into a Series. Every timestamp has to be valid.
// If the arrays differ in length, all of them are cut to the shortest one.
func (p *Payload) Series() (*Series, error) {
	n := p.Len()
	if n != len(p.Timestamps) || n != len(p.Temp) || n != len(p.Precip) || n != len(p.Wind) || n != len(p.RH) {
		log.WithFields(logrus.Fields{
			"timestamps": len(p.Timestamps),
			"temp":       len(p.Temp),
			"precip":     len(p.Precip),
			"wind":       len(p.Wind),
			"rh":         len(p.RH),
		}).Warn("meteogram arrays differ in length, truncating to the shortest")
	}
	s := &Series{
		Times:            make([]time.Time, n),
		Temperature:      append([]float64(nil), p.Temp[:n]...),
		Precipitation:    append([]float64(nil), p.Precip[:n]...),
		Wind:             append([]float64(nil), p.Wind[:n]...),
		RelativeHumidity: append([]float64(nil), p.RH[:n]...),
	}
	for i := 0; i < n; i++ {
		t, err := ParseTime(p.Timestamps[i])
		if err != nil {
			return nil, err
		}
		s.Times[i] = t
	}
	return s, nil
}
