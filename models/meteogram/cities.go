package meteogram

import (
	"encoding/json"
	"fmt"
	"os"
)

// City is an entry of a model's cities.json.
type City struct {
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// FallbackCities is served when no city list can be read.
var FallbackCities = []City{
	{Name: "Ciudad de México", Slug: "ciudad-de-mexico", Lat: 19.433, Lon: -99.133},
	{Name: "Veracruz", Slug: "veracruz", Lat: 19.1738, Lon: -96.1342},
	{Name: "Guadalajara", Slug: "guadalajara", Lat: 20.6736, Lon: -103.344},
}

// LoadCities reads the city list stored at path.
func LoadCities(path string) ([]City, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cities []City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return cities, nil
}

// Find returns the city with the given slug. If there is none, it returns
// the first city and false. An empty list yields a City carrying only the
// slug.
func Find(cities []City, slug string) (City, bool) {
	for _, c := range cities {
		if c.Slug == slug {
			return c, true
		}
	}
	if len(cities) > 0 {
		return cities[0], false
	}
	return City{Name: slug, Slug: slug}, false
}
