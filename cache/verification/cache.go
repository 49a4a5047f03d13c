// Package verification caches verification reports per city.
package verification

import (
	"time"

	"github.com/theMomax/openmeteogram/cache/generic"
	"github.com/theMomax/openmeteogram/config"
	models "github.com/theMomax/openmeteogram/models/verification"
	timeutils "github.com/theMomax/openmeteogram/utils/time"
	"golang.org/x/sync/singleflight"
)

// Config paths
const (
	PathTTL = "cache.verification.ttl"
)

func init() {
	config.RootCtx.PersistentFlags().Duration(PathTTL, 15*time.Minute, "how long a city's verification report is served before it is computed again")
	config.Viper.BindPFlag(PathTTL, config.RootCtx.PersistentFlags().Lookup(PathTTL))

	config.OnInitialize(func() {
		ttl = config.Viper.GetDuration(PathTTL)
	})
}

var ttl = 15 * time.Minute

var cache = generic.NewCache(outdated)

var computing singleflight.Group

func outdated(t time.Time) bool {
	return timeutils.Since(t) > ttl
}

type element struct {
	slug   string
	report *models.Report
}

func (e element) Time() time.Time { return e.report.Time }

func (e element) Hash() interface{} { return e.slug }

// Put caches r for slug.
func Put(slug string, r *models.Report) {
	cache.Update(element{slug: slug, report: r})
}

// Get returns the report cached for slug.
func Get(slug string) (*models.Report, bool) {
	e := cache.Get(slug)
	if e == nil {
		return nil, false
	}
	return e.(element).report, true
}

// Lookup returns the report cached for slug. If there is none, it calls
// compute once, even if asked concurrently, and caches the result.
func Lookup(slug string, compute func() (*models.Report, error)) (*models.Report, error) {
	if r, ok := Get(slug); ok {
		return r, nil
	}
	v, err, _ := computing.Do(slug, func() (interface{}, error) {
		r, err := compute()
		if err != nil {
			return nil, err
		}
		Put(slug, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Report), nil
}

// Reset drops all cached reports.
func Reset() {
	cache.Clear()
}
