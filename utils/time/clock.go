package time

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	clock clockwork.Clock = clockwork.NewRealClock()
	cm                    = &sync.RWMutex{}
)

// Use replaces the clock behind Now and Since. It returns a function
// restoring the previous clock.
func Use(c clockwork.Clock) (restore func()) {
	cm.Lock()
	prev := clock
	clock = c
	cm.Unlock()
	return func() {
		cm.Lock()
		clock = prev
		cm.Unlock()
	}
}

func current() clockwork.Clock {
	cm.RLock()
	defer cm.RUnlock()
	return clock
}

func Now() time.Time {
	return current().Now()
}

func Since(t time.Time) time.Duration {
	return Now().Sub(t)
}
