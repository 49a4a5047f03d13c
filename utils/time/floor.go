package time

import "time"

// Floor truncates the given Time t to a multiple of the Duration unit since
// the Unix epoch. The result is in UTC. Instants before the epoch are rounded
// towards the past, not towards zero.
func Floor(t time.Time, unit time.Duration) time.Time {
	if unit <= 0 {
		return t.UTC()
	}
	u := int64(unit)
	ns := t.UnixNano()
	diff := ns % u
	if diff < 0 {
		diff += u
	}
	return time.Unix(0, ns-diff).UTC()
}

// Minute returns the number of whole minutes between the Unix epoch and t.
// Two instants share a Minute exactly when they fall into the same minute,
// regardless of their location.
func Minute(t time.Time) int64 {
	return Floor(t, time.Minute).Unix() / 60
}
