package storage

import "time"

// MonthStart returns midnight on the first day of t's month, in t's location.
// Monthly counters include every row created at or after this instant.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
