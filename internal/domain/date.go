package domain

import "time"

// DateOnly truncates a timestamp to its calendar date, midnight UTC. Every
// date column stores values in this form so equality checks behave the same
// on every database.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
