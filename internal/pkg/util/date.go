package util

import (
	"fmt"
	"time"
)

// MonthEnds returns the last calendar day of every month of the given year,
// in chronological order. Day 0 of the following month normalizes to the
// last day of the current one, so leap years come out right.
func MonthEnds(year int) []time.Time {
	ends := make([]time.Time, 0, 12)
	for m := time.January; m <= time.December; m++ {
		ends = append(ends, MonthEnd(year, m))
	}
	return ends
}

// MonthEnd returns the last calendar day of the given month.
func MonthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

var spanishMonths = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// MonthLabel formats a checkpoint date as the dashboard month label,
// e.g. "Ene 2024".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", spanishMonths[t.Month()-1], t.Year())
}

// MonthLabels returns the twelve ordered labels of a year.
func MonthLabels(year int) []string {
	labels := make([]string, 0, 12)
	for _, end := range MonthEnds(year) {
		labels = append(labels, MonthLabel(end))
	}
	return labels
}
