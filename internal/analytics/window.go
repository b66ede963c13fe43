package analytics

import (
	"time"

	"moneymind/internal/models"
)

// Window identifies a supported reporting time window.
type Window string

const (
	// Window7Days covers today and the six preceding days.
	Window7Days Window = "7days"
	// Window30Days covers today and the twenty-nine preceding days.
	Window30Days Window = "30days"
	// WindowThisMonth covers the first of the current month through today.
	WindowThisMonth Window = "thismonth"
)

// Valid reports whether w is a supported window.
func (w Window) Valid() bool {
	switch w {
	case Window7Days, Window30Days, WindowThisMonth:
		return true
	}
	return false
}

// Start returns the inclusive start of the window relative to now,
// truncated to the beginning of the day.
func (w Window) Start(now time.Time) time.Time {
	switch w {
	case Window7Days:
		return startOfDay(now.AddDate(0, 0, -6))
	case Window30Days:
		return startOfDay(now.AddDate(0, 0, -29))
	case WindowThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	return startOfDay(now)
}

// FilterByWindow returns the transactions whose date falls within the window,
// inclusive of both the window start and the end of the current day.
func FilterByWindow(txs []models.Transaction, w Window, now time.Time) []models.Transaction {
	start := w.Start(now)
	end := endOfDay(now)

	var out []models.Transaction
	for _, tx := range txs {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
