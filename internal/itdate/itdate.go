// Package itdate formats dates the way the backend's web pages do
// (it-IT locale), without pulling in a full localization layer.
package itdate

import (
	"fmt"
	"time"
)

var weekdays = [...]string{
	"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato",
}

var months = [...]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

// FormatLong renders "lunedì 02 settembre 2026" (weekday long, 2-digit day).
func FormatLong(t time.Time) string {
	return fmt.Sprintf("%s %02d %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// FormatHeader renders "lunedì 2 settembre 2026", used for list date headers.
func FormatHeader(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// FormatShort renders "02/09/2026".
func FormatShort(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year())
}

// FormatDateTime renders "02/09/2026, 18:30", used for last-update stamps.
func FormatDateTime(t time.Time) string {
	return fmt.Sprintf("%s, %02d:%02d", FormatShort(t), t.Hour(), t.Minute())
}

// MonthName returns the Italian month name for 1..12.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("%d", m)
	}
	return months[m-1]
}
