// Package shift maps wall-clock time onto the plant's three 8-hour shifts and
// drives the clock widget.
package shift

import (
	"fmt"
	"time"
)

const (
	Day     = "Day Shift (8hr)"
	Evening = "Evening Shift (8hr)"
	Night   = "Night Shift (8hr)"
)

// Info describes the shift running at a given instant.
type Info struct {
	Name      string
	End       time.Time
	Remaining time.Duration
}

// Current returns the shift covering now, in now's location. Day runs
// 06:00-14:00, Evening 14:00-22:00, Night 22:00-06:00.
func Current(now time.Time) Info {
	y, mo, d := now.Date()
	at := func(day, hour int) time.Time {
		return time.Date(y, mo, day, hour, 0, 0, 0, now.Location())
	}

	var info Info
	switch h := now.Hour(); {
	case h >= 6 && h < 14:
		info = Info{Name: Day, End: at(d, 14)}
	case h >= 14 && h < 22:
		info = Info{Name: Evening, End: at(d, 22)}
	case h >= 22:
		info = Info{Name: Night, End: at(d+1, 6)}
	default:
		info = Info{Name: Night, End: at(d, 6)}
	}
	info.Remaining = info.End.Sub(now)
	return info
}

// FormatRemaining renders "7h 59m", or "Shift Ended" once nothing is left.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "Shift Ended"
	}
	return fmt.Sprintf("%dh %dm", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

/* ---------------- clock face ---------------- */

// Hands holds analog clock hand rotations in degrees.
type Hands struct {
	Hour, Minute, Second float64
}

func HandAngles(now time.Time) Hands {
	h, m, s := now.Clock()
	ms := now.Nanosecond() / int(time.Millisecond)
	return Hands{
		Hour:   float64(h%12)*30 + float64(m)*0.5,
		Minute: float64(m)*6 + float64(s)*0.1,
		Second: float64(s)*6 + float64(ms)*0.006,
	}
}

// Digital renders 12-hour time without seconds, e.g. "2:34 PM".
func Digital(now time.Time) string {
	return now.Format("3:04 PM")
}

// Panel renders the expanded clock panel lines: time, weekday, date.
func Panel(now time.Time) (clock, weekday, date string) {
	return now.Format("3:04:05 PM"), now.Format("Monday"), now.Format("January 2, 2006")
}
