package stopwatch

import (
	"fmt"
	"time"
)

/* ---------------- display ---------------- */

func parts(d time.Duration) (h, m, s, cs int64) {
	if d < 0 {
		d = 0
	}
	cs = int64(d / (10 * time.Millisecond))
	h = cs / 360000
	m = cs / 6000 % 60
	s = cs / 100 % 60
	cs %= 100
	return
}

// FormatMain renders MM:SS.cc, the large stopwatch face. Minutes wrap at
// the hour; FormatLong carries the hours.
func FormatMain(d time.Duration) string {
	_, m, s, cs := parts(d)
	return fmt.Sprintf("%02d:%02d.%02d", m, s, cs)
}

// FormatLong renders HH:MM:SS.
func FormatLong(d time.Duration) string {
	h, m, s, _ := parts(d)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatMini renders MM:SS with whole minutes, as on the downtime timer.
func FormatMini(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// RingProgress is the fraction of the current minute elapsed, in [0,1).
func RingProgress(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return float64(d%time.Minute) / float64(time.Minute)
}

// Transfer splits d into whole minutes and remaining seconds, the form the
// calculator's time fields take.
func Transfer(d time.Duration) (minutes, seconds int) {
	if d < 0 {
		return 0, 0
	}
	total := int(d / time.Second)
	return total / 60, total % 60
}
