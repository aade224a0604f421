package throughput

import (
	"math"
	"strings"
)

// Fields holds the raw calculator inputs as typed by a user.
type Fields struct {
	Pieces       string
	TimeMin      string
	TimeSec      string
	DowntimeMin  string
	DowntimeSec  string
	DowntimeFreq string
}

// Sample builds the observation from the fields. Missing or unparseable
// numbers count as 0.
func (f Fields) Sample() Sample {
	return Sample{
		Pieces:          ParseInt(f.Pieces),
		ObservedSeconds: float64(ParseInt(f.TimeMin)*60 + ParseInt(f.TimeSec)),
	}
}

// Downtime returns nil when the fields don't describe active downtime.
func (f Fields) Downtime() *Downtime {
	d := &Downtime{
		EventSeconds:    float64(ParseInt(f.DowntimeMin)*60 + ParseInt(f.DowntimeSec)),
		FrequencyPieces: ParseInt(f.DowntimeFreq),
	}
	if !d.Active() {
		return nil
	}
	return d
}

// Empty reports whether every field is blank.
func (f Fields) Empty() bool {
	for _, v := range []string{f.Pieces, f.TimeMin, f.TimeSec, f.DowntimeMin, f.DowntimeSec, f.DowntimeFreq} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseInt reads a leading optionally-signed decimal integer and ignores the
// rest, so "12 pcs" is 12. Anything without leading digits is 0. Magnitudes
// saturate at math.MaxInt32 so minutes*60 stays exact in every caller.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
			break
		}
	}
	if neg {
		n = -n
	}
	return int(n)
}
