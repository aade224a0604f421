// Package throughput converts shop-floor observations into shift-level
// output projections.
//
// Downtime is amortized per piece rather than placed on a timeline: a shift
// of length T holds N pieces when T = N*raw + (N/freq)*event, so
// N = T / (raw + event/freq). Every figure in a Result derives from that one
// effective cycle time.
package throughput

import (
	"math"
)

// Standard shift lengths in seconds.
const (
	Shift8h  = 8 * 3600
	Shift11h = 11 * 3600
)

// DefaultShifts are the shift lengths rendered when the caller asks for none.
var DefaultShifts = []float64{Shift8h, Shift11h}

// minCycle stands in for a zero raw cycle so the target division stays finite.
const minCycle = 1e-9

// Sample is one observed production window.
type Sample struct {
	Pieces          int     `json:"pieces"`
	ObservedSeconds float64 `json:"observed_seconds"`
}

// Downtime is a recurring stoppage: EventSeconds lost once every
// FrequencyPieces pieces.
type Downtime struct {
	EventSeconds    float64 `json:"event_seconds"`
	FrequencyPieces int     `json:"frequency_pieces"`
}

// Active reports whether the downtime contributes to the model. Anything
// short of a positive duration and a positive frequency counts as no
// downtime at all.
func (d *Downtime) Active() bool {
	return d != nil && d.EventSeconds > 0 && d.FrequencyPieces > 0
}

// Projection is the output expected over one shift.
type Projection struct {
	ShiftSeconds float64 `json:"shift_seconds"`
	Projected    int64   `json:"projected"` // with downtime
	Target       int64   `json:"target"`    // no-downtime ceiling
}

// Loss describes what downtime costs over one shift.
type Loss struct {
	ShiftSeconds float64 `json:"shift_seconds"`
	Pieces       int64   `json:"pieces"`
	Minutes      float64 `json:"minutes"`
}

// Result is recomputed on every call and never mutated afterwards.
type Result struct {
	RawCycleSeconds         float64      `json:"raw_cycle_seconds"`
	DowntimePerPieceSeconds float64      `json:"downtime_per_piece_seconds"`
	EffectiveCycleSeconds   float64      `json:"effective_cycle_seconds"`
	RatePerMinute           float64      `json:"rate_per_minute"`
	RatePerHour             float64      `json:"rate_per_hour"`
	EfficiencyPercent       float64      `json:"efficiency_percent"`
	Shifts                  []Projection `json:"shifts"`
}

// Compute validates the sample and derives a Result for each requested shift
// length. A nil or inactive downtime is treated as none. With no shift
// lengths, DefaultShifts is used.
func Compute(sample Sample, downtime *Downtime, shiftLengths []float64) (Result, error) {
	if err := Validate(sample); err != nil {
		return Result{}, err
	}

	raw := sample.ObservedSeconds / float64(sample.Pieces)

	perPiece := 0.0
	if downtime.Active() {
		perPiece = downtime.EventSeconds / float64(downtime.FrequencyPieces)
	}

	eff := raw + perPiece

	res := Result{
		RawCycleSeconds:         raw,
		DowntimePerPieceSeconds: perPiece,
		EffectiveCycleSeconds:   eff,
	}
	if eff > 0 {
		res.RatePerMinute = 60 / eff
		res.RatePerHour = 3600 / eff
		res.EfficiencyPercent = (raw / eff) * 100
	}

	if len(shiftLengths) == 0 {
		shiftLengths = DefaultShifts
	}
	res.Shifts = make([]Projection, 0, len(shiftLengths))
	for _, s := range shiftLengths {
		res.Shifts = append(res.Shifts, res.Projection(s))
	}
	return res, nil
}

// Projection computes projected and target output for an arbitrary shift
// length from the result's cycle times.
func (r Result) Projection(shiftSeconds float64) Projection {
	p := Projection{ShiftSeconds: shiftSeconds}
	if r.EffectiveCycleSeconds > 0 {
		p.Projected = pieceCount(shiftSeconds / r.EffectiveCycleSeconds)
	}
	raw := r.RawCycleSeconds
	if !(raw > 0) {
		raw = minCycle
	}
	p.Target = pieceCount(shiftSeconds / raw)
	return p
}

// pieceCount floors x into a piece count, saturating at math.MaxInt64.
// NaN and negative values count as zero pieces.
func pieceCount(x float64) int64 {
	switch {
	case !(x > 0):
		return 0
	case x >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(math.Floor(x))
}

// Loss reports the pieces downtime removes from a shift and the minutes of
// that shift spent stopped.
func (r Result) Loss(shiftSeconds float64) Loss {
	p := r.Projection(shiftSeconds)
	return Loss{
		ShiftSeconds: shiftSeconds,
		Pieces:       p.Target - p.Projected,
		Minutes:      float64(p.Projected) * r.DowntimePerPieceSeconds / 60,
	}
}

// HasDowntime reports whether downtime changed the cycle time.
func (r Result) HasDowntime() bool {
	return r.DowntimePerPieceSeconds > 0
}
