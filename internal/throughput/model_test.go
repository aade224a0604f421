package throughput

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		sample       Sample
		downtime     *Downtime
		wantRaw      float64
		wantPerPiece float64
		wantEff      float64
		want8h       int64
		wantTarget8h int64
		wantEffPct   float64
		wantRateHr   float64 // rounded
	}{
		{
			name:         "100 pieces in 10 minutes, no downtime",
			sample:       Sample{Pieces: 100, ObservedSeconds: 600},
			wantRaw:      6,
			wantEff:      6,
			want8h:       4800,
			wantTarget8h: 4800,
			wantEffPct:   100,
			wantRateHr:   600,
		},
		{
			name:         "5 minute stop every 100 pieces",
			sample:       Sample{Pieces: 100, ObservedSeconds: 600},
			downtime:     &Downtime{EventSeconds: 300, FrequencyPieces: 100},
			wantRaw:      6,
			wantPerPiece: 3,
			wantEff:      9,
			want8h:       3200,
			wantTarget8h: 4800,
			wantEffPct:   66.6667,
			wantRateHr:   400,
		},
		{
			name:         "fractional cycle with 1 minute stop every 25 pieces",
			sample:       Sample{Pieces: 50, ObservedSeconds: 125},
			downtime:     &Downtime{EventSeconds: 60, FrequencyPieces: 25},
			wantRaw:      2.5,
			wantPerPiece: 2.4,
			wantEff:      4.9,
			want8h:       5877,
			wantTarget8h: 11520,
			wantEffPct:   51.0204,
			wantRateHr:   735,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Compute(tc.sample, tc.downtime, nil)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if res.RawCycleSeconds != tc.wantRaw {
				t.Errorf("raw cycle: got %v, want %v", res.RawCycleSeconds, tc.wantRaw)
			}
			if !almostEqual(res.DowntimePerPieceSeconds, tc.wantPerPiece, 1e-9) {
				t.Errorf("downtime per piece: got %v, want %v", res.DowntimePerPieceSeconds, tc.wantPerPiece)
			}
			if !almostEqual(res.EffectiveCycleSeconds, tc.wantEff, 1e-9) {
				t.Errorf("effective cycle: got %v, want %v", res.EffectiveCycleSeconds, tc.wantEff)
			}
			if len(res.Shifts) != 2 {
				t.Fatalf("shifts: got %d, want 2", len(res.Shifts))
			}
			if res.Shifts[0].ShiftSeconds != Shift8h {
				t.Errorf("first shift: got %v, want %v", res.Shifts[0].ShiftSeconds, Shift8h)
			}
			if res.Shifts[0].Projected != tc.want8h {
				t.Errorf("8h projected: got %d, want %d", res.Shifts[0].Projected, tc.want8h)
			}
			if res.Shifts[0].Target != tc.wantTarget8h {
				t.Errorf("8h target: got %d, want %d", res.Shifts[0].Target, tc.wantTarget8h)
			}
			if !almostEqual(res.EfficiencyPercent, tc.wantEffPct, 1e-3) {
				t.Errorf("efficiency: got %v, want %v", res.EfficiencyPercent, tc.wantEffPct)
			}
			if got := math.Round(res.RatePerHour); got != tc.wantRateHr {
				t.Errorf("rate/hr: got %v, want %v", got, tc.wantRateHr)
			}
		})
	}
}

func TestCompute_ElevenHourShift(t *testing.T) {
	res, err := Compute(Sample{Pieces: 100, ObservedSeconds: 600}, &Downtime{EventSeconds: 300, FrequencyPieces: 100}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := res.Shifts[1]
	if p.ShiftSeconds != Shift11h || p.Projected != 4400 || p.Target != 6600 {
		t.Errorf("11h shift: got %+v", p)
	}
	if !almostEqual(res.RatePerMinute, 60.0/9, 1e-12) {
		t.Errorf("rate/min: got %v", res.RatePerMinute)
	}
}

func TestCompute_CustomShifts(t *testing.T) {
	res, err := Compute(Sample{Pieces: 10, ObservedSeconds: 60}, nil, []float64{3600, 600})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Shifts) != 2 {
		t.Fatalf("shifts: got %d", len(res.Shifts))
	}
	if res.Shifts[0].Projected != 600 || res.Shifts[1].Projected != 100 {
		t.Errorf("projections: got %+v", res.Shifts)
	}
}

func TestCompute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		reason string
	}{
		{"zero pieces", Sample{Pieces: 0, ObservedSeconds: 60}, ReasonPieces},
		{"negative pieces", Sample{Pieces: -3, ObservedSeconds: 60}, ReasonPieces},
		{"zero time", Sample{Pieces: 10, ObservedSeconds: 0}, ReasonTime},
		{"negative time", Sample{Pieces: 10, ObservedSeconds: -5}, ReasonTime},
		{"pieces checked first", Sample{}, ReasonPieces},
		{"cycle underflows to zero", Sample{Pieces: 4, ObservedSeconds: 5e-324}, ReasonTime},
		{"infinite time", Sample{Pieces: 4, ObservedSeconds: math.Inf(1)}, ReasonTime},
		{"NaN time", Sample{Pieces: 4, ObservedSeconds: math.NaN()}, ReasonTime},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.sample, &Downtime{EventSeconds: 30, FrequencyPieces: 5}, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Reason != tc.reason {
				t.Errorf("reason: got %q, want %q", ve.Reason, tc.reason)
			}
		})
	}
}

func TestCompute_InactiveDowntimeIgnored(t *testing.T) {
	sample := Sample{Pieces: 100, ObservedSeconds: 600}
	base, err := Compute(sample, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, d := range []*Downtime{
		{EventSeconds: 300, FrequencyPieces: 0},
		{EventSeconds: 0, FrequencyPieces: 50},
		{EventSeconds: -10, FrequencyPieces: 50},
		{EventSeconds: 300, FrequencyPieces: -1},
		{},
	} {
		res, err := Compute(sample, d, nil)
		if err != nil {
			t.Fatalf("%+v: %v", *d, err)
		}
		if res.DowntimePerPieceSeconds != 0 {
			t.Errorf("%+v: downtime per piece = %v, want 0", *d, res.DowntimePerPieceSeconds)
		}
		if res.EffectiveCycleSeconds != base.EffectiveCycleSeconds || res.EfficiencyPercent != 100 {
			t.Errorf("%+v: result changed: %+v", *d, res)
		}
	}
}

func TestCompute_Properties(t *testing.T) {
	pieces := []int{1, 3, 7, 50, 100, 997}
	seconds := []float64{1, 13, 125, 600, 3599}
	downtimes := []*Downtime{
		nil,
		{EventSeconds: 30, FrequencyPieces: 10},
		{EventSeconds: 300, FrequencyPieces: 100},
		{EventSeconds: 7, FrequencyPieces: 3},
	}

	var samples []Sample
	for _, n := range pieces {
		for _, s := range seconds {
			samples = append(samples, Sample{Pieces: n, ObservedSeconds: s})
		}
	}
	samples = append(samples,
		// sub-nanosecond cycle from the largest form input
		Fields{Pieces: "2147483647", TimeSec: "1"}.Sample(),
		// shift/cycle exceeds int64
		Sample{Pieces: 1, ObservedSeconds: 1e-15},
	)

	for _, sample := range samples {
		for _, d := range downtimes {
			res, err := Compute(sample, d, nil)
			if err != nil {
				t.Fatalf("%+v: %v", sample, err)
			}
			if res.RawCycleSeconds != sample.ObservedSeconds/float64(sample.Pieces) {
				t.Errorf("%+v: raw cycle %v", sample, res.RawCycleSeconds)
			}
			if res.EffectiveCycleSeconds < res.RawCycleSeconds {
				t.Errorf("%+v: effective %v < raw %v", sample, res.EffectiveCycleSeconds, res.RawCycleSeconds)
			}
			if res.EfficiencyPercent > 100 {
				t.Errorf("%+v: efficiency %v > 100", sample, res.EfficiencyPercent)
			}
			for _, p := range res.Shifts {
				if p.Projected < 0 {
					t.Errorf("%+v: negative projection %d", sample, p.Projected)
				}
				if p.Target < p.Projected {
					t.Errorf("%+v: target %d < projected %d", sample, p.Target, p.Projected)
				}
				if d == nil && p.Target != p.Projected {
					t.Errorf("%+v no downtime: target %d != projected %d", sample, p.Target, p.Projected)
				}
			}
			if d == nil {
				if res.EffectiveCycleSeconds != res.RawCycleSeconds || res.EfficiencyPercent != 100 {
					t.Errorf("%+v no downtime: got %+v", sample, res)
				}
			} else if res.EfficiencyPercent >= 100 {
				t.Errorf("%+v with downtime: efficiency %v, want < 100", sample, res.EfficiencyPercent)
			}
		}
	}
}

func TestResult_ProjectionBounds(t *testing.T) {
	res, err := Compute(Sample{Pieces: 1, ObservedSeconds: 1e-15}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p := res.Projection(Shift8h); p.Projected != math.MaxInt64 || p.Target != math.MaxInt64 {
		t.Errorf("saturation: got %+v", p)
	}

	res, _ = Compute(Sample{Pieces: 10, ObservedSeconds: 60}, nil, nil)
	for _, s := range []float64{-3600, math.NaN(), 0} {
		if p := res.Projection(s); p.Projected != 0 || p.Target != 0 {
			t.Errorf("shift %v: got %+v, want zero output", s, p)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	sample := Sample{Pieces: 37, ObservedSeconds: 211}
	d := &Downtime{EventSeconds: 45, FrequencyPieces: 12}
	a, err := Compute(sample, d, []float64{Shift8h, Shift11h, 1234.5})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Compute(sample, d, []float64{Shift8h, Shift11h, 1234.5})

	if math.Float64bits(a.EffectiveCycleSeconds) != math.Float64bits(b.EffectiveCycleSeconds) ||
		math.Float64bits(a.EfficiencyPercent) != math.Float64bits(b.EfficiencyPercent) ||
		math.Float64bits(a.RatePerHour) != math.Float64bits(b.RatePerHour) {
		t.Errorf("results differ: %+v vs %+v", a, b)
	}
	for i := range a.Shifts {
		if a.Shifts[i] != b.Shifts[i] {
			t.Errorf("shift %d differs: %+v vs %+v", i, a.Shifts[i], b.Shifts[i])
		}
	}
}

func TestResult_Loss(t *testing.T) {
	res, err := Compute(Sample{Pieces: 100, ObservedSeconds: 600}, &Downtime{EventSeconds: 300, FrequencyPieces: 100}, nil)
	if err != nil {
		t.Fatal(err)
	}
	l := res.Loss(Shift8h)
	if l.Pieces != 1600 {
		t.Errorf("lost pieces: got %d, want 1600", l.Pieces)
	}
	// 3200 pieces * 3s/piece = 9600s = 160min
	if !almostEqual(l.Minutes, 160, 1e-9) {
		t.Errorf("lost minutes: got %v, want 160", l.Minutes)
	}

	clean, _ := Compute(Sample{Pieces: 100, ObservedSeconds: 600}, nil, nil)
	if l := clean.Loss(Shift11h); l.Pieces != 0 || l.Minutes != 0 {
		t.Errorf("no downtime loss: got %+v", l)
	}
	if clean.HasDowntime() {
		t.Error("HasDowntime: got true for clean run")
	}
}
