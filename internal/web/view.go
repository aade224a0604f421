package web

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"linecalc/internal/config"
	"linecalc/internal/throughput"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// ShiftView is one shift card.
type ShiftView struct {
	Name        string
	Projected   string
	Target      string
	LostPieces  string
	LostMinutes string
}

// ResultView is a throughput.Result formatted for display.
type ResultView struct {
	CycleTime        string // raw, e.g. "6.00s"
	EffectiveCycle   string
	DowntimePerPiece string
	HasDowntime      bool

	Shifts []ShiftView

	RatePerMinute string
	RatePerHour   string
	Efficiency    string
}

// NewResultView pairs each projection with its shift name. shifts and
// res.Shifts are expected in the same order.
func NewResultView(res throughput.Result, shifts []config.Shift) *ResultView {
	v := &ResultView{
		CycleTime:        fmt.Sprintf("%.2fs", res.RawCycleSeconds),
		EffectiveCycle:   fmt.Sprintf("%.2fs", res.EffectiveCycleSeconds),
		DowntimePerPiece: fmt.Sprintf("%.2fs", res.DowntimePerPieceSeconds),
		HasDowntime:      res.HasDowntime(),
		RatePerMinute:    fmt.Sprintf("%.2f", res.RatePerMinute),
		RatePerHour:      GroupThousands(int64(math.Round(res.RatePerHour))),
		Efficiency:       fmt.Sprintf("%.2f%%", res.EfficiencyPercent),
	}
	for i, p := range res.Shifts {
		name := fmt.Sprintf("%gh Shift", p.ShiftSeconds/3600)
		if i < len(shifts) {
			name = shifts[i].Name
		}
		loss := res.Loss(p.ShiftSeconds)
		v.Shifts = append(v.Shifts, ShiftView{
			Name:        name,
			Projected:   GroupThousands(p.Projected),
			Target:      GroupThousands(p.Target),
			LostPieces:  GroupThousands(loss.Pieces),
			LostMinutes: fmt.Sprintf("%.1f", loss.Minutes),
		})
	}
	return v
}

// GroupThousands renders n the way en-US toLocaleString does, e.g. 12,345.
func GroupThousands(n int64) string {
	return printer.Sprintf("%d", n)
}
