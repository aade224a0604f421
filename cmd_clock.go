package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"linecalc/internal/shift"
)

func newClockCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "clock",
		Short: "Show the current time and shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printClock(out, time.Now())
			return nil
		},
	}
}

func printClock(w io.Writer, now time.Time) {
	clock, day, date := shift.Panel(now)
	info := shift.Current(now)

	fmt.Fprintf(w, "Time:       %s\n", clock)
	fmt.Fprintf(w, "Day:        %s\n", day)
	fmt.Fprintf(w, "Date:       %s\n", date)
	fmt.Fprintf(w, "Shift:      %s\n", info.Name)
	fmt.Fprintf(w, "Remaining:  %s\n", shift.FormatRemaining(info.Remaining))
}
