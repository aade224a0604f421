package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"linecalc/internal/stopwatch"
)

const stopwatchHelp = "[space] start/pause  [l] lap  [r] reset  [u] use time  [q] quit"

func newStopwatchCmd() *cobra.Command {
	var downtime bool

	cmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "Interactive terminal stopwatch for timing pieces or downtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := int(os.Stdin.Fd())
			if !term.IsTerminal(fd) {
				return errors.New("stopwatch needs an interactive terminal")
			}
			state, err := term.MakeRaw(fd)
			if err != nil {
				return fmt.Errorf("stopwatch: raw mode: %w", err)
			}
			defer term.Restore(fd, state)

			kind := stopwatch.Main
			if downtime {
				kind = stopwatch.Downtime
			}
			return runStopwatch(stopwatch.New(kind), os.Stdin, os.Stdout, 50*time.Millisecond)
		},
	}
	cmd.Flags().BoolVar(&downtime, "downtime", false, "Time a downtime stop (MM:SS display)")
	return cmd
}

// runStopwatch redraws the display every refresh and reacts to single-key
// commands read from in until q, Ctrl-C or EOF.
func runStopwatch(sw *stopwatch.Stopwatch, in io.Reader, out io.Writer, refresh time.Duration) error {
	keys := make(chan byte)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go readKeys(in, keys, readErr, done)

	// raw mode: lines need an explicit carriage return
	fmt.Fprintf(out, "%s\r\n", stopwatchHelp)

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fmt.Fprintf(out, "\r%s", stopwatchLine(sw))

		case k := <-keys:
			switch k {
			case ' ':
				sw.Toggle()
			case 'l', 'L':
				n := sw.Lap()
				fmt.Fprintf(out, "\r\nLap %02d  %s\r\n", n, stopwatch.FormatMain(sw.Elapsed()))
			case 'r', 'R':
				sw.Reset()
			case 'u', 'U':
				fmt.Fprintf(out, "\r\n%s\r\n", useTimeLine(sw))
			case 'q', 'Q', 3: // 3 is Ctrl-C in raw mode
				fmt.Fprintf(out, "\r%s\r\n", stopwatchLine(sw))
				return nil
			}
			fmt.Fprintf(out, "\r%s", stopwatchLine(sw))

		case err := <-readErr:
			fmt.Fprintf(out, "\r%s\r\n", stopwatchLine(sw))
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// readKeys forwards single bytes from in until a read fails or done is
// closed. A Read already blocked on in is only released by more input.
func readKeys(in io.Reader, keys chan<- byte, errs chan<- error, done <-chan struct{}) {
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil {
			select {
			case errs <- err:
			case <-done:
			}
			return
		}
		if n == 1 {
			select {
			case keys <- buf[0]:
			case <-done:
				return
			}
		}
	}
}

func stopwatchLine(sw *stopwatch.Stopwatch) string {
	d := sw.Elapsed()
	status := "paused "
	if sw.Running() {
		status = "running"
	}
	if sw.Kind() == stopwatch.Downtime {
		return fmt.Sprintf("[downtime %s] %s", status, stopwatch.FormatMini(d))
	}
	bar := int(stopwatch.RingProgress(d) * 20)
	return fmt.Sprintf("[%s] %s  %s  |%s%s|", status, stopwatch.FormatMain(d), stopwatch.FormatLong(d),
		strings.Repeat("=", bar), strings.Repeat(" ", 20-bar))
}

// useTimeLine is the flag form of the measured time, ready for the calculator.
func useTimeLine(sw *stopwatch.Stopwatch) string {
	m, s := stopwatch.Transfer(sw.Elapsed())
	if sw.Kind() == stopwatch.Downtime {
		return fmt.Sprintf("--downtime-min %d --downtime-sec %d", m, s)
	}
	return fmt.Sprintf("--time-min %d --time-sec %d", m, s)
}
