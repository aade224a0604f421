package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"linecalc/internal/config"
	"linecalc/internal/throughput"
	"linecalc/internal/web"
)

const appVersion = "0.3.2"

type calcFlags struct {
	pieces       int
	timeMin      int
	timeSec      int
	downtimeMin  int
	downtimeSec  int
	downtimeFreq int
	shiftHours   []float64
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		cf         calcFlags
		port       int
		serve      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "linecalc",
		Short:         "Production line cycle-time and shift output calculator (CLI or web)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, _ := cmd.Flags().GetBool("version"); ok {
				fmt.Fprintf(out, "linecalc v%s\n", appVersion)
				return nil
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			setupLogging(cfg)

			if port > 0 || serve {
				if port > 0 {
					cfg.Server.Port = port
				}
				printListenAddrs(out, cfg.Server.Port)
				return serveWeb(cfg, configPath)
			}

			shifts := cfg.Calculator.Shifts
			if len(cf.shiftHours) > 0 {
				shifts = make([]config.Shift, 0, len(cf.shiftHours))
				for _, h := range cf.shiftHours {
					shifts = append(shifts, config.Shift{Name: fmt.Sprintf("%g-Hour Shift", h), Hours: h})
				}
			}

			res, err := compute(cf, shifts)
			if err != nil {
				return err
			}
			printCLI(out, res, shifts)
			return nil
		},
	}

	cmd.Version = appVersion
	cmd.SetVersionTemplate("linecalc v{{.Version}}\n")
	cmd.SetOut(out)
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.Flags().IntVar(&cf.pieces, "pieces", 0, "Pieces produced during the observation")
	cmd.Flags().IntVar(&cf.timeMin, "time-min", 0, "Observed time, minutes part")
	cmd.Flags().IntVar(&cf.timeSec, "time-sec", 0, "Observed time, seconds part")
	cmd.Flags().IntVar(&cf.downtimeMin, "downtime-min", 0, "Downtime per stop, minutes part")
	cmd.Flags().IntVar(&cf.downtimeSec, "downtime-sec", 0, "Downtime per stop, seconds part")
	cmd.Flags().IntVar(&cf.downtimeFreq, "downtime-freq", 0, "One stop every N pieces (0 = no downtime)")
	cmd.Flags().Float64SliceVar(&cf.shiftHours, "shift-hours", nil, "Shift lengths in hours (default from config: 8,11)")

	cmd.Flags().IntVar(&port, "port", 0, "Run web UI on this port (e.g. 8484)")
	cmd.Flags().BoolVar(&serve, "serve", false, "Run web UI on the configured port")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file (optional)")

	cmd.AddCommand(newClockCmd(out), newStopwatchCmd())
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// setupLogging sends slog output to stderr; stdout is reserved for results.
func setupLogging(cfg *config.Config) {
	slog.SetDefault(newLogger(os.Stderr, cfg))
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
}

/* ---------------- core ---------------- */

func compute(cf calcFlags, shifts []config.Shift) (throughput.Result, error) {
	sample := throughput.Sample{
		Pieces:          cf.pieces,
		ObservedSeconds: float64(cf.timeMin*60 + cf.timeSec),
	}
	downtime := &throughput.Downtime{
		EventSeconds:    float64(cf.downtimeMin*60 + cf.downtimeSec),
		FrequencyPieces: cf.downtimeFreq,
	}
	return throughput.Compute(sample, downtime, config.ShiftSeconds(shifts))
}

func printCLI(w io.Writer, res throughput.Result, shifts []config.Shift) {
	v := web.NewResultView(res, shifts)

	fmt.Fprintf(w, "Cycle Time:            %s\n", v.CycleTime)
	if v.HasDowntime {
		fmt.Fprintf(w, "Downtime per piece:    %s\n", v.DowntimePerPiece)
		fmt.Fprintf(w, "Effective Cycle Time:  %s\n", v.EffectiveCycle)
	}
	fmt.Fprintf(w, "Rate:                  %s /min, %s /hr\n", v.RatePerMinute, v.RatePerHour)
	fmt.Fprintf(w, "Efficiency:            %s\n\n", v.Efficiency)

	for _, s := range v.Shifts {
		fmt.Fprintln(w, s.Name)
		fmt.Fprintf(w, "  Projected output:    %s\n", s.Projected)
		fmt.Fprintf(w, "  Target:              %s\n", s.Target)
		if v.HasDowntime {
			fmt.Fprintf(w, "  Lost to downtime:    %s pcs / %s min\n", s.LostPieces, s.LostMinutes)
		}
		fmt.Fprintln(w)
	}
}

/* ---------------- web ---------------- */

func serveWeb(cfg *config.Config, configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := web.New(web.Options{
		Version:   appVersion,
		Shifts:    cfg.Calculator.Shifts,
		AccessLog: os.Stdout,
	})

	if configPath != "" {
		go func() {
			if err := config.Watch(ctx, configPath, func(updated *config.Config) {
				srv.SetShifts(updated.Calculator.Shifts)
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	return srv.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port), cfg.Server.ReadTimeout)
}

func printListenAddrs(w io.Writer, port int) {
	fmt.Fprintln(w, "Listening on:")
	fmt.Fprintf(w, "  http://127.0.0.1:%d/\n", port)

	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			ip, _, err := net.ParseCIDR(a.String())
			if err != nil || ip == nil || ip.IsLoopback() || ip.To4() == nil {
				continue
			}
			fmt.Fprintf(w, "  http://%s:%d/\n", ip.String(), port)
		}
	}
	fmt.Fprintln(w)
}
