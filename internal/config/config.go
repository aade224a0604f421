// Package config loads linecalc's optional YAML settings file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultPort        = 8484
	DefaultReadTimeout = 10 * time.Second
	DefaultLogLevel    = "info"
)

// Config is the top-level settings file.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds web UI settings.
type ServerConfig struct {
	// Port is the web UI port. 0 leaves the decision to the --port flag.
	Port int `yaml:"port"`

	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// CalculatorConfig holds calculation presets.
type CalculatorConfig struct {
	// Shifts are the shift lengths projected on every calculation, in order.
	Shifts []Shift `yaml:"shifts"`
}

// Shift is one named shift length.
type Shift struct {
	Name  string  `yaml:"name"`
	Hours float64 `yaml:"hours"`
}

// Seconds returns the shift length in seconds.
func (s Shift) Seconds() float64 { return s.Hours * 3600 }

// LogConfig selects the slog level: debug | info | warn | error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps Level onto slog. Unknown values are rejected by Load.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultShifts are the 8-hour and 11-hour shifts.
func DefaultShifts() []Shift {
	return []Shift{
		{Name: "8-Hour Shift", Hours: 8},
		{Name: "11-Hour Shift", Hours: 11},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        DefaultPort,
			ReadTimeout: DefaultReadTimeout,
		},
		Calculator: CalculatorConfig{Shifts: DefaultShifts()},
		Log:        LogConfig{Level: DefaultLogLevel},
	}
}

// ShiftSeconds lists shift lengths in seconds, in order.
func ShiftSeconds(shifts []Shift) []float64 {
	out := make([]float64, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, s.Seconds())
	}
	return out
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	// a shifts list in the file replaces the defaults rather than merging
	cfg.Calculator.Shifts = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if len(cfg.Calculator.Shifts) == 0 {
		cfg.Calculator.Shifts = DefaultShifts()
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}
	for i, s := range cfg.Calculator.Shifts {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("calculator.shifts[%d]: name is required", i)
		}
		if s.Hours <= 0 {
			return fmt.Errorf("calculator.shifts[%d] %q: hours must be > 0", i, s.Name)
		}
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	return nil
}
