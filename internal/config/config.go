// Package config decodes scanner settings from TOML. Settings always arrive
// as bytes or a reader; locating and opening files is the caller's job.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"

	"omega/internal/trace"
)

// Config is the full set of settings.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Trace  TraceConfig  `toml:"trace"`
	Render RenderConfig `toml:"render"`
}

type ScanConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Dedup          bool `toml:"dedup"`
	Jobs           int  `toml:"jobs"` // 0 — по числу CPU
}

type TraceConfig struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"`
	Mode     string `toml:"mode"`
	RingSize int    `toml:"ring_size"`
}

type RenderConfig struct {
	Color    bool   `toml:"color"`
	Context  int    `toml:"context"`
	TabWidth int    `toml:"tab_width"`
	Tokens   string `toml:"tokens"` // pretty | json
}

// Default returns the settings used for every key the input leaves out.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			MaxDiagnostics: 100,
			Dedup:          true,
		},
		Trace: TraceConfig{
			Level:    "off",
			Format:   "text",
			Mode:     "stream",
			RingSize: 4096,
		},
		Render: RenderConfig{
			Context:  1,
			TabWidth: 4,
			Tokens:   "pretty",
		},
	}
}

// UnknownKeysError lists keys present in the input that no setting consumes.
type UnknownKeysError struct {
	Name string
	Keys []string
}

func (e *UnknownKeysError) Error() string {
	return fmt.Sprintf("%s: unknown keys: %s", e.Name, strings.Join(e.Keys, ", "))
}

// Parse decodes data on top of Default. name only labels errors.
func Parse(data []byte, name string) (Config, error) {
	return Decode(bytes.NewReader(data), name)
}

// Decode reads TOML from r on top of Default and validates the result.
func Decode(r io.Reader, name string) (Config, error) {
	cfg := Default()
	meta, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, &UnknownKeysError{Name: name, Keys: keys}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Scan.MaxDiagnostics < 0 || c.Scan.MaxDiagnostics > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("[scan].max_diagnostics must be within 0..%d, got %d", math.MaxUint16, c.Scan.MaxDiagnostics))
	}
	if c.Scan.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[scan].jobs must not be negative, got %d", c.Scan.Jobs))
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		errs = append(errs, fmt.Errorf("[trace].level: %w", err))
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		errs = append(errs, fmt.Errorf("[trace].format: %w", err))
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		errs = append(errs, fmt.Errorf("[trace].mode: %w", err))
	}
	if c.Trace.RingSize < 0 {
		errs = append(errs, fmt.Errorf("[trace].ring_size must not be negative, got %d", c.Trace.RingSize))
	}
	if c.Render.Context < 0 || c.Render.Context > math.MaxUint8 {
		errs = append(errs, fmt.Errorf("[render].context must be within 0..%d, got %d", math.MaxUint8, c.Render.Context))
	}
	if c.Render.TabWidth < 0 {
		errs = append(errs, fmt.Errorf("[render].tab_width must not be negative, got %d", c.Render.TabWidth))
	}
	switch c.Render.Tokens {
	case "pretty", "json":
	default:
		errs = append(errs, fmt.Errorf("[render].tokens: invalid listing format %q (expected: pretty|json)", c.Render.Tokens))
	}
	return errors.Join(errs...)
}
