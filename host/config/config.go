// Package config loads the desktop runner configuration from TOML.
package config

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"framelink/core"
	"framelink/transport"
)

// Transport kinds
const (
	KindSerial = "serial"
	KindStdio  = "stdio"
)

// Log formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// TransportConfig is one selector candidate, in priority order
type TransportConfig struct {
	Name   string
	Kind   string
	Device string
	Baud   int
}

// LogConfig controls the runner's logger
type LogConfig struct {
	Level  string
	Format string
}

// Config is the desktop runner configuration
type Config struct {
	Device          core.Config
	Selector        transport.SelectorConfig
	MaintenanceFlag string
	Log             LogConfig
	Transports      []TransportConfig
}

// Default returns a runner that serves the protocol on stdio
func Default() Config {
	return Config{
		Device:          core.DefaultConfig("sim"),
		Selector:        transport.DefaultSelectorConfig(),
		MaintenanceFlag: "MAINTENANCE",
		Log:             LogConfig{Level: "info", Format: FormatConsole},
		Transports:      []TransportConfig{{Name: "console", Kind: KindStdio}},
	}
}

type fileConfig struct {
	Board           string          `toml:"board"`
	MaxPayload      int             `toml:"max_payload"`
	PollTimeout     string          `toml:"poll_timeout"`
	ProbeTimeout    string          `toml:"probe_timeout"`
	ProbeWindow     string          `toml:"probe_window"`
	MaintenanceFlag string          `toml:"maintenance_flag"`
	Log             fileLog         `toml:"log"`
	Transport       []fileTransport `toml:"transport"`
}

type fileLog struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type fileTransport struct {
	Name   string `toml:"name"`
	Kind   string `toml:"kind"`
	Device string `toml:"device"`
	Baud   int    `toml:"baud"`
}

// Load reads path and applies the keys it defines over Default
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	return apply(Default(), raw, meta)
}

// Parse is Load for an in-memory document
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	return apply(Default(), raw, meta)
}

func apply(cfg Config, raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("unknown config key %q", undecoded[0].String())
	}

	if meta.IsDefined("board") {
		if board := strings.TrimSpace(raw.Board); board != "" {
			cfg.Device.Board = board
		}
	}

	if meta.IsDefined("max_payload") {
		cfg.Device.MaxPayload = raw.MaxPayload
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"poll_timeout", raw.PollTimeout, &cfg.Device.PollTimeout},
		{"probe_timeout", raw.ProbeTimeout, &cfg.Selector.ProbeTimeout},
		{"probe_window", raw.ProbeWindow, &cfg.Selector.Window},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Config{}, errors.Wrapf(err, "parse %s", d.key)
		}
		*d.dst = v
	}

	if meta.IsDefined("maintenance_flag") {
		cfg.MaintenanceFlag = strings.TrimSpace(raw.MaintenanceFlag)
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(raw.Log.Level))
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = strings.ToLower(strings.TrimSpace(raw.Log.Format))
	}

	if meta.IsDefined("transport") {
		cfg.Transports = nil
		for _, t := range raw.Transport {
			cfg.Transports = append(cfg.Transports, TransportConfig{
				Name:   strings.TrimSpace(t.Name),
				Kind:   strings.ToLower(strings.TrimSpace(t.Kind)),
				Device: strings.TrimSpace(t.Device),
				Baud:   t.Baud,
			})
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration
func (c Config) Validate() error {
	if err := c.Device.Validate(); err != nil {
		return err
	}
	if c.Device.MaxPayload > 1<<24 {
		return errors.Errorf("max_payload %d too large", c.Device.MaxPayload)
	}
	if c.Selector.ProbeTimeout <= 0 || c.Selector.Window <= 0 {
		return errors.New("probe_timeout and probe_window must be positive")
	}

	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}

	if len(c.Transports) == 0 {
		return errors.New("no transport configured")
	}
	seen := make(map[string]bool, len(c.Transports))
	for i, t := range c.Transports {
		if t.Name == "" {
			return errors.Errorf("transport %d: name is required", i)
		}
		if seen[t.Name] {
			return errors.Errorf("transport %q: duplicate name", t.Name)
		}
		seen[t.Name] = true

		switch t.Kind {
		case KindSerial:
			if t.Device == "" {
				return errors.Errorf("transport %q: device is required", t.Name)
			}
		case KindStdio:
		default:
			return errors.Errorf("transport %q: unknown kind %q", t.Name, t.Kind)
		}
	}
	return nil
}
