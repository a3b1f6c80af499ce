package core

import (
	"errors"
	"time"

	"framelink/protocol"
)

// Config is the immutable device configuration built once at boot
type Config struct {
	Version     string        // Firmware version string
	Board       string        // Board identifier reported by identify
	MaxPayload  int           // Largest accepted frame payload
	PollTimeout time.Duration // Bound on each transport read
}

// DefaultPollTimeout bounds each read so the loop stays responsive
const DefaultPollTimeout = 20 * time.Millisecond

// DefaultConfig returns the firmware defaults for a board
func DefaultConfig(board string) Config {
	return Config{
		Version:     protocol.Version,
		Board:       board,
		MaxPayload:  protocol.DefaultMaxPayload,
		PollTimeout: DefaultPollTimeout,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Version == "" {
		return errors.New("config: version is required")
	}
	if c.MaxPayload < protocol.RecommendedPayload {
		return errors.New("config: max payload below the recommended message size")
	}
	if c.PollTimeout <= 0 {
		return errors.New("config: poll timeout must be positive")
	}
	return nil
}
