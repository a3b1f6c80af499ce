package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framelink/protocol"
)

type brokenFlag struct{}

func (brokenFlag) Set() error             { return errors.New("store unavailable") }
func (brokenFlag) Consume() (bool, error) { return true, errors.New("store unavailable") }

func TestDetectBootMode(t *testing.T) {
	pinLow := func() bool { return true }
	pinHigh := func() bool { return false }

	flag := &memFlag{}
	assert.Equal(t, ModeProtocol, DetectBootMode(flag, pinHigh))
	assert.Equal(t, ModeMaintenance, DetectBootMode(flag, pinLow))

	require.NoError(t, flag.Set())
	assert.Equal(t, ModeMaintenance, DetectBootMode(flag, pinHigh))
	assert.Equal(t, ModeProtocol, DetectBootMode(flag, pinHigh), "flag is consumed on read")

	assert.Equal(t, ModeProtocol, DetectBootMode(brokenFlag{}, pinHigh))
	assert.Equal(t, ModeProtocol, DetectBootMode(nil, nil))

	assert.Equal(t, "maintenance", ModeMaintenance.String())
	assert.Equal(t, "protocol", ModeProtocol.String())
}

func TestResetLatch(t *testing.T) {
	var latch ResetLatch
	assert.False(t, latch.Pending())
	latch.Request()
	latch.Request()
	assert.True(t, latch.Pending())
}

func TestRuntimeHeapFree(t *testing.T) {
	// Only checks the call is safe; the value depends on the runtime
	_ = RuntimeHeapFree()
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig("pico")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, protocol.Version, cfg.Version)
	assert.Equal(t, protocol.DefaultMaxPayload, cfg.MaxPayload)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no version", func(c *Config) { c.Version = "" }},
		{"small payload", func(c *Config) { c.MaxPayload = protocol.RecommendedPayload - 1 }},
		{"zero poll", func(c *Config) { c.PollTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig("pico")
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	clock := NewClockFrom(func() time.Time { return now })
	assert.Equal(t, int64(0), clock.UptimeMillis())

	now = now.Add(2500 * time.Millisecond)
	assert.Equal(t, 2500*time.Millisecond, clock.Uptime())
	assert.Equal(t, int64(2500), clock.UptimeMillis())

	// A clock stepped backwards never reports negative uptime
	now = time.Unix(50, 0)
	assert.Equal(t, time.Duration(0), clock.Uptime())
}

func TestClockMillisStrictlyIncrease(t *testing.T) {
	now := time.Unix(100, 0)
	clock := NewClockFrom(func() time.Time { return now })

	assert.Equal(t, int64(0), clock.UptimeMillis())
	now = now.Add(300 * time.Microsecond)
	assert.Equal(t, int64(1), clock.UptimeMillis(), "sub-millisecond delay still advances")
	assert.Equal(t, int64(2), clock.UptimeMillis())

	now = now.Add(10 * time.Millisecond)
	assert.Equal(t, int64(10), clock.UptimeMillis())
}
