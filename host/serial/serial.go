package serial

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"framelink/transport"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (USB CDC ignores this)
	Baud int

	// ReadTimeout bounds each read; it should not exceed the session poll timeout
	ReadTimeout time.Duration
}

// DefaultBaud matches the device UART fallback
const DefaultBaud = 115200

// DefaultReadTimeout keeps a read within one session poll
const DefaultReadTimeout = 20 * time.Millisecond

// DefaultConfig returns a default configuration for a device path
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: DefaultReadTimeout,
	}
}

// OpenFunc opens a port; Open is the native implementation
type OpenFunc func(cfg *Config) (Port, error)

// Candidate offers a serial device to the transport selector
type Candidate struct {
	ID     string
	Config *Config
	Open   OpenFunc
}

// NewCandidate creates a candidate for cfg opened with the native driver
func NewCandidate(id string, cfg *Config) *Candidate {
	return &Candidate{ID: id, Config: cfg, Open: Open}
}

// Name implements transport.Candidate
func (c *Candidate) Name() string {
	return c.ID
}

// Probe opens the device. The timeout only bounds the first read, since
// opening a tty does not block on the far end.
func (c *Candidate) Probe(timeout time.Duration) (transport.Transport, error) {
	cfg := *c.Config
	if cfg.ReadTimeout <= 0 || cfg.ReadTimeout > timeout {
		cfg.ReadTimeout = timeout
	}

	port, err := c.Open(&cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "probe %s", c.ID)
	}
	// Drop bytes left over from before the device reset
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, errors.Wrapf(err, "flush %s", c.ID)
	}
	return NewLink(c.ID, port), nil
}

// Link adapts a Port to transport.Transport.
// The port's own read timeout bounds each Read.
type Link struct {
	name    string
	port    Port
	faulted atomic.Bool
	closed  atomic.Bool
}

// NewLink wraps an open port
func NewLink(name string, port Port) *Link {
	return &Link{name: name, port: port}
}

func (l *Link) Name() string {
	return l.name
}

// Read returns (0, nil) when the port timed out without data
func (l *Link) Read(p []byte, _ time.Duration) (int, error) {
	if !l.IsOpen() {
		return 0, transport.ErrClosed
	}

	n, err := l.port.Read(p)
	if err == io.EOF && n == 0 {
		// tarm/serial reports an expired read timeout as EOF on posix
		return 0, nil
	}
	if err != nil {
		l.faulted.Store(true)
		return n, errors.Wrapf(err, "%s: read", l.name)
	}
	return n, nil
}

func (l *Link) Write(p []byte) (int, error) {
	if !l.IsOpen() {
		return 0, transport.ErrClosed
	}
	n, err := l.port.Write(p)
	if err != nil {
		l.faulted.Store(true)
	}
	return n, err
}

func (l *Link) IsOpen() bool {
	return !l.faulted.Load() && !l.closed.Load()
}

// Close releases the port
func (l *Link) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.port.Close()
}
