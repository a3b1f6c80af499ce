// Package transport abstracts the physical byte channel carrying frames and
// selects exactly one channel at boot.
package transport

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNoTransport is returned once the selector's probe window has elapsed
	// without any candidate coming up. It persists until reset.
	ErrNoTransport = errors.New("transport: no transport available")

	// ErrClosed is returned when the channel is no longer usable
	ErrClosed = errors.New("transport: closed")
)

// Transport is a bounded-timeout byte channel.
//
// Read waits at most timeout for data and returns (0, nil) when none arrived.
// Any returned error is a transport fault: the channel is unusable for the
// rest of the session.
type Transport interface {
	Name() string
	Read(p []byte, timeout time.Duration) (int, error)
	Write(p []byte) (int, error)
	IsOpen() bool
}

// Candidate is a transport variant that can be brought up at boot.
// Probe must return within roughly timeout; it returns the transport only
// when it is open and ready to carry traffic.
type Candidate interface {
	Name() string
	Probe(timeout time.Duration) (Transport, error)
}

// CandidateFunc adapts a probe function to a Candidate
type CandidateFunc struct {
	ID        string
	ProbeFunc func(timeout time.Duration) (Transport, error)
}

// Name implements Candidate
func (c CandidateFunc) Name() string {
	return c.ID
}

// Probe implements Candidate
func (c CandidateFunc) Probe(timeout time.Duration) (Transport, error) {
	return c.ProbeFunc(timeout)
}

// WriteFull writes all of p, handling partial writes.
// A write that makes no progress is a fault.
func WriteFull(t Transport, p []byte) error {
	written := 0
	for written < len(p) {
		n, err := t.Write(p[written:])
		if err != nil {
			return errors.Wrapf(err, "%s: write", t.Name())
		}
		if n == 0 {
			return errors.Wrapf(io.ErrShortWrite, "%s: write stalled at %d/%d bytes", t.Name(), written, len(p))
		}
		written += n
	}
	return nil
}
