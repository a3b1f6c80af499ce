package transport

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"framelink/diag"
)

// Selector defaults
const (
	DefaultProbeTimeout = 250 * time.Millisecond
	DefaultProbeWindow  = 5 * time.Second
	DefaultProbeBackoff = 50 * time.Millisecond
)

// SelectorConfig bounds the boot-time probe
type SelectorConfig struct {
	ProbeTimeout time.Duration // Per-candidate probe bound
	Window       time.Duration // Overall window before giving up
	Backoff      time.Duration // Pause between probe rounds
}

// DefaultSelectorConfig returns the firmware defaults
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		ProbeTimeout: DefaultProbeTimeout,
		Window:       DefaultProbeWindow,
		Backoff:      DefaultProbeBackoff,
	}
}

// Selector probes candidates in priority order and binds the first one that
// comes up. The binding, or the failure, holds for the selector's lifetime.
type Selector struct {
	cfg        SelectorConfig
	candidates []Candidate
	log        diag.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	bound  Transport
	failed bool
}

// NewSelector creates a selector over candidates, highest priority first
func NewSelector(cfg SelectorConfig, log diag.Logger, candidates ...Candidate) *Selector {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultProbeWindow
	}
	if cfg.Backoff < 0 {
		cfg.Backoff = 0
	}
	if log == nil {
		log = diag.Nop()
	}
	return &Selector{
		cfg:        cfg,
		candidates: candidates,
		log:        log,
		now:        time.Now,
		sleep:      sleepContext,
	}
}

// Select returns the bound transport, probing if nothing is bound yet.
// Once the window has elapsed without success every call returns ErrNoTransport.
func (s *Selector) Select(ctx context.Context) (Transport, error) {
	if s.bound != nil {
		return s.bound, nil
	}
	if s.failed {
		return nil, ErrNoTransport
	}
	if len(s.candidates) == 0 {
		s.failed = true
		return nil, errors.Wrap(ErrNoTransport, "no candidates configured")
	}

	start := s.now()
	deadline := start.Add(s.cfg.Window)
	for round := 1; ; round++ {
		for _, c := range s.candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if d, ok := c.(Deferred); ok && s.now().Sub(start) < d.Delay() {
				continue
			}
			if t := s.probe(c, round); t != nil {
				s.bound = t
				s.log.Info("transport bound", "name", t.Name(), "round", round)
				return t, nil
			}
		}

		if !s.now().Before(deadline) {
			s.failed = true
			s.log.Error("no transport came up", "rounds", round, "window", s.cfg.Window)
			return nil, errors.Wrapf(ErrNoTransport, "after %d probe rounds", round)
		}
		if err := s.sleep(ctx, s.cfg.Backoff); err != nil {
			return nil, err
		}
	}
}

// Deferred is a candidate that must not be probed until Delay has passed
// since selection started
type Deferred interface {
	Candidate
	Delay() time.Duration
}

type deferredCandidate struct {
	Candidate
	delay time.Duration
}

func (d deferredCandidate) Delay() time.Duration {
	return d.delay
}

// Defer holds c back for the first d of the probe window, so a
// higher-priority link that needs time to come up is not shadowed by a
// fallback that is always ready
func Defer(c Candidate, d time.Duration) Candidate {
	return deferredCandidate{Candidate: c, delay: d}
}

func (s *Selector) probe(c Candidate, round int) Transport {
	t, err := c.Probe(s.cfg.ProbeTimeout)
	if err != nil {
		s.log.Debug("probe failed", "candidate", c.Name(), "round", round, "error", err)
		return nil
	}
	if t == nil || !t.IsOpen() {
		if closer, ok := t.(io.Closer); ok {
			_ = closer.Close()
		}
		s.log.Debug("candidate not open", "candidate", c.Name(), "round", round)
		return nil
	}
	return t
}

// Bound returns the bound transport, or nil
func (s *Selector) Bound() Transport {
	return s.bound
}

// Failed reports whether the selector is in its persistent error state
func (s *Selector) Failed() bool {
	return s.failed
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
