package main

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"framelink/core"
	"framelink/diag"
	"framelink/host/config"
	"framelink/host/platform"
	"framelink/host/serial"
	"framelink/transport"
)

// runner simulates the device: each boot checks the maintenance trigger,
// selects a transport and serves a fresh session until reset
type runner struct {
	cfg      config.Config
	log      diag.Logger
	flag     platform.FileFlag
	platform *platform.Desktop
	stdin    io.Reader
	stdout   io.Writer
	stdio    *transport.Stream // created on first use, shared by all boots
}

func newRunner(cfg config.Config, log diag.Logger, stdin io.Reader, stdout io.Writer) *runner {
	return &runner{
		cfg:      cfg,
		log:      log,
		flag:     platform.FileFlag{Path: cfg.MaintenanceFlag},
		platform: &platform.Desktop{},
		stdin:    stdin,
		stdout:   stdout,
	}
}

// Run boots the device until ctx is done or a boot fails
func (r *runner) Run(ctx context.Context) error {
	for {
		err := r.boot(ctx)
		if !errors.Is(err, core.ErrResetRequested) {
			return err
		}
		r.platform.Reset()
		r.log.Info("simulated reset", "resets", r.platform.Resets())
	}
}

func (r *runner) boot(ctx context.Context) error {
	mode := core.DetectBootMode(r.flag, nil)
	r.log.Info("boot", "board", r.cfg.Device.Board, "mode", mode.String())
	if mode == core.ModeMaintenance {
		r.log.Info("maintenance mode: protocol loop not started, reset to return")
		<-ctx.Done()
		return ctx.Err()
	}

	selector := transport.NewSelector(r.cfg.Selector, r.log, r.candidates()...)
	t, err := selector.Select(ctx)
	if err != nil {
		return errors.Wrap(err, "select transport")
	}

	dev := core.NewDevice(r.cfg.Device, t, r.platform, r.log)
	dev.Maintenance = r.flag

	registry, err := core.NewBuiltinRegistry(dev)
	if err != nil {
		return err
	}
	r.log.Debug("commands registered", "count", registry.Count())
	session := core.NewSession(dev, registry)

	group, child := errgroup.WithContext(ctx)
	group.Go(func() error {
		return session.Run(child)
	})
	group.Go(func() error {
		// Release serial ports when the session ends so the next boot can reopen them
		<-child.Done()
		if c, ok := t.(io.Closer); ok {
			return c.Close()
		}
		return nil
	})

	err = group.Wait()
	r.log.Info("session ended", "transport", t.Name(), "frames_in", dev.Stats.FramesIn,
		"frames_out", dev.Stats.FramesOut, "faults", dev.Stats.Faults)
	return err
}

// candidates builds the selector list in configured priority order
func (r *runner) candidates() []transport.Candidate {
	out := make([]transport.Candidate, 0, len(r.cfg.Transports))
	for _, tc := range r.cfg.Transports {
		switch tc.Kind {
		case config.KindSerial:
			sc := serial.DefaultConfig(tc.Device)
			if tc.Baud > 0 {
				sc.Baud = tc.Baud
			}
			sc.ReadTimeout = r.cfg.Device.PollTimeout
			out = append(out, serial.NewCandidate(tc.Name, sc))
		case config.KindStdio:
			name := tc.Name
			out = append(out, transport.CandidateFunc{
				ID: name,
				ProbeFunc: func(timeout time.Duration) (transport.Transport, error) {
					if r.stdio == nil {
						r.stdio = transport.NewStream(name, r.stdin, r.stdout)
					}
					return r.stdio, nil
				},
			})
		}
	}
	return out
}
