package core

import (
	"context"
	"errors"

	"framelink/diag"
	"framelink/protocol"
	"framelink/transport"
)

// ErrResetRequested ends a session so the caller can reset the device
var ErrResetRequested = errors.New("device reset requested")

// Session runs the request/response loop over the bound transport.
// It is strictly sequential: every complete frame is answered before the
// next read.
type Session struct {
	dev        *Device
	t          transport.Transport
	dec        *protocol.Decoder
	enc        *protocol.Encoder
	dispatcher *Dispatcher
	log        diag.Logger
}

// NewSession creates a session serving registry over the device's transport
func NewSession(dev *Device, registry *CommandRegistry) *Session {
	return &Session{
		dev:        dev,
		t:          dev.Transport,
		dec:        protocol.NewDecoder(dev.Config.MaxPayload),
		enc:        protocol.NewEncoder(),
		dispatcher: NewDispatcher(registry, dev.Log),
		log:        dev.Log,
	}
}

// Run polls until ctx is done, the transport faults, or a reset is requested
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("session started", "transport", s.t.Name(), "version", s.dev.Config.Version,
		"max_payload", s.dec.MaxPayload())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Poll(); err != nil {
			return err
		}
	}
}

// Poll performs one loop iteration: a single bounded read, then a response
// for every complete frame now buffered. A returned error ends the session.
func (s *Session) Poll() error {
	if !s.t.IsOpen() {
		return transport.ErrClosed
	}

	if space := s.dec.Space(); len(space) > 0 {
		n, err := s.t.Read(space, s.dev.Config.PollTimeout)
		if n > 0 {
			s.dec.Commit(n)
		}
		if err != nil {
			s.log.Error("transport read failed", "transport", s.t.Name(), "error", err)
			return err
		}
	}

	for {
		payload, err := s.dec.Next()
		if errors.Is(err, protocol.ErrIncomplete) {
			break
		}
		s.dev.Stats.FramesIn++

		var resp protocol.Response
		if err != nil {
			s.log.Warn("frame rejected", "error", err)
			resp = Report(err)
		} else {
			resp = s.handle(payload)
		}

		if err := s.send(resp); err != nil {
			return err
		}
	}

	if s.dev.Reset.Pending() {
		return ErrResetRequested
	}
	return nil
}

func (s *Session) handle(payload []byte) protocol.Response {
	if len(payload) > protocol.RecommendedPayload {
		s.log.Warn("payload above recommended size", "bytes", len(payload))
	}

	msg, err := protocol.ParseMessage(payload)
	if err != nil {
		s.log.Debug("decode failed", "error", err)
		return Report(err)
	}
	return s.dispatcher.Dispatch(msg)
}

// send frames resp and writes it as one contiguous buffer
func (s *Session) send(resp protocol.Response) error {
	frame, err := s.enc.Encode(resp)
	if err != nil {
		s.log.Error("response not encodable", "type", resp.Type, "error", err)
		resp = protocol.Failure(protocol.CodeInternalError, "response could not be encoded")
		if frame, err = s.enc.Encode(resp); err != nil {
			return err
		}
	}

	if err := transport.WriteFull(s.t, frame); err != nil {
		s.log.Error("transport write failed", "transport", s.t.Name(), "error", err)
		return err
	}

	s.dev.Stats.FramesOut++
	if resp.IsError() {
		s.dev.Stats.Faults++
	}
	return nil
}
