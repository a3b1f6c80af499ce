package transport

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

const streamChunkSize = 256

// Stream turns a blocking io.Reader and an io.Writer into a Transport.
// A pump goroutine reads ahead so Read can honor its timeout.
type Stream struct {
	name    string
	w       io.Writer
	chunks  chan []byte
	pending []byte
	err     error // set by the pump before chunks is closed
	closed  atomic.Bool
}

// NewStream starts pumping r and returns the transport
func NewStream(name string, r io.Reader, w io.Writer) *Stream {
	s := &Stream{
		name:   name,
		w:      w,
		chunks: make(chan []byte, 16),
	}
	go s.pump(r)
	return s
}

func (s *Stream) pump(r io.Reader) {
	for {
		buf := make([]byte, streamChunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			s.chunks <- buf[:n]
		}
		if err != nil {
			s.err = err
			close(s.chunks)
			return
		}
	}
}

// Name implements Transport
func (s *Stream) Name() string {
	return s.name
}

// Read implements Transport
func (s *Stream) Read(p []byte, timeout time.Duration) (int, error) {
	if len(s.pending) == 0 {
		if s.closed.Load() {
			return 0, s.closedErr()
		}

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				s.closed.Store(true)
				return 0, s.closedErr()
			}
			s.pending = chunk
		case <-timer.C:
			return 0, nil
		}
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// Write implements Transport
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed.Load() {
		return 0, s.closedErr()
	}
	return s.w.Write(p)
}

// IsOpen implements Transport
func (s *Stream) IsOpen() bool {
	return !s.closed.Load()
}

func (s *Stream) closedErr() error {
	if s.err != nil && s.err != io.EOF {
		return errors.Wrapf(ErrClosed, "%s: %v", s.name, s.err)
	}
	return errors.Wrap(ErrClosed, s.name)
}
