package serial

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framelink/transport"
)

type fakePort struct {
	in       bytes.Buffer
	out      bytes.Buffer
	readErr  error
	flushErr error
	closed   int
	flushed  int
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if f.in.Len() == 0 {
		return 0, io.EOF
	}
	return f.in.Read(p)
}

func (f *fakePort) Write(p []byte) (int, error) { return f.out.Write(p) }
func (f *fakePort) Close() error                { f.closed++; return nil }
func (f *fakePort) Flush() error {
	if f.flushErr != nil {
		return f.flushErr
	}
	f.flushed++
	f.in.Reset()
	return nil
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, 20*time.Millisecond, cfg.ReadTimeout)
}

func TestCandidateProbe(t *testing.T) {
	port := &fakePort{}
	var opened *Config
	c := &Candidate{
		ID:     "usb",
		Config: &Config{Device: "/dev/ttyACM0", Baud: 115200, ReadTimeout: time.Second},
		Open: func(cfg *Config) (Port, error) {
			opened = cfg
			return port, nil
		},
	}

	tr, err := c.Probe(250 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "usb", tr.Name())
	assert.True(t, tr.IsOpen())
	assert.Equal(t, 250*time.Millisecond, opened.ReadTimeout, "read timeout capped by the probe timeout")
	assert.Equal(t, time.Second, c.Config.ReadTimeout, "candidate config is not modified")

	var _ transport.Candidate = c
}

func TestCandidateProbeDropsStaleInput(t *testing.T) {
	port := &fakePort{}
	port.in.WriteString("stale bytes from before the reset")
	c := &Candidate{
		ID:     "usb",
		Config: DefaultConfig("/dev/ttyACM0"),
		Open:   func(*Config) (Port, error) { return port, nil },
	}

	tr, err := c.Probe(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, port.flushed)

	n, err := tr.Read(make([]byte, 16), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCandidateProbeFlushFailure(t *testing.T) {
	port := &fakePort{flushErr: errors.New("tcflush failed")}
	c := &Candidate{
		ID:     "usb",
		Config: DefaultConfig("/dev/ttyACM0"),
		Open:   func(*Config) (Port, error) { return port, nil },
	}

	_, err := c.Probe(time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush usb")
	assert.Equal(t, 1, port.closed, "port released when flush fails")
}

func TestCandidateProbeFailure(t *testing.T) {
	c := &Candidate{
		ID:     "usb",
		Config: DefaultConfig("/dev/missing"),
		Open: func(*Config) (Port, error) {
			return nil, errors.New("no such file")
		},
	}
	_, err := c.Probe(time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe usb")
}

func TestLinkReadWrite(t *testing.T) {
	port := &fakePort{}
	link := NewLink("usb", port)

	buf := make([]byte, 8)
	n, err := link.Read(buf, time.Millisecond)
	require.NoError(t, err, "timeout is not an error")
	assert.Equal(t, 0, n)

	port.in.WriteString("abc")
	n, err = link.Read(buf, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf[:n]))

	require.NoError(t, transport.WriteFull(link, []byte("reply")))
	assert.Equal(t, "reply", port.out.String())
}

func TestLinkReadFaultCloses(t *testing.T) {
	port := &fakePort{readErr: errors.New("device unplugged")}
	link := NewLink("usb", port)

	_, err := link.Read(make([]byte, 4), time.Millisecond)
	require.Error(t, err)
	assert.False(t, link.IsOpen())

	_, err = link.Write([]byte("x"))
	assert.ErrorIs(t, err, transport.ErrClosed)

	require.NoError(t, link.Close())
	assert.Equal(t, 1, port.closed, "a faulted port is still released")
}

func TestLinkClose(t *testing.T) {
	port := &fakePort{}
	link := NewLink("usb", port)
	require.NoError(t, link.Close())
	require.NoError(t, link.Close())
	assert.Equal(t, 1, port.closed)
	assert.False(t, link.IsOpen())
}
