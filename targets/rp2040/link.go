//go:build rp2040 || rp2350

package main

import (
	"time"
)

// pollInterval is how long a read sleeps between checks for input
const pollInterval = 100 * time.Microsecond

// serialer is the part of a machine serial port a link needs
type serialer interface {
	Buffered() int
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
}

// serialLink adapts a polled serial port to transport.Transport
type serialLink struct {
	name string
	port serialer
	open func() bool
}

func (l *serialLink) Name() string {
	return l.name
}

// Read waits up to timeout for input, then drains what is buffered
func (l *serialLink) Read(p []byte, timeout time.Duration) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	deadline := time.Now().Add(timeout)
	for l.port.Buffered() == 0 {
		if !time.Now().Before(deadline) {
			return 0, nil
		}
		time.Sleep(pollInterval)
	}

	n := 0
	for n < len(p) && l.port.Buffered() > 0 {
		b, err := l.port.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
	}
	return n, nil
}

func (l *serialLink) Write(p []byte) (int, error) {
	return l.port.Write(p)
}

func (l *serialLink) IsOpen() bool {
	return l.open == nil || l.open()
}
