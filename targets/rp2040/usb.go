//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"
	"time"

	"framelink/transport"
)

var (
	errNoHost    = errors.New("usb: host has not opened the port")
	errNoConsole = errors.New("usb: no console input")
)

// dtrPort is implemented by the TinyGo USB CDC port
type dtrPort interface {
	DTR() bool
}

// initUSB configures machine.Serial, which is USB CDC on the Pico.
// The USB descriptors are set by TinyGo's runtime.
func initUSB() {
	machine.Serial.Configure(machine.UARTConfig{})
}

// usbDataCandidate binds USB CDC once the host asserts DTR, which is how
// a host program signals it opened the port for data
func usbDataCandidate() transport.Candidate {
	return transport.CandidateFunc{
		ID: "usb-cdc-data",
		ProbeFunc: func(timeout time.Duration) (transport.Transport, error) {
			port, ok := machine.Serial.(dtrPort)
			if !ok {
				return nil, errNoHost
			}
			if !waitFor(port.DTR, timeout) {
				return nil, errNoHost
			}
			return &serialLink{name: "usb-cdc-data", port: machine.Serial, open: port.DTR}, nil
		},
	}
}

// usbConsoleCandidate binds USB CDC as a console when input is already
// waiting, for hosts that never raise DTR
func usbConsoleCandidate() transport.Candidate {
	return transport.CandidateFunc{
		ID: "usb-cdc-console",
		ProbeFunc: func(timeout time.Duration) (transport.Transport, error) {
			pending := func() bool { return machine.Serial.Buffered() > 0 }
			if !waitFor(pending, timeout) {
				return nil, errNoConsole
			}
			return &serialLink{name: "usb-cdc-console", port: machine.Serial}, nil
		},
	}
}

// waitFor polls cond until it holds or timeout passes
func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}
