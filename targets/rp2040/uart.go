//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"framelink/transport"
)

const uartBaud = 115200

// uart0Candidate is the last resort link: UART0 at 115200 8N1 on
// GPIO0 (TX) and GPIO1 (RX). Once configured it is always open.
func uart0Candidate() transport.Candidate {
	return transport.CandidateFunc{
		ID: "uart0",
		ProbeFunc: func(timeout time.Duration) (transport.Transport, error) {
			uart := machine.UART0
			err := uart.Configure(machine.UARTConfig{
				BaudRate: uartBaud,
				TX:       machine.GPIO0,
				RX:       machine.GPIO1,
			})
			if err != nil {
				return nil, err
			}
			if err := uart.SetFormat(8, 1, machine.ParityNone); err != nil {
				return nil, err
			}
			return &serialLink{name: "uart0", port: uart}, nil
		},
	}
}
