//go:build rp2040 || rp2350

package main

import (
	"machine"

	"framelink/diag"
)

// initDebugUART configures UART1 on GPIO4 (TX) and GPIO5 (RX) at 115200
// and returns a logger writing to it. Logs never go to the protocol link.
func initDebugUART() diag.Logger {
	uart := machine.UART1
	err := uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GPIO4,
		RX:       machine.GPIO5,
	})
	if err != nil {
		return diag.Nop()
	}

	return diag.NewLineLogger(func(line string) {
		uart.Write([]byte(line))
		uart.Write([]byte("\r\n"))
	}, diag.LevelDebug)
}
