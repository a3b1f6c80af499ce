//go:build (rp2040 || rp2350) && !ws2812

package main

import "machine"

type ledIndicator struct {
	pin machine.Pin
}

func newIndicator() indicator {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return ledIndicator{pin: led}
}

func (l ledIndicator) Set(_ statusPattern, on bool) {
	l.pin.Set(on)
}
