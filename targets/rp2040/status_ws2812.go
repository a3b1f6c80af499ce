//go:build (rp2040 || rp2350) && ws2812

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// pixelPin drives a single WS2812 status pixel
const pixelPin = machine.GPIO16

type pixelIndicator struct {
	dev ws2812.Device
}

func newIndicator() indicator {
	pixelPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return pixelIndicator{dev: ws2812.New(pixelPin)}
}

// Set shows the pattern's colour, or turns the pixel off
func (p pixelIndicator) Set(s statusPattern, on bool) {
	c := color.RGBA{}
	if on {
		c = s.color
	}
	p.dev.WriteColors([]color.RGBA{c})
}
