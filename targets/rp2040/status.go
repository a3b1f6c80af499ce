//go:build rp2040 || rp2350

package main

import (
	"image/color"
	"time"
)

// statusPattern describes how the status indicator shows a device state
type statusPattern struct {
	on, off time.Duration
	color   color.RGBA
}

var (
	patternReady       = statusPattern{color: color.RGBA{G: 0x10}}
	patternMaintenance = statusPattern{on: time.Second, off: time.Second, color: color.RGBA{B: 0x20}}
	patternFault       = statusPattern{on: 100 * time.Millisecond, off: 100 * time.Millisecond, color: color.RGBA{R: 0x20}}
)

// indicator is the board's status light
type indicator interface {
	Set(p statusPattern, on bool)
}

// blinkForever shows p until the device is reset
func blinkForever(ind indicator, p statusPattern) {
	for {
		ind.Set(p, true)
		time.Sleep(p.on)
		ind.Set(p, false)
		time.Sleep(p.off)
	}
}
