//go:build rp2040 || rp2350

package main

import (
	"encoding/hex"
	"errors"
	"machine"
	"time"

	"framelink/core"
)

// boardPlatform implements core.Platform on the RP2040
type boardPlatform struct{}

func (boardPlatform) HeapFree() uint64 {
	return core.RuntimeHeapFree()
}

// DeviceID returns the unique id of the external flash chip
func (boardPlatform) DeviceID() (string, error) {
	id := machine.DeviceID()
	if len(id) == 0 {
		return "", errors.New("device id unavailable")
	}
	return hex.EncodeToString(id), nil
}

// Reset uses a watchdog reset rather than SYSRESETREQ; it is more
// reliable on the RP2040 and lets USB re-enumerate cleanly
func (boardPlatform) Reset() {
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1}); err != nil {
		return
	}
	if err := machine.Watchdog.Start(); err != nil {
		return
	}
	for {
		time.Sleep(time.Millisecond)
	}
}
