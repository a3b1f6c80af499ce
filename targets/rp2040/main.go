//go:build rp2040 || rp2350

package main

import (
	"context"
	"errors"
	"machine"
	"time"

	"framelink/core"
	"framelink/diag"
	"framelink/transport"
)

const boardName = "rp2040-pico"

// usbGrace covers USB enumeration after a reset before UART0 may bind
const usbGrace = 2 * time.Second

// maintenancePin held low at reset keeps the protocol loop off
const maintenancePin = machine.GPIO2

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	log := initDebugUART()
	status := newIndicator()
	platform := boardPlatform{}
	flag := flashFlag{}

	maintenancePin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	mode := core.DetectBootMode(flag, func() bool { return !maintenancePin.Get() })
	log.Info("boot", "board", boardName, "mode", mode.String())
	if mode == core.ModeMaintenance {
		runMaintenance(status)
	}

	initUSB()
	selector := transport.NewSelector(transport.DefaultSelectorConfig(), log,
		usbDataCandidate(), usbConsoleCandidate(), transport.Defer(uart0Candidate(), usbGrace))

	t, err := selector.Select(context.Background())
	if err != nil {
		log.Error("no transport available", "error", err)
		blinkForever(status, patternFault)
	}
	log.Info("transport bound", "transport", t.Name())

	dev := core.NewDevice(core.DefaultConfig(boardName), t, platform, log)
	dev.Maintenance = flag

	registry, err := core.NewBuiltinRegistry(dev)
	if err != nil {
		log.Error("command registry", "error", err)
		blinkForever(status, patternFault)
	}
	log.Debug("commands registered", "count", registry.Count())
	session := core.NewSession(dev, registry)
	status.Set(patternReady, true)

	err = runSession(session, log)
	if errors.Is(err, core.ErrResetRequested) {
		log.Info("resetting on request")
	} else {
		// The bound transport is gone; a reset re-probes all candidates
		log.Error("session ended", "error", err)
		status.Set(patternFault, true)
		time.Sleep(time.Second)
	}
	platform.Reset()
}

// runSession runs the protocol loop, turning a panic outside the
// handlers into an error so the device resets instead of hanging
func runSession(session *core.Session, log diag.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("session panic", "value", r)
			err = errors.New("session panic")
		}
	}()
	return session.Run(context.Background())
}

// runMaintenance leaves the USB console to the user and never returns.
// A reset without the trigger returns to the protocol loop.
func runMaintenance(status indicator) {
	initUSB()
	consoleLog := diag.NewLineLogger(func(line string) {
		machine.Serial.Write([]byte(line))
		machine.Serial.Write([]byte("\r\n"))
	}, diag.LevelInfo)
	consoleLog.Info("maintenance mode", "board", boardName)
	blinkForever(status, patternMaintenance)
}
