package core

import (
	"framelink/diag"
	"framelink/transport"
)

// Stats counts protocol traffic for the current session
type Stats struct {
	FramesIn  uint32 // Request frames received
	FramesOut uint32 // Response frames written
	Faults    uint32 // Error responses written
}

// Device is the boot-time context handed to the session and handlers.
// It is created once after the transport has been bound.
type Device struct {
	Config      Config
	Transport   transport.Transport
	Clock       *Clock
	Platform    Platform
	Maintenance MaintenanceFlag
	Stats       *Stats
	Reset       *ResetLatch
	Log         diag.Logger
}

// NewDevice assembles the device context
func NewDevice(cfg Config, t transport.Transport, platform Platform, log diag.Logger) *Device {
	if log == nil {
		log = diag.Nop()
	}
	return &Device{
		Config:    cfg,
		Transport: t,
		Clock:     NewClock(),
		Platform:  platform,
		Stats:     &Stats{},
		Reset:     &ResetLatch{},
		Log:       log,
	}
}
