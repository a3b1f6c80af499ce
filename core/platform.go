package core

import (
	"runtime"
	"sync/atomic"
)

// Platform exposes the board facilities handlers report on
type Platform interface {
	// HeapFree returns unused heap bytes
	HeapFree() uint64
	// DeviceID returns a stable identifier for this board
	DeviceID() (string, error)
	// Reset restarts the device; on hardware it does not return
	Reset()
}

// MaintenanceFlag is the one-boot maintenance request
type MaintenanceFlag interface {
	// Set requests maintenance mode on the next boot
	Set() error
	// Consume reports whether the flag was set and clears it
	Consume() (bool, error)
}

// RuntimeHeapFree reads the free heap from the Go runtime
func RuntimeHeapFree() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapSys > ms.HeapInuse {
		return ms.HeapSys - ms.HeapInuse
	}
	return 0
}

// ResetLatch records a reset request. The reset runs from the main loop
// once every pending response has been written.
type ResetLatch struct {
	pending uint32 // atomic bool
}

// Request marks a reset as pending
func (r *ResetLatch) Request() {
	atomic.StoreUint32(&r.pending, 1)
}

// Pending reports whether a reset was requested
func (r *ResetLatch) Pending() bool {
	return atomic.LoadUint32(&r.pending) != 0
}

// BootMode selects how the device starts
type BootMode int

const (
	// ModeProtocol runs the transport selector and the session loop
	ModeProtocol BootMode = iota
	// ModeMaintenance leaves the console free for humans
	ModeMaintenance
)

func (m BootMode) String() string {
	if m == ModeMaintenance {
		return "maintenance"
	}
	return "protocol"
}

// DetectBootMode checks the one-boot flag first (consuming it), then the
// maintenance pin. A failing flag store never blocks a production boot.
func DetectBootMode(flag MaintenanceFlag, pinAsserted func() bool) BootMode {
	if flag != nil {
		if set, err := flag.Consume(); err == nil && set {
			return ModeMaintenance
		}
	}
	if pinAsserted != nil && pinAsserted() {
		return ModeMaintenance
	}
	return ModeProtocol
}
