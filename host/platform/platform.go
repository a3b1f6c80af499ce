// Package platform provides the desktop stand-ins for board facilities.
package platform

import (
	"os"
	"sync/atomic"

	"github.com/denisbrodbeck/machineid"
	"github.com/pkg/errors"

	"framelink/core"
)

// appID salts the machine id so the raw id never leaves the host
const appID = "framelink"

// Desktop implements core.Platform on a workstation
type Desktop struct {
	boots   atomic.Uint32
	OnReset func()
}

var _ core.Platform = (*Desktop)(nil)

// HeapFree reports free heap from the Go runtime
func (d *Desktop) HeapFree() uint64 {
	return core.RuntimeHeapFree()
}

// DeviceID returns an application-specific hash of the machine id
func (d *Desktop) DeviceID() (string, error) {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return "", errors.Wrap(err, "machine id")
	}
	return id, nil
}

// Reset counts the simulated reset; the runner re-runs boot afterwards
func (d *Desktop) Reset() {
	d.boots.Add(1)
	if d.OnReset != nil {
		d.OnReset()
	}
}

// Resets returns how many resets have been simulated
func (d *Desktop) Resets() uint32 {
	return d.boots.Load()
}

// FileFlag keeps the one-boot maintenance flag as a marker file
type FileFlag struct {
	Path string
}

var _ core.MaintenanceFlag = FileFlag{}

// Set creates the marker file
func (f FileFlag) Set() error {
	if f.Path == "" {
		return errors.New("maintenance flag path not configured")
	}
	file, err := os.Create(f.Path)
	if err != nil {
		return errors.Wrap(err, "set maintenance flag")
	}
	return file.Close()
}

// Consume removes the marker file and reports whether it existed
func (f FileFlag) Consume() (bool, error) {
	if f.Path == "" {
		return false, nil
	}
	err := os.Remove(f.Path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "consume maintenance flag")
	}
}
