package core

import (
	"framelink/protocol"
)

// Built-in command names and their response types
const (
	CmdPing             = "ping"
	CmdGetStatus        = "get_status"
	CmdEcho             = "echo"
	CmdIdentify         = "identify"
	CmdListCommands     = "list_commands"
	CmdEnterMaintenance = "enter_maintenance"

	ResultPong        = "pong"
	ResultStatus      = "status"
	ResultEcho        = "echo"
	ResultIdentity    = "identity"
	ResultCommands    = "commands"
	ResultMaintenance = "maintenance"
)

// RegisterBuiltins registers the core protocol commands
func RegisterBuiltins(r *CommandRegistry, dev *Device) error {
	builtins := []Command{
		{CmdPing, ResultPong, handlePing(dev)},
		{CmdGetStatus, ResultStatus, handleGetStatus(dev)},
		{CmdEcho, ResultEcho, handleEcho},
		{CmdIdentify, ResultIdentity, handleIdentify(dev)},
		{CmdListCommands, ResultCommands, handleListCommands(r)},
	}
	if dev.Maintenance != nil {
		builtins = append(builtins, Command{CmdEnterMaintenance, ResultMaintenance, handleEnterMaintenance(dev)})
	}

	for _, cmd := range builtins {
		if err := r.Register(cmd.Name, cmd.Result, cmd.Handler); err != nil {
			return err
		}
	}
	return nil
}

// NewBuiltinRegistry returns a registry holding the built-in commands
func NewBuiltinRegistry(dev *Device) (*CommandRegistry, error) {
	r := NewCommandRegistry()
	if err := RegisterBuiltins(r, dev); err != nil {
		return nil, err
	}
	return r, nil
}

// handlePing answers with the boot-relative timestamp and firmware version
func handlePing(dev *Device) CommandHandler {
	return func(msg *protocol.Message) (protocol.Fields, error) {
		return protocol.Fields{
			"ts":      dev.Clock.UptimeMillis(),
			"version": dev.Config.Version,
		}, nil
	}
}

// handleGetStatus reports uptime, free heap and link counters
func handleGetStatus(dev *Device) CommandHandler {
	return func(msg *protocol.Message) (protocol.Fields, error) {
		fields := protocol.Fields{
			"uptime_ms":  dev.Clock.UptimeMillis(),
			"heap_free":  heapFree(dev),
			"version":    dev.Config.Version,
			"frames_in":  dev.Stats.FramesIn,
			"frames_out": dev.Stats.FramesOut,
			"faults":     dev.Stats.Faults,
		}
		if dev.Transport != nil {
			fields["transport"] = dev.Transport.Name()
		}
		return fields, nil
	}
}

// heapFree asks the platform, reading runtime stats only without one
func heapFree(dev *Device) uint64 {
	if dev.Platform != nil {
		return dev.Platform.HeapFree()
	}
	return RuntimeHeapFree()
}

// handleEcho returns data verbatim
func handleEcho(msg *protocol.Message) (protocol.Fields, error) {
	data, err := msg.Require("data")
	if err != nil {
		return nil, err
	}
	return protocol.Fields{"data": data}, nil
}

func handleIdentify(dev *Device) CommandHandler {
	return func(msg *protocol.Message) (protocol.Fields, error) {
		fields := protocol.Fields{
			"board":   dev.Config.Board,
			"version": dev.Config.Version,
		}
		if dev.Platform != nil {
			id, err := dev.Platform.DeviceID()
			if err != nil {
				return nil, err
			}
			fields["device_id"] = id
		}
		return fields, nil
	}
}

func handleListCommands(r *CommandRegistry) CommandHandler {
	return func(msg *protocol.Message) (protocol.Fields, error) {
		return protocol.Fields{"commands": r.Names()}, nil
	}
}

// handleEnterMaintenance sets the one-boot flag and schedules a reset.
// The reset runs after this response has been written.
func handleEnterMaintenance(dev *Device) CommandHandler {
	return func(msg *protocol.Message) (protocol.Fields, error) {
		if err := dev.Maintenance.Set(); err != nil {
			return nil, err
		}
		dev.Reset.Request()
		dev.Log.Info("maintenance requested, resetting")
		return protocol.Fields{"reboot": true}, nil
	}
}
