package core

import (
	"framelink/diag"
	"framelink/protocol"
)

// Dispatcher routes decoded messages to registered handlers and always
// produces a response
type Dispatcher struct {
	registry *CommandRegistry
	log      diag.Logger
}

// NewDispatcher creates a dispatcher over a frozen registry
func NewDispatcher(registry *CommandRegistry, log diag.Logger) *Dispatcher {
	if log == nil {
		log = diag.Nop()
	}
	registry.Freeze()
	return &Dispatcher{registry: registry, log: log}
}

// Dispatch invokes the handler for msg.Type and builds the response
func (d *Dispatcher) Dispatch(msg *protocol.Message) protocol.Response {
	cmd, ok := d.registry.Lookup(msg.Type)
	if !ok {
		d.log.Debug("unknown command", "type", msg.Type)
		return Report(&UnknownCommandError{Name: msg.Type})
	}

	fields, err := invoke(cmd, msg)
	if err != nil {
		d.log.Debug("command failed", "type", msg.Type, "error", err)
		return Report(err)
	}
	return protocol.Success(cmd.Result, fields)
}

// invoke calls the handler, turning a panic into a fault
func invoke(cmd *Command, msg *protocol.Message) (fields protocol.Fields, err error) {
	defer func() {
		if r := recover(); r != nil {
			fields = nil
			err = &HandlerPanicError{Command: cmd.Name, Value: r}
		}
	}()
	return cmd.Handler(msg)
}
