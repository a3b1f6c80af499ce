package core

import (
	"errors"

	"framelink/protocol"
)

// UnknownCommandError reports a type with no registered handler
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command `" + e.Name + "`"
}

// Code implements protocol.Coder
func (e *UnknownCommandError) Code() protocol.ErrorCode {
	return protocol.CodeUnknownCommand
}

// HandlerPanicError reports a handler that panicked
type HandlerPanicError struct {
	Command string
	Value   any
}

func (e *HandlerPanicError) Error() string {
	msg := "command `" + e.Command + "` faulted"
	switch v := e.Value.(type) {
	case string:
		msg += ": " + v
	case error:
		msg += ": " + v.Error()
	}
	return msg
}

// Code implements protocol.Coder
func (e *HandlerPanicError) Code() protocol.ErrorCode {
	return protocol.CodeInternalError
}

// Report converts a decode or dispatch fault into an error response.
// Faults that carry a code keep it; anything else is an internal error.
func Report(err error) protocol.Response {
	if err == nil {
		return protocol.Failure(protocol.CodeInternalError, "internal error")
	}

	var c protocol.Coder
	if errors.As(err, &c) {
		return protocol.Failure(c.Code(), err.Error())
	}
	return protocol.Failure(protocol.CodeInternalError, "internal error: "+err.Error())
}
