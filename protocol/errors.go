package protocol

// ErrorCode is the machine-readable code carried by error responses
type ErrorCode string

// Error codes
const (
	CodeUnknownCommand ErrorCode = "UNKNOWN_CMD"
	CodeMissingField   ErrorCode = "MISSING_FIELD"
	CodeInvalidField   ErrorCode = "INVALID_FIELD"
	CodeDecodeError    ErrorCode = "DECODE_ERROR"
	CodeInternalError  ErrorCode = "INTERNAL_ERROR"
)

// Coder is implemented by faults that map to a specific error code
type Coder interface {
	error
	Code() ErrorCode
}

// Fault is a recoverable per-request failure answered with an error response
type Fault struct {
	ErrCode ErrorCode
	Field   string // Offending field, if any
	Reason  string
	Detail  string
}

func (f *Fault) Error() string {
	msg := f.Reason
	if f.Field != "" {
		msg += " `" + f.Field + "`"
	}
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	return msg
}

// Code implements Coder
func (f *Fault) Code() ErrorCode {
	return f.ErrCode
}

// MissingField reports a required field that was not supplied
func MissingField(name string) *Fault {
	return &Fault{ErrCode: CodeMissingField, Field: name, Reason: "missing required field"}
}

// InvalidField reports a field whose value has the wrong shape
func InvalidField(name, detail string) *Fault {
	return &Fault{ErrCode: CodeInvalidField, Field: name, Reason: "invalid field", Detail: detail}
}

// DecodeError reports a payload that could not be turned into a Message
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Code implements Coder
func (e *DecodeError) Code() ErrorCode {
	return CodeDecodeError
}
