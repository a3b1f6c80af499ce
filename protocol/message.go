package protocol

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// Field names with protocol-wide meaning
const (
	FieldType    = "type"
	FieldCode    = "code"
	FieldMessage = "message"
)

// TypeError is the response type of every error response
const TypeError = "error"

// Message is a decoded request. Fields other than type are kept as raw JSON
// so handlers decode only what they need and can echo values verbatim.
type Message struct {
	Type   string
	Fields map[string]json.RawMessage
}

// Field returns the raw JSON of a field
func (m *Message) Field(name string) (json.RawMessage, bool) {
	v, ok := m.Fields[name]
	return v, ok
}

// Require returns the raw JSON of a required field, or a MISSING_FIELD fault
func (m *Message) Require(name string) (json.RawMessage, error) {
	v, ok := m.Fields[name]
	if !ok {
		return nil, MissingField(name)
	}
	return v, nil
}

// ParseMessage decodes a frame payload into a Message
func ParseMessage(payload []byte) (*Message, error) {
	if !utf8.Valid(payload) {
		return nil, &DecodeError{Reason: "payload is not valid UTF-8"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, &DecodeError{Reason: "payload is not a JSON object", Err: err}
	}
	if fields == nil {
		return nil, &DecodeError{Reason: "payload is not a JSON object"}
	}

	raw, ok := fields[FieldType]
	if !ok {
		return nil, MissingField(FieldType)
	}
	var typ string
	if err := json.Unmarshal(raw, &typ); err != nil {
		return nil, InvalidField(FieldType, "expected a string")
	}
	delete(fields, FieldType)

	return &Message{Type: typ, Fields: fields}, nil
}

// Fields holds the result fields of a response
type Fields map[string]any

// Response is a reply frame's JSON object
type Response struct {
	Type   string
	Fields Fields
}

// MarshalJSON flattens the response into one object; type always wins
func (r Response) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		obj[k] = v
	}
	obj[FieldType] = r.Type

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Success builds a success response
func Success(typ string, fields Fields) Response {
	return Response{Type: typ, Fields: fields}
}

// Failure builds an error response
func Failure(code ErrorCode, message string) Response {
	return Response{
		Type: TypeError,
		Fields: Fields{
			FieldCode:    string(code),
			FieldMessage: message,
		},
	}
}

// IsError reports whether the response is an error response
func (r Response) IsError() bool {
	return r.Type == TypeError
}
