package protocol

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
)

// Encoder serializes values to JSON and frames them.
// The frame buffer is reused across calls.
type Encoder struct {
	buf bytes.Buffer
	enc *json.Encoder
}

// NewEncoder creates a new Encoder
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.buf.Grow(HeaderSize + RecommendedPayload)
	e.enc = json.NewEncoder(&e.buf)
	e.enc.SetEscapeHTML(false)
	return e
}

// Encode returns one complete frame (header and payload) for v.
// The result is valid until the next Encode call.
func (e *Encoder) Encode(v any) ([]byte, error) {
	e.buf.Reset()
	e.buf.Write([]byte{0, 0, 0, 0})

	if err := e.enc.Encode(v); err != nil {
		return nil, err
	}

	frame := e.buf.Bytes()
	// json.Encoder terminates each value with a newline
	if n := len(frame); n > HeaderSize && frame[n-1] == '\n' {
		frame = frame[:n-1]
	}
	binary.BigEndian.PutUint32(frame, uint32(len(frame)-HeaderSize))
	return frame, nil
}

// AppendFrame appends the header and payload to dst
func AppendFrame(dst, payload []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}
