package protocol

import (
	"encoding/binary"
	"errors"
	"strconv"
)

// ErrIncomplete is returned by Decoder.Next when more bytes are needed
var ErrIncomplete = errors.New("protocol: incomplete frame")

// FrameTooLargeError reports a header declaring more than the configured maximum.
// The decoder discards the declared payload as it arrives and resumes at the next header.
type FrameTooLargeError struct {
	Length uint32
	Limit  int
}

func (e *FrameTooLargeError) Error() string {
	return "frame length " + strconv.FormatUint(uint64(e.Length), 10) +
		" exceeds limit " + strconv.Itoa(e.Limit)
}

// Code implements Coder
func (e *FrameTooLargeError) Code() ErrorCode {
	return CodeDecodeError
}

// Decoder extracts length-prefixed frames from a byte stream.
// Frames may arrive split across any number of reads, or several per read.
type Decoder struct {
	rx         *RxBuffer
	maxPayload int
	skip       uint64 // payload bytes of a rejected frame still to discard
}

// NewDecoder creates a decoder accepting payloads up to maxPayload bytes.
// The receive buffer is sized once to hold one maximal frame.
func NewDecoder(maxPayload int) *Decoder {
	if maxPayload <= 0 {
		maxPayload = DefaultMaxPayload
	}
	return &Decoder{
		rx:         NewRxBuffer(HeaderSize + maxPayload),
		maxPayload: maxPayload,
	}
}

// MaxPayload returns the payload ceiling
func (d *Decoder) MaxPayload() int {
	return d.maxPayload
}

// Space returns the slice the next read should fill.
// Payloads previously returned by Next are invalidated.
func (d *Decoder) Space() []byte {
	return d.rx.Space()
}

// Commit accepts n bytes read into the slice returned by Space
func (d *Decoder) Commit(n int) {
	d.rx.Commit(n)
	d.discard()
}

// Feed copies p into the decoder and returns how many bytes were accepted.
// Fewer than len(p) bytes are accepted only when the buffer holds frames that
// have not been drained with Next.
func (d *Decoder) Feed(p []byte) int {
	accepted := 0
	for len(p) > 0 {
		space := d.Space()
		if len(space) == 0 {
			break
		}
		n := copy(space, p)
		d.Commit(n)
		p = p[n:]
		accepted += n
	}
	return accepted
}

// Next returns the payload of the next complete frame.
// The returned slice aliases the receive buffer and is valid until the next
// Space, Commit or Feed call.
func (d *Decoder) Next() ([]byte, error) {
	d.discard()
	if d.skip > 0 {
		return nil, ErrIncomplete
	}

	data := d.rx.Data()
	if len(data) < HeaderSize {
		return nil, ErrIncomplete
	}

	n := binary.BigEndian.Uint32(data)
	if uint64(n) > uint64(d.maxPayload) {
		d.rx.Pop(HeaderSize)
		d.skip = uint64(n)
		d.discard()
		return nil, &FrameTooLargeError{Length: n, Limit: d.maxPayload}
	}

	total := HeaderSize + int(n)
	if len(data) < total {
		return nil, ErrIncomplete
	}

	payload := data[HeaderSize:total]
	d.rx.Pop(total)
	return payload, nil
}

// Buffered returns the number of bytes held for the frame in progress
func (d *Decoder) Buffered() int {
	return d.rx.Available()
}

// Skipping reports whether a rejected frame is still being discarded
func (d *Decoder) Skipping() bool {
	return d.skip > 0
}

// Reset drops all buffered bytes and any pending discard
func (d *Decoder) Reset() {
	d.rx.Reset()
	d.skip = 0
}

// discard drops bytes belonging to a rejected frame
func (d *Decoder) discard() {
	if d.skip == 0 {
		return
	}
	avail := uint64(d.rx.Available())
	if avail == 0 {
		return
	}
	n := d.skip
	if n > avail {
		n = avail
	}
	d.rx.Pop(int(n))
	d.skip -= n
}
