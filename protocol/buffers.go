package protocol

// RxBuffer is a fixed-capacity receive buffer.
// Transports read straight into Space(); Commit makes the bytes visible.
// Consumed bytes are compacted in place so the backing array is never reallocated.
type RxBuffer struct {
	buf   []byte
	start int
	end   int
}

// NewRxBuffer creates a receive buffer with the given capacity
func NewRxBuffer(capacity int) *RxBuffer {
	return &RxBuffer{buf: make([]byte, capacity)}
}

// Data returns the unread bytes. The slice is only valid until the next Space call.
func (b *RxBuffer) Data() []byte {
	return b.buf[b.start:b.end]
}

// Available returns the number of unread bytes
func (b *RxBuffer) Available() int {
	return b.end - b.start
}

// Pop removes n bytes from the front
func (b *RxBuffer) Pop(n int) {
	if n > b.Available() {
		n = b.Available()
	}
	b.start += n
	if b.start == b.end {
		b.start = 0
		b.end = 0
	}
}

// Space returns the writable tail of the buffer, compacting unread bytes to the front first
func (b *RxBuffer) Space() []byte {
	if b.start > 0 {
		copy(b.buf, b.buf[b.start:b.end])
		b.end -= b.start
		b.start = 0
	}
	return b.buf[b.end:]
}

// Commit marks n bytes written into the slice returned by Space as received
func (b *RxBuffer) Commit(n int) {
	if n < 0 {
		return
	}
	if b.end+n > len(b.buf) {
		n = len(b.buf) - b.end
	}
	b.end += n
}

// Write copies data into the buffer and returns the number of bytes accepted
func (b *RxBuffer) Write(data []byte) int {
	n := copy(b.Space(), data)
	b.Commit(n)
	return n
}

// Cap returns the buffer capacity
func (b *RxBuffer) Cap() int {
	return len(b.buf)
}

// Reset clears the buffer
func (b *RxBuffer) Reset() {
	b.start = 0
	b.end = 0
}
