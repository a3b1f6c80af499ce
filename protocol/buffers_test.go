package protocol

import "testing"

func TestRxBuffer(t *testing.T) {
	buf := NewRxBuffer(8)

	if buf.Available() != 0 {
		t.Errorf("Empty buffer should have 0 available, got %d", buf.Available())
	}

	written := buf.Write([]byte{1, 2, 3, 4, 5})
	if written != 5 {
		t.Errorf("Expected to write 5 bytes, wrote %d", written)
	}

	buf.Pop(2)
	if buf.Available() != 3 {
		t.Errorf("After popping 2, expected 3 bytes available, got %d", buf.Available())
	}

	data := buf.Data()
	if len(data) != 3 || data[0] != 3 {
		t.Errorf("After popping 2, expected first byte to be 3, got %v", data)
	}

	// Space compacts unread bytes to the front
	space := buf.Space()
	if len(space) != 5 {
		t.Errorf("Expected 5 bytes of space after compaction, got %d", len(space))
	}
	if got := buf.Data(); got[0] != 3 || got[2] != 5 {
		t.Errorf("Compaction moved wrong bytes: %v", got)
	}

	// Writes beyond capacity are truncated
	written = buf.Write([]byte{6, 7, 8, 9, 10, 11})
	if written != 5 {
		t.Errorf("Expected to write 5 bytes into full buffer, wrote %d", written)
	}
	if buf.Available() != buf.Cap() {
		t.Errorf("Expected full buffer, got %d/%d", buf.Available(), buf.Cap())
	}

	buf.Pop(100)
	if buf.Available() != 0 {
		t.Errorf("Pop past end should empty buffer, got %d", buf.Available())
	}

	buf.Write([]byte{1})
	buf.Reset()
	if buf.Available() != 0 || len(buf.Space()) != 8 {
		t.Errorf("After reset, expected empty buffer with full space")
	}
}

func TestRxBufferCommit(t *testing.T) {
	buf := NewRxBuffer(4)

	space := buf.Space()
	copy(space, []byte{9, 8})
	buf.Commit(2)

	if buf.Available() != 2 || buf.Data()[1] != 8 {
		t.Errorf("Commit did not expose bytes: %v", buf.Data())
	}

	buf.Commit(10)
	if buf.Available() != 4 {
		t.Errorf("Commit past capacity should clamp, got %d", buf.Available())
	}

	buf.Commit(-1)
	if buf.Available() != 4 {
		t.Errorf("Negative commit should be ignored, got %d", buf.Available())
	}
}
