// Package protocol implements the framelink wire protocol: 4-byte big-endian
// length-prefixed frames carrying one UTF-8 JSON object each.
package protocol

// Version is the firmware version reported by ping, get_status and identify.
const Version = "0.1.0"

// Framing constants
const (
	HeaderSize = 4 // Big-endian uint32 payload length

	// RecommendedPayload is the documented ceiling for typical messages.
	// Larger payloads are accepted up to the configured maximum.
	RecommendedPayload = 1024

	// DefaultMaxPayload is the sanity ceiling applied to declared lengths.
	DefaultMaxPayload = 4096
)
