// Package wire implements the X11 byte-level codec: fixed-width integer
// and list primitives, request framing and reply-length arithmetic.
package wire

import "encoding/binary"

// Fd is an open file descriptor carried alongside a request or reply,
// out of band, on transports that support ancillary data.
type Fd = int

// Codec describes the full size/encode/decode capability of a wire
// value. No type in this module implements it as a whole: request types
// implement its Size/Encode half (Encodable), reply, event and error
// types decode through proto.Decodable, and the functions below are
// free-standing scalar helpers.
type Codec interface {
	// Size reports the number of bytes Encode will write.
	Size() int
	// Encode writes this value into buf, returning the number of bytes
	// written. buf must be at least Size() bytes long.
	Encode(buf []byte) int
	// Decode reads a value from buf, returning the value and the number
	// of bytes consumed. It reports an error if buf is structurally
	// invalid for this type (wrong length, unknown discriminator, ...).
	Decode(buf []byte) (int, error)
}

// PutUint8 writes v to buf[0] and returns 1.
func PutUint8(buf []byte, v uint8) int {
	buf[0] = v
	return 1
}

// PutUint16 writes v to buf[0:2] in wire (native little-endian) order and returns 2.
func PutUint16(buf []byte, v uint16) int {
	binary.LittleEndian.PutUint16(buf, v)
	return 2
}

// PutUint32 writes v to buf[0:4] in wire order and returns 4.
func PutUint32(buf []byte, v uint32) int {
	binary.LittleEndian.PutUint32(buf, v)
	return 4
}

// GetUint8 reads a byte from buf.
func GetUint8(buf []byte) uint8 { return buf[0] }

// GetUint16 reads a little-endian uint16 from buf.
func GetUint16(buf []byte) uint16 { return binary.LittleEndian.Uint16(buf) }

// GetUint32 reads a little-endian uint32 from buf.
func GetUint32(buf []byte) uint32 { return binary.LittleEndian.Uint32(buf) }

// PutBool writes v as a single 0/1 byte and returns 1.
func PutBool(buf []byte, v bool) int {
	if v {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	return 1
}

// GetBool reads a single byte as a boolean: zero is false, anything
// else is true (the X11 wire format never actually sends a value
// other than 0 or 1 for a BOOL field).
func GetBool(buf []byte) bool { return buf[0] != 0 }

// PadLen returns the number of zero bytes needed to round n up to a
// multiple of 4, the alignment X11 requires of every request and reply.
func PadLen(n int) int {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}

// Pad4 rounds n up to the next multiple of 4.
func Pad4(n int) int { return n + PadLen(n) }

// PutString writes s verbatim (no length prefix; callers that need a
// length-prefixed string write the length themselves first, per the X11
// schema convention of separate STRING8 length fields).
func PutString(buf []byte, s string) int {
	return copy(buf, s)
}

// ZeroPad zeroes n bytes of buf starting at offset 0, for use when
// padding a request/reply tail.
func ZeroPad(buf []byte, n int) {
	b := buf[:n]
	for i := range b {
		b[i] = 0
	}
}
