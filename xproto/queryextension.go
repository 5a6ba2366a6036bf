// Package xproto holds hand-authored bindings for the handful of core
// X11 protocol requests the engine's tests and examples exercise
// directly. A full core-protocol binding set is the job of cmd/x11gen
// run against the X11 XML schema; these two files are written in
// exactly the shape that generator would produce.
package xproto

import "github.com/damianoneill/x11/wire"

// QueryExtensionRequest asks the server whether an extension by name is
// present, and if so its major opcode and first event/error codes.
type QueryExtensionRequest struct {
	Name string
}

const queryExtensionOpcode = 98

// Size reports the encoded length: 4-byte header, 2-byte name length,
// 2 bytes unused, then the name itself padded to a 4-byte boundary.
func (r QueryExtensionRequest) Size() int {
	return wire.Pad4(4 + 4 + len(r.Name))
}

// Encode writes the request body. Bytes [0:4) are left for the caller's
// framer to stamp with opcode/length; this method only fills in the
// name-length field and the name payload starting at byte 4.
func (r QueryExtensionRequest) Encode(buf []byte) int {
	n := wire.PutUint16(buf[4:6], uint16(len(r.Name)))
	_ = n
	wire.PutUint16(buf[6:8], 0)
	wire.PutString(buf[8:], r.Name)
	total := 8 + len(r.Name)
	if pad := wire.PadLen(total); pad > 0 {
		wire.ZeroPad(buf[total:total+pad], pad)
		total += pad
	}
	return total
}

// Opcode implements proto.Request.
func (r QueryExtensionRequest) Opcode() uint8 { return queryExtensionOpcode }

// Extension implements proto.Request: QueryExtension is a core request.
func (r QueryExtensionRequest) Extension() string { return "" }

// NewReply implements proto.Request. The reply type parameter is a
// pointer because Decode has a pointer receiver (it mutates fields in
// place).
func (r QueryExtensionRequest) NewReply() *QueryExtensionReply { return &QueryExtensionReply{} }

// QueryExtensionReply reports whether the named extension is present
// and, if so, the opcode and event/error base codes a caller needs to
// interpret that extension's traffic.
type QueryExtensionReply struct {
	Present     bool
	MajorOpcode uint8
	FirstEvent  uint8
	FirstError  uint8
}

// Decode fills r from a 32-byte core reply body. Byte [8] is the
// boolean "present" flag; [9], [10] and [11] carry the three codes, per
// the X11 QUERYEXTENSION reply layout.
func (r *QueryExtensionReply) Decode(buf []byte, fds []wire.Fd) (int, error) {
	if len(buf) < 32 {
		return 0, errShortReply("QueryExtension", 32, len(buf))
	}
	r.Present = buf[8] != 0
	r.MajorOpcode = buf[9]
	r.FirstEvent = buf[10]
	r.FirstError = buf[11]
	return 32, nil
}
