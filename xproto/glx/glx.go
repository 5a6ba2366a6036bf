// Package glx holds the two GLX extension requests affected by the
// server's FbConfig reply-length arithmetic bug: VendorPrivate and
// GetFBConfigs. They exist in this module chiefly so the wire framer's
// workaround detection (wire.DetectWorkaround) has real requests to
// exercise end to end.
package glx

import "github.com/damianoneill/x11/wire"

// ExtensionName is the wire name GLX registers under, used by the
// extension registry and by wire.DetectWorkaround.
const ExtensionName = "GLX"

// VendorPrivateOpcode is GLX's VendorPrivate minor opcode. Only the
// vendor-private code 0x10004 (ImportContextEXT) triggers the
// length-doubling workaround; other vendor-private codes do not.
const VendorPrivateOpcode = 17

// GetFBConfigsOpcode is GLX's GetFBConfigs minor opcode. Every call
// triggers the length-doubling workaround.
const GetFBConfigsOpcode = 21

// VendorPrivateCodeImportContextEXT is the only vendor-private
// sub-opcode that needs the FbConfig length workaround.
const VendorPrivateCodeImportContextEXT = 0x10004

// VendorPrivateRequest issues an arbitrary GLX vendor-private command,
// identified by its 32-bit vendor code, against a GLX rendering
// context. Data carries whatever vendor-specific payload the command
// needs beyond the fixed 12-byte header; for ImportContextEXT that
// payload is where the client's length-doubling workaround looks for
// the sub-code, at wire offset 32 (see NewImportContextEXTRequest).
type VendorPrivateRequest struct {
	VendorCode uint32
	ContextTag uint32
	Data       []byte
}

// NewImportContextEXTRequest builds the VendorPrivateRequest
// glXImportContextEXT issues: it repeats the vendor code 20 bytes into
// Data, which lands at wire offset 32 (12-byte header + 20) once
// framed — exactly where wire.DetectWorkaround looks for it.
func NewImportContextEXTRequest(contextTag uint32) VendorPrivateRequest {
	data := make([]byte, 24)
	wire.PutUint32(data[20:24], VendorPrivateCodeImportContextEXT)
	return VendorPrivateRequest{
		VendorCode: VendorPrivateCodeImportContextEXT,
		ContextTag: contextTag,
		Data:       data,
	}
}

// Size reports the encoded length: the 12-byte fixed header plus
// whatever vendor-specific payload Data carries.
func (r VendorPrivateRequest) Size() int { return 12 + len(r.Data) }

// Encode writes the vendor code at byte 4, the context tag at byte 8,
// and copies Data starting at byte 12 — the offset at which
// wire.DetectWorkaround's byte-32 check actually lands for a real
// submission, unlike a bare 12-byte request with no payload.
func (r VendorPrivateRequest) Encode(buf []byte) int {
	wire.PutUint32(buf[4:8], r.VendorCode)
	wire.PutUint32(buf[8:12], r.ContextTag)
	copy(buf[12:], r.Data)
	return 12 + len(r.Data)
}

// Opcode implements proto.Request.
func (r VendorPrivateRequest) Opcode() uint8 { return VendorPrivateOpcode }

// Extension implements proto.Request.
func (r VendorPrivateRequest) Extension() string { return ExtensionName }

// NewReply implements proto.Request.
func (r VendorPrivateRequest) NewReply() *VendorPrivateReply { return &VendorPrivateReply{} }

// VendorPrivateReply carries whatever opaque payload the vendor-private
// command produced: a fixed 32-bit return value, plus Data, whatever
// trailing bytes followed it (present only for vendor codes that
// return more than the fixed reply, such as ImportContextEXT).
type VendorPrivateReply struct {
	RetVal uint32
	Data   []byte
}

// Decode reads the 32-bit return value at byte 8 of the fixed reply
// and copies whatever trailing bytes AdditionalBytes determined the
// frame carries into Data. The GLX length-doubling workaround is what
// makes that trailing count correct for a server affected by the bug.
func (r *VendorPrivateReply) Decode(buf []byte, fds []wire.Fd) (int, error) {
	if len(buf) < 32 {
		return 0, errShort("GLX VendorPrivate", 32, len(buf))
	}
	r.RetVal = wire.GetUint32(buf[8:12])
	if len(buf) > 32 {
		r.Data = append([]byte(nil), buf[32:]...)
	}
	return len(buf), nil
}

// GetFBConfigsRequest asks the server for the list of GLX framebuffer
// configurations available on a screen.
type GetFBConfigsRequest struct {
	Screen uint32
}

// Size reports the encoded length: 4-byte header plus the screen id.
func (r GetFBConfigsRequest) Size() int { return 8 }

// Encode writes the screen id at byte 4.
func (r GetFBConfigsRequest) Encode(buf []byte) int {
	wire.PutUint32(buf[4:8], r.Screen)
	return 8
}

// Opcode implements proto.Request.
func (r GetFBConfigsRequest) Opcode() uint8 { return GetFBConfigsOpcode }

// Extension implements proto.Request.
func (r GetFBConfigsRequest) Extension() string { return ExtensionName }

// NewReply implements proto.Request.
func (r GetFBConfigsRequest) NewReply() *GetFBConfigsReply { return &GetFBConfigsReply{} }

// GetFBConfigsReply reports the number of framebuffer configs and the
// number of 32-bit properties describing each; the server's reply
// length field for this request is, per the documented bug, half the
// length of the data that actually follows, which is exactly what
// wire.DetectWorkaround / wire.AdditionalBytes compensate for by
// doubling it.
type GetFBConfigsReply struct {
	NumFBConfigs  uint32
	NumProperties uint32
}

// Decode reads the two 32-bit counts at bytes [8:12) and [12:16).
func (r *GetFBConfigsReply) Decode(buf []byte, fds []wire.Fd) (int, error) {
	if len(buf) < 32 {
		return 0, errShort("GLX GetFBConfigs", 32, len(buf))
	}
	r.NumFBConfigs = wire.GetUint32(buf[8:12])
	r.NumProperties = wire.GetUint32(buf[12:16])
	return 32, nil
}
