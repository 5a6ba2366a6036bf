package wire

// Workaround identifies a documented X server bug that the framer and
// receive path must compensate for.
type Workaround uint8

const (
	// NoWorkaround is the common case: no compensation needed.
	NoWorkaround Workaround = iota
	// GlxFbconfigLengthFix doubles the reply length field for the GLX
	// requests affected by the server's FbConfig length arithmetic bug.
	GlxFbconfigLengthFix
)

// Encodable is anything that can serialize itself into a request body.
// Generated request types implement this directly; it is the "write_into"
// half of the Codec capability from spec.md §9.
type Encodable interface {
	Size() int
	Encode(buf []byte) int
}

// EncodeRequest frames body as a complete X11 request: it allocates a
// zero buffer of body.Size() bytes, calls body.Encode, pads to a
// multiple of 4, and stamps in the opcode/extension-opcode and the
// 4-byte-unit length header. extOpcode is nil for core requests.
//
// This mirrors breadx's Display::encode_request byte-for-byte (see
// original_source/src/display/output.rs): byte 0 is the extension major
// opcode when present, else the core opcode; byte 1 is the core opcode
// when an extension is used, else left as whatever the body wrote there
// (the minor opcode); bytes 2-3 are the length in 4-byte units.
func EncodeRequest(body Encodable, opcode uint8, extOpcode *uint8) []byte {
	buf := make([]byte, body.Size())
	n := body.Encode(buf)

	if pad := PadLen(n); pad > 0 {
		buf = append(buf, make([]byte, pad)...)
		n += pad
	}
	buf = buf[:n]

	if extOpcode == nil {
		buf[0] = opcode
	} else {
		buf[0] = *extOpcode
		buf[1] = opcode
	}

	PutUint16(buf[2:4], uint16(n/4))

	return buf
}

// DetectWorkaround reports whether a request about to be framed needs the
// GLX FbConfig length-fix workaround, following spec.md §4.1 exactly:
// GLX opcode 21 (GetFBConfigs) always needs it, and GLX opcode 17
// (VendorPrivate) needs it only when the vendor-private sub-opcode
// embedded at bytes [32:36) of the framed request reads 0x10004.
func DetectWorkaround(extension string, opcode uint8, framed []byte) Workaround {
	if extension != "GLX" {
		return NoWorkaround
	}
	switch opcode {
	case 21:
		return GlxFbconfigLengthFix
	case 17:
		if len(framed) >= 36 && GetUint32(framed[32:36]) == 0x10004 {
			return GlxFbconfigLengthFix
		}
	}
	return NoWorkaround
}

// AdditionalBytes computes how many bytes beyond the initial 32-byte
// fragment a reply or GenericEvent requires, given its first 8 bytes.
// Byte 0 distinguishes error (0, never extended)/reply (1)/event (>=2);
// only replies (and extension-tagged generic events, which this package
// does not need to special-case beyond the reply path) carry a non-zero
// length field at bytes [4:8). Under the GLX workaround the length field
// is doubled before being multiplied by 4, per spec.md §4.1/§8 scenario 4.
const genericEventCode = 35

func AdditionalBytes(first8 []byte, w Workaround) int {
	if first8[0] != 1 && first8[0] != genericEventCode {
		// Errors are always exactly 32 bytes; ordinary core events too.
		return 0
	}
	length := GetUint32(first8[4:8])
	if w == GlxFbconfigLengthFix {
		length *= 2
	}
	return int(length) * 4
}
