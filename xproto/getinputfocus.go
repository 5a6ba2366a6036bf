package xproto

import "github.com/damianoneill/x11/wire"

// GetInputFocusRequest has no fields: it simply asks the server which
// window currently has input focus.
type GetInputFocusRequest struct{}

const getInputFocusOpcode = 43

// Size is the bare 4-byte request header; GetInputFocus carries no body.
func (r GetInputFocusRequest) Size() int { return 4 }

// Encode writes nothing beyond the zeroed header the framer stamps;
// GetInputFocus has no request-specific fields.
func (r GetInputFocusRequest) Encode(buf []byte) int { return 4 }

// Opcode implements proto.Request.
func (r GetInputFocusRequest) Opcode() uint8 { return getInputFocusOpcode }

// Extension implements proto.Request: GetInputFocus is a core request.
func (r GetInputFocusRequest) Extension() string { return "" }

// NewReply implements proto.Request. The reply type parameter is a
// pointer because Decode has a pointer receiver (it mutates fields in
// place).
func (r GetInputFocusRequest) NewReply() *GetInputFocusReply { return &GetInputFocusReply{} }

// RevertTo describes what happens to focus when the focus window becomes
// unviewable.
type RevertTo uint8

// Window is an X11 resource id naming a window.
type Window uint32

const (
	RevertToNone        RevertTo = 0
	RevertToPointerRoot RevertTo = 1
	RevertToParent      RevertTo = 2
)

// GetInputFocusReply reports the window currently holding input focus.
type GetInputFocusReply struct {
	RevertTo RevertTo
	Focus    Window
}

// Decode fills r from a 32-byte core reply body: byte 1 is the
// RevertTo code, bytes [8:12) the focus window id.
func (r *GetInputFocusReply) Decode(buf []byte, fds []wire.Fd) (int, error) {
	if len(buf) < 32 {
		return 0, errShortReply("GetInputFocus", 32, len(buf))
	}
	r.RevertTo = RevertTo(buf[1])
	r.Focus = Window(wire.GetUint32(buf[8:12]))
	return 32, nil
}
