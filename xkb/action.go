// Package xkb holds the XKB extension's Action type, kept here as the
// representative example of the discriminated-union codec pattern
// spec.md §4.7 describes: a fixed-size envelope whose first byte
// selects one of several same-size payload shapes.
package xkb

import "github.com/pkg/errors"

// ActionSize is the fixed wire size of every Action variant.
const ActionSize = 8

// ActionType tags which of the 21 Action variants a wire value holds.
type ActionType uint8

const (
	SaTypeNoAction ActionType = iota
	SaTypeSetMods
	SaTypeLatchMods
	SaTypeLockMods
	SaTypeSetGroup
	SaTypeLatchGroup
	SaTypeLockGroup
	SaTypeMovePtr
	SaTypePtrBtn
	SaTypeLockPtrBtn
	SaTypeSetPtrDflt
	SaTypeIsoLock
	SaTypeTerminate
	SaTypeSwitchScreen
	SaTypeSetControls
	SaTypeLockControls
	SaTypeActionMessage
	SaTypeRedirectKey
	SaTypeDeviceBtn
	SaTypeLockDeviceBtn
	SaTypeDeviceValuator
)

// Action is a sealed union over the 21 XKB action shapes. isAction is
// unexported so no type outside this package can satisfy the interface,
// the Go analogue of a Rust enum with private variants.
type Action interface {
	Type() ActionType
	Encode(buf []byte) int
	isAction()
}

// action is embedded by every variant to carry the common 7-byte
// payload and supply Encode/isAction, leaving each variant only to
// report its own ActionType.
type action struct {
	Payload [ActionSize - 1]byte
}

func (a action) Encode(buf []byte, ty ActionType) int {
	buf[0] = byte(ty)
	copy(buf[1:ActionSize], a.Payload[:])
	return ActionSize
}

func (a action) isAction() {}

// NoAction is the null action: it does nothing.
type NoAction struct{ action }

func (a NoAction) Type() ActionType      { return SaTypeNoAction }
func (a NoAction) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeNoAction) }

// SetMods sets modifiers on a key event.
type SetMods struct{ action }

func (a SetMods) Type() ActionType      { return SaTypeSetMods }
func (a SetMods) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeSetMods) }

// LatchMods latches modifiers until the next key event.
type LatchMods struct{ action }

func (a LatchMods) Type() ActionType      { return SaTypeLatchMods }
func (a LatchMods) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeLatchMods) }

// LockMods locks modifiers until explicitly unlocked.
type LockMods struct{ action }

func (a LockMods) Type() ActionType      { return SaTypeLockMods }
func (a LockMods) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeLockMods) }

// SetGroup sets the active keyboard group.
type SetGroup struct{ action }

func (a SetGroup) Type() ActionType      { return SaTypeSetGroup }
func (a SetGroup) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeSetGroup) }

// LatchGroup latches the active keyboard group.
type LatchGroup struct{ action }

func (a LatchGroup) Type() ActionType      { return SaTypeLatchGroup }
func (a LatchGroup) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeLatchGroup) }

// LockGroup locks the active keyboard group.
type LockGroup struct{ action }

func (a LockGroup) Type() ActionType      { return SaTypeLockGroup }
func (a LockGroup) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeLockGroup) }

// MovePtr moves the pointer.
type MovePtr struct{ action }

func (a MovePtr) Type() ActionType      { return SaTypeMovePtr }
func (a MovePtr) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeMovePtr) }

// PtrBtn simulates a pointer button event.
type PtrBtn struct{ action }

func (a PtrBtn) Type() ActionType      { return SaTypePtrBtn }
func (a PtrBtn) Encode(buf []byte) int { return a.action.Encode(buf, SaTypePtrBtn) }

// LockPtrBtn locks a pointer button.
type LockPtrBtn struct{ action }

func (a LockPtrBtn) Type() ActionType      { return SaTypeLockPtrBtn }
func (a LockPtrBtn) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeLockPtrBtn) }

// SetPtrDflt sets the default pointer button/tracking behaviour.
type SetPtrDflt struct{ action }

func (a SetPtrDflt) Type() ActionType      { return SaTypeSetPtrDflt }
func (a SetPtrDflt) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeSetPtrDflt) }

// IsoLock implements ISO Group Lock / Level Lock behaviour.
type IsoLock struct{ action }

func (a IsoLock) Type() ActionType      { return SaTypeIsoLock }
func (a IsoLock) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeIsoLock) }

// Terminate terminates the X server (as configured by the admin).
type Terminate struct{ action }

func (a Terminate) Type() ActionType      { return SaTypeTerminate }
func (a Terminate) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeTerminate) }

// SwitchScreen switches the pointer to another screen.
type SwitchScreen struct{ action }

func (a SwitchScreen) Type() ActionType      { return SaTypeSwitchScreen }
func (a SwitchScreen) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeSwitchScreen) }

// SetControls sets XKB boolean controls.
type SetControls struct{ action }

func (a SetControls) Type() ActionType      { return SaTypeSetControls }
func (a SetControls) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeSetControls) }

// LockControls locks XKB boolean controls.
type LockControls struct{ action }

func (a LockControls) Type() ActionType      { return SaTypeLockControls }
func (a LockControls) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeLockControls) }

// ActionMessage requests an XKB ActionMessage event be sent to clients.
type ActionMessage struct{ action }

func (a ActionMessage) Type() ActionType      { return SaTypeActionMessage }
func (a ActionMessage) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeActionMessage) }

// RedirectKey redirects a key event to another keycode/modifier state.
type RedirectKey struct{ action }

func (a RedirectKey) Type() ActionType      { return SaTypeRedirectKey }
func (a RedirectKey) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeRedirectKey) }

// DeviceBtn simulates a button event on an extension input device.
type DeviceBtn struct{ action }

func (a DeviceBtn) Type() ActionType      { return SaTypeDeviceBtn }
func (a DeviceBtn) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeDeviceBtn) }

// LockDeviceBtn locks a button on an extension input device.
type LockDeviceBtn struct{ action }

func (a LockDeviceBtn) Type() ActionType      { return SaTypeLockDeviceBtn }
func (a LockDeviceBtn) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeLockDeviceBtn) }

// DeviceValuator simulates motion on an extension input device valuator.
type DeviceValuator struct{ action }

func (a DeviceValuator) Type() ActionType      { return SaTypeDeviceValuator }
func (a DeviceValuator) Encode(buf []byte) int { return a.action.Encode(buf, SaTypeDeviceValuator) }

// DecodeAction reads one Action from buf, dispatching on the tag byte.
// It reports an error for any tag outside the 21 known variants rather
// than guessing, matching spec.md §8 scenario 6 ("decode reports an
// error rather than guessing").
func DecodeAction(buf []byte) (Action, int, error) {
	if len(buf) < ActionSize {
		return nil, 0, errors.Errorf("xkb: action buffer too short: want %d bytes, got %d", ActionSize, len(buf))
	}

	var payload [ActionSize - 1]byte
	copy(payload[:], buf[1:ActionSize])
	base := action{Payload: payload}

	switch ActionType(buf[0]) {
	case SaTypeNoAction:
		return NoAction{base}, ActionSize, nil
	case SaTypeSetMods:
		return SetMods{base}, ActionSize, nil
	case SaTypeLatchMods:
		return LatchMods{base}, ActionSize, nil
	case SaTypeLockMods:
		return LockMods{base}, ActionSize, nil
	case SaTypeSetGroup:
		return SetGroup{base}, ActionSize, nil
	case SaTypeLatchGroup:
		return LatchGroup{base}, ActionSize, nil
	case SaTypeLockGroup:
		return LockGroup{base}, ActionSize, nil
	case SaTypeMovePtr:
		return MovePtr{base}, ActionSize, nil
	case SaTypePtrBtn:
		return PtrBtn{base}, ActionSize, nil
	case SaTypeLockPtrBtn:
		return LockPtrBtn{base}, ActionSize, nil
	case SaTypeSetPtrDflt:
		return SetPtrDflt{base}, ActionSize, nil
	case SaTypeIsoLock:
		return IsoLock{base}, ActionSize, nil
	case SaTypeTerminate:
		return Terminate{base}, ActionSize, nil
	case SaTypeSwitchScreen:
		return SwitchScreen{base}, ActionSize, nil
	case SaTypeSetControls:
		return SetControls{base}, ActionSize, nil
	case SaTypeLockControls:
		return LockControls{base}, ActionSize, nil
	case SaTypeActionMessage:
		return ActionMessage{base}, ActionSize, nil
	case SaTypeRedirectKey:
		return RedirectKey{base}, ActionSize, nil
	case SaTypeDeviceBtn:
		return DeviceBtn{base}, ActionSize, nil
	case SaTypeLockDeviceBtn:
		return LockDeviceBtn{base}, ActionSize, nil
	case SaTypeDeviceValuator:
		return DeviceValuator{base}, ActionSize, nil
	default:
		return nil, 0, errors.Errorf("xkb: unknown action type %d", buf[0])
	}
}
