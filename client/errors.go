package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrExtensionNotPresent is returned when the server reports that a
// requested extension is not present, matching breadx's
// BreadError::ExtensionNotPresent.
type ErrExtensionNotPresent struct {
	Extension string
}

func (e *ErrExtensionNotPresent) Error() string {
	return fmt.Sprintf("x11: extension %q is not present on this server", e.Extension)
}

// ErrIO wraps a transport-level read/write failure. Use
// github.com/pkg/errors.Cause (or errors.Unwrap) to recover the
// underlying error.
type ErrIO struct {
	cause error
}

func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	return &ErrIO{cause: errors.WithStack(err)}
}

func (e *ErrIO) Error() string { return fmt.Sprintf("x11: i/o error: %v", e.cause) }
func (e *ErrIO) Unwrap() error { return e.cause }
func (e *ErrIO) Cause() error  { return e.cause }

// ErrBadReply is returned when a reply buffer cannot be decoded as the
// type the caller requested (wrong length, unexpected discriminator).
type ErrBadReply struct {
	cause error
}

func (e *ErrBadReply) Error() string { return fmt.Sprintf("x11: malformed reply: %v", e.cause) }
func (e *ErrBadReply) Unwrap() error { return e.cause }

// ServerError is the typed form of an X11 error reply: a 32-byte frame
// beginning with byte 0 == 0, per spec.md §7.
type ServerError struct {
	Code       uint8
	Sequence   uint64
	ResourceID uint32
	MinorCode  uint16
	MajorCode  uint8
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("x11: server error %d (sequence %d, resource 0x%x, opcode %d.%d)",
		e.Code, e.Sequence, e.ResourceID, e.MajorCode, e.MinorCode)
}

// ErrSuperseded is delivered to a pending entry purged on a
// sequence-gap detection: a reply or error arrived for a later
// sequence number before this one was ever answered, meaning the
// server will never send a direct reply for it (most commonly a void
// request ahead of one that errored).
type ErrSuperseded struct {
	Sequence uint64
}

func (e *ErrSuperseded) Error() string {
	return fmt.Sprintf("x11: sequence %d superseded before any reply arrived for it", e.Sequence)
}

// programmerError panics, matching the Rust implementation's panic!
// calls for state-machine contract violations (polling past
// completion, re-filling an occupied send buffer, dropping a
// half-sent request) — conditions that indicate a bug in the calling
// code, not a runtime failure to recover from.
func programmerError(format string, args ...interface{}) {
	panic(fmt.Sprintf("x11: programmer error: "+format, args...))
}
