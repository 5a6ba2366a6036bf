// Package proto defines the capability interfaces that tie a generated
// request struct to its reply type and to the wire codec.
package proto

import "github.com/damianoneill/x11/wire"

// Fd is re-exported for generated packages that need to talk about
// ancillary file descriptors without importing wire directly.
type Fd = wire.Fd

// Decodable is anything that can read itself back out of a byte slice
// and an accompanying list of file descriptors, reporting how many
// bytes it consumed. Generated reply, event and error structs implement
// this.
type Decodable interface {
	Decode(buf []byte, fds []Fd) (int, error)
}

// Request is the capability a generated request struct exposes: it can
// encode itself (via wire.Encodable, which every generated request
// type implements) and it names its wire opcode and extension.
//
// The Reply type parameter statically pins the reply type a caller gets
// back from SendRequest, standing in for the "associated reply type"
// spec.md describes — Go has no associated types on interfaces, so a
// generic parameter does the job at compile time instead of at runtime
// via reflection.
type Request[Reply Decodable] interface {
	wire.Encodable

	// Opcode is this request's core or extension-minor opcode.
	Opcode() uint8

	// Extension names the extension this request belongs to, or "" for
	// a core protocol request.
	Extension() string

	// NewReply constructs a zero-value Reply for the caller to decode
	// into. Reply is a pointer to the reply struct (Decode has a pointer
	// receiver), so this is usually just `return &XReply{}`.
	NewReply() Reply
}
