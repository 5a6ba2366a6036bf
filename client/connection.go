package client

import "github.com/damianoneill/x11/wire"

// Connection is the duplex byte stream an engine drives: a Unix-domain
// socket, a TCP socket, or an SSH-forwarded channel. It generalises
// damianoneill-net/v2/netconf/client.Transport (itself an
// io.ReadWriteCloser) to also carry ancillary file descriptors, since
// X11 passes file descriptors out of band for some extensions
// (spec.md §6).
type Connection interface {
	// ReadPacket reads up to len(buf) bytes into buf, along with any
	// file descriptors that arrived alongside them, returning the
	// number of bytes read. It blocks until at least one byte is
	// available or an error occurs.
	ReadPacket(buf []byte) (n int, fds []wire.Fd, err error)

	// WritePacket writes buf, and the given file descriptors, to the
	// connection, returning the number of bytes of buf written. A
	// short write is legal; the caller resumes with the remainder.
	WritePacket(buf []byte, fds []wire.Fd) (n int, err error)

	// Close releases the underlying transport.
	Close() error
}
