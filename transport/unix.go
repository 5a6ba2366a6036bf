// Package transport implements client.Connection over the concrete
// byte streams an X11 client actually dials: a Unix-domain socket, a
// TCP socket, or an SSH-forwarded channel.
package transport

import (
	"net"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/damianoneill/x11/wire"
)

// unixConn adapts a *net.UnixConn to client.Connection, carrying
// ancillary file descriptors via SCM_RIGHTS control messages the way
// the X server sends them for SHM segments and DRI3 buffers.
type unixConn struct {
	conn *net.UnixConn
}

// DialUnix connects to the X server listening on a Unix-domain socket
// at path (typically /tmp/.X11-unix/X<display>).
func DialUnix(path string) (*unixConn, error) {
	addr := &net.UnixAddr{Name: path, Net: "unix"}
	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: dialing unix socket %s", path)
	}
	return &unixConn{conn: conn}, nil
}

func (u *unixConn) ReadPacket(buf []byte) (n int, fds []wire.Fd, err error) {
	oob := make([]byte, unix.CmsgSpace(64*4)) // room for a handful of fds
	n, oobn, _, _, err := u.conn.ReadMsgUnix(buf, oob)
	if err != nil {
		return n, nil, errors.Wrap(err, "transport: reading unix socket")
	}
	if oobn > 0 {
		fds, err = parseRightsFds(oob[:oobn])
		if err != nil {
			return n, nil, err
		}
	}
	return n, fds, nil
}

func (u *unixConn) WritePacket(buf []byte, fds []wire.Fd) (n int, err error) {
	var oob []byte
	if len(fds) > 0 {
		oob = unix.UnixRights(fds...)
	}
	n, _, err = u.conn.WriteMsgUnix(buf, oob, nil)
	if err != nil {
		return n, errors.Wrap(err, "transport: writing unix socket")
	}
	return n, nil
}

func (u *unixConn) Close() error {
	return u.conn.Close()
}

func parseRightsFds(oob []byte) ([]wire.Fd, error) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, errors.Wrap(err, "transport: parsing control message")
	}
	var fds []wire.Fd
	for _, msg := range msgs {
		rights, err := unix.ParseUnixRights(&msg)
		if err != nil {
			return nil, errors.Wrap(err, "transport: parsing SCM_RIGHTS")
		}
		fds = append(fds, rights...)
	}
	return fds, nil
}
