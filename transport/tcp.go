package transport

import (
	"net"

	"github.com/pkg/errors"

	"github.com/damianoneill/x11/wire"
)

// tcpConn adapts a net.Conn to client.Connection for TCP-forwarded X11
// displays (host:6000+displaynum). TCP carries no ancillary data, so
// ReadPacket never returns file descriptors and WritePacket rejects
// any it is given.
type tcpConn struct {
	conn net.Conn
}

// DialTCP connects to an X server listening on addr (host:port).
func DialTCP(addr string) (*tcpConn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: dialing tcp %s", addr)
	}
	return &tcpConn{conn: conn}, nil
}

func (t *tcpConn) ReadPacket(buf []byte) (n int, fds []wire.Fd, err error) {
	n, err = t.conn.Read(buf)
	if err != nil {
		return n, nil, errors.Wrap(err, "transport: reading tcp socket")
	}
	return n, nil, nil
}

func (t *tcpConn) WritePacket(buf []byte, fds []wire.Fd) (n int, err error) {
	if len(fds) > 0 {
		return 0, errors.New("transport: tcp connections cannot carry file descriptors")
	}
	n, err = t.conn.Write(buf)
	if err != nil {
		return n, errors.Wrap(err, "transport: writing tcp socket")
	}
	return n, nil
}

func (t *tcpConn) Close() error {
	return t.conn.Close()
}
