package client

import (
	"io"
	"net"

	"github.com/damianoneill/x11/wire"
)

// pipeConnection adapts a net.Conn (as produced by net.Pipe, mirroring
// netconf/testserver's in-process fake transport) to the Connection
// interface. File descriptors are not exercised by these in-process
// tests; WritePacket/ReadPacket ignore fds entirely.
type pipeConnection struct {
	conn net.Conn
}

func newPipeConnectionPair() (client, server *pipeConnection) {
	c, s := net.Pipe()
	return &pipeConnection{conn: c}, &pipeConnection{conn: s}
}

func (p *pipeConnection) ReadPacket(buf []byte) (int, []wire.Fd, error) {
	n, err := p.conn.Read(buf)
	if err != nil && err != io.EOF {
		return n, nil, err
	}
	return n, nil, err
}

func (p *pipeConnection) WritePacket(buf []byte, _ []wire.Fd) (int, error) {
	return p.conn.Write(buf)
}

func (p *pipeConnection) Close() error { return p.conn.Close() }
