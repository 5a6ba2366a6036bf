package transport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"

	"github.com/damianoneill/x11/client"
	"github.com/damianoneill/x11/wire"
)

// SSHClientFactory supplies the *ssh.Client an X11-over-SSH transport
// dials through, mirroring
// damianoneill-net/v2/netconf/client.SSHClientFactory: a caller-owned
// client is reused as-is (Close is a no-op), while one this package
// dials itself is torn down when the transport closes.
type SSHClientFactory interface {
	Dial(ctx context.Context) (*ssh.Client, error)
	Close(*ssh.Client) error
}

// RealDialer dials a fresh *ssh.Client against target on every Dial
// call and owns closing it.
type RealDialer struct {
	target string
	config *ssh.ClientConfig
	trace  *client.ClientTrace
}

// NewDialer returns an SSHClientFactory that dials target with config.
func NewDialer(target string, config *ssh.ClientConfig, trace *client.ClientTrace) *RealDialer {
	if trace == nil {
		trace = client.NoOpLoggingHooks
	} else {
		_ = mergo.Merge(trace, client.NoOpLoggingHooks)
	}
	return &RealDialer{target: target, config: config, trace: trace}
}

func (d *RealDialer) Dial(ctx context.Context) (cli *ssh.Client, err error) {
	d.trace.DialStart(d.target)
	defer func(begin time.Time) {
		d.trace.DialDone(d.target, err, time.Since(begin))
	}(time.Now())

	return ssh.Dial("tcp", d.target, d.config)
}

func (d *RealDialer) Close(cli *ssh.Client) error {
	if cli == nil {
		return nil
	}
	return cli.Close()
}

// noOpDialer wraps a caller-supplied *ssh.Client that this package
// must not close, since the caller owns its lifetime.
type noOpDialer struct {
	client *ssh.Client
}

func (d *noOpDialer) Dial(ctx context.Context) (*ssh.Client, error) { return d.client, nil }
func (d *noOpDialer) Close(*ssh.Client) error                       { return nil }

// NewClientDialer wraps an already-connected *ssh.Client so DialSSH
// can reuse it without taking ownership of its lifetime.
func NewClientDialer(client *ssh.Client) SSHClientFactory {
	return &noOpDialer{client: client}
}

// sshConn is a client.Connection over an SSH "direct-tcpip" channel
// forwarded to the X server's listening address on the far side of
// the SSH connection. It cannot carry ancillary file descriptors.
type sshConn struct {
	channel sshChannel
	dialer  SSHClientFactory
	client  *ssh.Client
	target  string
	trace   *client.ClientTrace
	id      uuid.UUID
}

// sshChannel is the subset of ssh.Channel (really net.Conn, once an
// ssh.Client.Dial result is used) this package needs.
type sshChannel interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// DialSSH establishes an SSH connection via dialer, then opens a
// direct-tcpip channel to remoteDisplayAddr (the X server's address as
// seen from the SSH server, e.g. "localhost:6000"), the standard way
// to reach a display that only listens on the remote host's loopback
// interface.
func DialSSH(ctx context.Context, dialer SSHClientFactory, remoteDisplayAddr string, trace *client.ClientTrace) (c *sshConn, err error) {
	if trace == nil {
		trace = client.NoOpLoggingHooks
	} else {
		_ = mergo.Merge(trace, client.NoOpLoggingHooks)
	}
	impl := &sshConn{dialer: dialer, target: remoteDisplayAddr, trace: trace, id: uuid.New()}

	impl.trace.ConnectStart(remoteDisplayAddr)
	defer func(begin time.Time) {
		impl.trace.ConnectDone(remoteDisplayAddr, err, time.Since(begin))
	}(time.Now())

	defer func() {
		if err != nil && impl.client != nil {
			_ = dialer.Close(impl.client)
		}
	}()

	impl.client, err = dialer.Dial(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "transport: dialing ssh client")
	}

	conn, err := impl.client.Dial("tcp", remoteDisplayAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: opening direct-tcpip channel to %s", remoteDisplayAddr)
	}
	impl.channel = conn

	return impl, nil
}

func (c *sshConn) ReadPacket(buf []byte) (n int, fds []wire.Fd, err error) {
	c.trace.ReadStart(c.id)
	begin := time.Now()
	n, err = c.channel.Read(buf)
	c.trace.ReadDone(c.id, n, err, time.Since(begin))
	if err != nil {
		return n, nil, errors.Wrap(err, "transport: reading ssh channel")
	}
	return n, nil, nil
}

func (c *sshConn) WritePacket(buf []byte, fds []wire.Fd) (n int, err error) {
	if len(fds) > 0 {
		return 0, errors.New("transport: ssh-forwarded connections cannot carry file descriptors")
	}
	c.trace.WriteStart(c.id, len(buf))
	begin := time.Now()
	n, err = c.channel.Write(buf)
	c.trace.WriteDone(c.id, n, err, time.Since(begin))
	if err != nil {
		return n, errors.Wrap(err, "transport: writing ssh channel")
	}
	return n, nil
}

func (c *sshConn) Close() (err error) {
	defer c.trace.ConnectionClosed(c.target, err)

	channelErr := c.channel.Close()
	dialerErr := c.dialer.Close(c.client)

	if dialerErr != nil {
		return dialerErr
	}
	return channelErr
}
