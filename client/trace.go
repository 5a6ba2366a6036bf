package client

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
)

// unique type to prevent assignment collisions on the context key.
type clientEventContextKey struct{}

// ContextClientTrace returns the ClientTrace associated with ctx, or
// NoOpLoggingHooks if none was attached.
func ContextClientTrace(ctx context.Context) *ClientTrace {
	trace, _ := ctx.Value(clientEventContextKey{}).(*ClientTrace)
	if trace == nil {
		trace = NoOpLoggingHooks
	} else {
		_ = mergo.Merge(trace, NoOpLoggingHooks)
	}
	return trace
}

// WithClientTrace returns a context carrying trace, for retrieval with
// ContextClientTrace. Display takes its trace from NewDisplay and does
// not read one from a context.
func WithClientTrace(ctx context.Context, trace *ClientTrace) context.Context {
	return context.WithValue(ctx, clientEventContextKey{}, trace)
}

// ClientTrace holds one function field per engine lifecycle event. A
// caller supplies only the hooks it cares about; mergo fills the rest
// from NoOpLoggingHooks so every hook is always safe to call.
type ClientTrace struct {
	// ConnectStart is called before dialling the X server.
	ConnectStart func(display string)

	// ConnectDone is called once the transport connection attempt
	// completes, successfully or not.
	ConnectDone func(display string, err error, d time.Duration)

	// DialStart is called before an SSH transport dials its target.
	DialStart func(target string)

	// DialDone is called once an SSH dial attempt completes.
	DialDone func(target string, err error, d time.Duration)

	// ConnectionClosed is called after the connection is closed.
	ConnectionClosed func(display string, err error)

	// ReadStart is called before a read from the underlying connection.
	ReadStart func(id uuid.UUID)

	// ReadDone is called after a read from the underlying connection.
	ReadDone func(id uuid.UUID, n int, err error, d time.Duration)

	// WriteStart is called before a write to the underlying connection.
	WriteStart func(id uuid.UUID, n int)

	// WriteDone is called after a write to the underlying connection.
	WriteDone func(id uuid.UUID, n int, err error, d time.Duration)

	// Error is called whenever the engine detects an error condition
	// outside of a specific request (e.g. a malformed frame from the
	// server).
	Error func(id uuid.UUID, context string, err error)

	// ExtensionResolveStart marks the start of a QueryExtension
	// sub-request for a not-yet-cached extension name. Display does not
	// call it; a QueryExtension sub-request is reported through
	// SendStart like any other request.
	ExtensionResolveStart func(id uuid.UUID, extension string)

	// ExtensionResolveDone marks an extension resolving, successfully or
	// not. Display does not call it.
	ExtensionResolveDone func(id uuid.UUID, extension string, info ExtensionInfo, err error, d time.Duration)

	// SendStart is called before a request begins its send state
	// machine (before any bytes reach the wire).
	SendStart func(id uuid.UUID, sequence uint64, opcode uint8, extension string)

	// SendDone is called once a request has been fully written.
	SendDone func(id uuid.UUID, sequence uint64, err error, d time.Duration)

	// ReplyReceived is called when a reply frame arrives, before it is
	// delivered to its pending request (if one is registered).
	ReplyReceived func(id uuid.UUID, sequence uint64)

	// ServerErrorReceived is called when an error frame arrives.
	ServerErrorReceived func(id uuid.UUID, serverErr *ServerError)

	// ProgrammerError describes a contract violation. The engine's
	// contract-violation panics (programmerError) do not call it.
	ProgrammerError func(id uuid.UUID, detail string)
}

// DefaultLoggingHooks reports only error conditions, via the stdlib
// log package, matching damianoneill-net/v2/netconf/client's
// DefaultLoggingHooks.
var DefaultLoggingHooks = &ClientTrace{
	Error: func(id uuid.UUID, context string, err error) {
		log.Printf("x11[%s] error context:%s err:%v\n", id, context, err)
	},
}

// MetricLoggingHooks logs timing information for connects, reads,
// writes and sends.
var MetricLoggingHooks = &ClientTrace{
	ConnectDone: func(display string, err error, d time.Duration) {
		log.Printf("x11 ConnectDone display:%s err:%v took:%dms\n", display, err, d.Milliseconds())
	},
	ReadDone: func(id uuid.UUID, n int, err error, d time.Duration) {
		log.Printf("x11[%s] ReadDone n:%d err:%v took:%dms\n", id, n, err, d.Milliseconds())
	},
	WriteDone: func(id uuid.UUID, n int, err error, d time.Duration) {
		log.Printf("x11[%s] WriteDone n:%d err:%v took:%dms\n", id, n, err, d.Milliseconds())
	},
	SendDone: func(id uuid.UUID, sequence uint64, err error, d time.Duration) {
		log.Printf("x11[%s] SendDone sequence:%d err:%v took:%dms\n", id, sequence, err, d.Milliseconds())
	},
	Error: DefaultLoggingHooks.Error,
}

// DiagnosticLoggingHooks logs every lifecycle event, for deep debugging.
var DiagnosticLoggingHooks = &ClientTrace{
	ConnectStart: func(display string) {
		log.Printf("x11 ConnectStart display:%s\n", display)
	},
	ConnectDone:      MetricLoggingHooks.ConnectDone,
	DialStart:        func(target string) { log.Printf("x11 DialStart target:%s\n", target) },
	DialDone: func(target string, err error, d time.Duration) {
		log.Printf("x11 DialDone target:%s err:%v took:%dms\n", target, err, d.Milliseconds())
	},
	ConnectionClosed: func(display string, err error) { log.Printf("x11 ConnectionClosed display:%s err:%v\n", display, err) },
	ReadStart:        func(id uuid.UUID) { log.Printf("x11[%s] ReadStart\n", id) },
	ReadDone:         MetricLoggingHooks.ReadDone,
	WriteStart:       func(id uuid.UUID, n int) { log.Printf("x11[%s] WriteStart n:%d\n", id, n) },
	WriteDone:        MetricLoggingHooks.WriteDone,
	Error:            DefaultLoggingHooks.Error,
	ExtensionResolveStart: func(id uuid.UUID, extension string) {
		log.Printf("x11[%s] ExtensionResolveStart extension:%s\n", id, extension)
	},
	ExtensionResolveDone: func(id uuid.UUID, extension string, info ExtensionInfo, err error, d time.Duration) {
		log.Printf("x11[%s] ExtensionResolveDone extension:%s info:%+v err:%v took:%dms\n", id, extension, info, err, d.Milliseconds())
	},
	SendStart: func(id uuid.UUID, sequence uint64, opcode uint8, extension string) {
		log.Printf("x11[%s] SendStart sequence:%d opcode:%d extension:%s\n", id, sequence, opcode, extension)
	},
	SendDone: MetricLoggingHooks.SendDone,
	ReplyReceived: func(id uuid.UUID, sequence uint64) {
		log.Printf("x11[%s] ReplyReceived sequence:%d\n", id, sequence)
	},
	ServerErrorReceived: func(id uuid.UUID, serverErr *ServerError) {
		log.Printf("x11[%s] ServerErrorReceived %v\n", id, serverErr)
	},
	ProgrammerError: func(id uuid.UUID, detail string) {
		log.Printf("x11[%s] ProgrammerError %s\n", id, detail)
	},
}

// NoOpLoggingHooks is a ClientTrace whose every hook does nothing; it
// is the merge target every other trace is filled out against so
// calling code never needs a nil check.
var NoOpLoggingHooks = &ClientTrace{
	ConnectStart:          func(display string) {},
	ConnectDone:           func(display string, err error, d time.Duration) {},
	DialStart:             func(target string) {},
	DialDone:              func(target string, err error, d time.Duration) {},
	ConnectionClosed:      func(display string, err error) {},
	ReadStart:             func(id uuid.UUID) {},
	ReadDone:              func(id uuid.UUID, n int, err error, d time.Duration) {},
	WriteStart:            func(id uuid.UUID, n int) {},
	WriteDone:             func(id uuid.UUID, n int, err error, d time.Duration) {},
	Error:                 func(id uuid.UUID, context string, err error) {},
	ExtensionResolveStart: func(id uuid.UUID, extension string) {},
	ExtensionResolveDone:  func(id uuid.UUID, extension string, info ExtensionInfo, err error, d time.Duration) {},
	SendStart:             func(id uuid.UUID, sequence uint64, opcode uint8, extension string) {},
	SendDone:              func(id uuid.UUID, sequence uint64, err error, d time.Duration) {},
	ReplyReceived:         func(id uuid.UUID, sequence uint64) {},
	ServerErrorReceived:   func(id uuid.UUID, serverErr *ServerError) {},
	ProgrammerError:       func(id uuid.UUID, detail string) {},
}
