package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/imdario/mergo"

	"github.com/damianoneill/x11/proto"
	"github.com/damianoneill/x11/wire"
)

// Display is the engine: one connection to an X server, the pending
// request table, the extension registry, and the single send state
// machine that every SendRequest/SendRequestAsync call drives in turn.
// It generalises damianoneill-net/v2/netconf/client's sesImpl:
// sesImpl's strictly-FIFO responseq becomes pendingTable (sequence-keyed,
// since X11 interleaves QueryExtension sub-requests with user requests),
// and its single handleIncomingMessages goroutine becomes readLoop here.
type Display struct {
	id    uuid.UUID
	cfg   *Config
	conn  Connection
	trace *ClientTrace

	seq      sequenceCounter
	pending  pendingTable
	registry *extensionRegistry

	sendMu sync.Mutex
	send   sendState

	pendingMu sync.Mutex

	workaroundsMu sync.Mutex
	workarounds   map[uint64]wire.Workaround

	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

// NewDisplay wraps conn in a Display, launching the background receive
// loop. cfg may be nil, in which case DefaultConfig is used; trace may
// be nil, in which case NoOpLoggingHooks is used, and a partial trace
// has its missing hooks filled from NoOpLoggingHooks.
func NewDisplay(conn Connection, cfg *Config, trace *ClientTrace) *Display {
	if cfg == nil {
		cfg = DefaultConfig
	}
	if trace == nil {
		trace = NoOpLoggingHooks
	} else {
		_ = mergo.Merge(trace, NoOpLoggingHooks)
	}

	d := &Display{
		id:          uuid.New(),
		cfg:         cfg,
		conn:        conn,
		trace:       trace,
		registry:    newExtensionRegistry(),
		workarounds: make(map[uint64]wire.Workaround),
		done:        make(chan struct{}),
	}

	go d.readLoop()

	return d
}

// Close releases the underlying connection and unblocks any request
// still waiting on a reply.
func (d *Display) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = d.conn.Close()
		d.trace.ConnectionClosed("", d.closeErr)
	})
	return d.closeErr
}

// frameAndIssue assigns the next sequence number to req, encodes it
// onto the wire (stamping extOpcode when the request belongs to a
// resolved extension), records the GLX workaround tag the receive side
// will need once the reply for this sequence arrives, and registers
// the pending-table entry the reply will be delivered to.
//
// The pending entry is registered here, before the caller ever writes
// the returned frame to the connection: readLoop runs on its own
// goroutine and a fast server can have its reply assembled and ready
// to dispatch before WritePacket even returns, so the entry must exist
// before transmission, not after.
func (d *Display) frameAndIssue(req requestInfo, extOpcode *uint8) (uint64, []byte, chan replyResult) {
	seq := d.seq.issue()
	frame := wire.EncodeRequest(req.body, req.opcode, extOpcode)

	d.workaroundsMu.Lock()
	d.workarounds[seq] = wire.DetectWorkaround(req.extension, req.opcode, frame)
	d.workaroundsMu.Unlock()

	ch := d.pendingExpect(seq, true)

	d.trace.SendStart(d.id, seq, req.opcode, req.extension)

	return seq, frame, ch
}

// pendingExpect registers a new pending entry under the pending-table
// lock. frameAndIssue is its only caller in the send path; tests also
// use it directly to set up pending entries without going through a
// full send.
func (d *Display) pendingExpect(seq uint64, expectsOne bool) chan replyResult {
	d.pendingMu.Lock()
	defer d.pendingMu.Unlock()
	return d.pending.expect(seq, expectsOne)
}

// takeWorkaround returns and forgets the workaround tag recorded for
// seq; it is consulted exactly once, when that sequence's reply frame
// is assembled.
func (d *Display) takeWorkaround(seq uint64) wire.Workaround {
	d.workaroundsMu.Lock()
	defer d.workaroundsMu.Unlock()
	w := d.workarounds[seq]
	delete(d.workarounds, seq)
	return w
}

// beginSendRequestRaw starts sending req, panicking if another send is
// already in flight (spec.md §5: sends are strictly serialized; a
// second concurrent send is a caller contract violation, matching
// breadx's begin_send_request_raw panic).
func (d *Display) beginSendRequestRaw(req requestInfo) {
	d.sendMu.Lock()
	defer d.sendMu.Unlock()
	d.send.fillHole(req)
}

// pollSendRequestRaw drives the in-flight send state machine forward
// by one step, the literal analogue of breadx's PollSendRequestRaw
// future (see original_source/src/display/futures/send_request_raw.rs).
func (d *Display) pollSendRequestRaw() (done bool, seq uint64, ch chan replyResult, err error) {
	d.sendMu.Lock()
	defer d.sendMu.Unlock()
	return d.send.step(d)
}

// sendRequestSync drives beginSendRequestRaw/pollSendRequestRaw to
// completion on the calling goroutine: the synchronous driver named in
// spec.md §4.4. The returned channel is the pending entry registered
// for seq at the moment it was issued, already wired to readLoop.
func (d *Display) sendRequestSync(req requestInfo) (uint64, chan replyResult, error) {
	d.beginSendRequestRaw(req)
	start := time.Now()
	for {
		done, seq, ch, err := d.pollSendRequestRaw()
		if err != nil {
			d.trace.SendDone(d.id, seq, err, time.Since(start))
			return 0, nil, err
		}
		if done {
			d.trace.SendDone(d.id, seq, nil, time.Since(start))
			return seq, ch, nil
		}
	}
}

// SendRequest encodes and sends req, returning a Cookie that resolves
// to its reply once the server answers. It is the main synchronous
// entry point named in spec.md §6.
func SendRequest[Reply proto.Decodable](d *Display, req proto.Request[Reply]) (Cookie[Reply], error) {
	seq, ch, err := d.sendRequestSync(requestInfo{body: req, opcode: req.Opcode(), extension: req.Extension()})
	if err != nil {
		return Cookie[Reply]{}, err
	}

	return Cookie[Reply]{sequence: seq, ch: ch, newReply: req.NewReply}, nil
}

// SendRequestAsync behaves exactly like SendRequest but drives the
// send state machine on its own goroutine under the same send mutex,
// so the caller does not block while the request (and any
// QueryExtension sub-request it triggers) is written. This is the
// cooperative driver named in spec.md §4.4: it is still Go's own
// goroutine scheduler servicing the very same step() implementation
// SendRequest uses synchronously.
func SendRequestAsync[Reply proto.Decodable](d *Display, req proto.Request[Reply]) <-chan asyncSendResult[Reply] {
	out := make(chan asyncSendResult[Reply], 1)
	go func() {
		cookie, err := SendRequest[Reply](d, req)
		out <- asyncSendResult[Reply]{cookie: cookie, err: err}
	}()
	return out
}

// asyncSendResult is what SendRequestAsync delivers once the send
// completes (not once the reply arrives — TakeAsync on the cookie
// still blocks for that).
type asyncSendResult[Reply proto.Decodable] struct {
	cookie Cookie[Reply]
	err    error
}

// Cookie extracts the cookie from an asyncSendResult. The result is
// only delivered on SendRequestAsync's channel once the send itself
// (not the reply) has completed.
func (r asyncSendResult[Reply]) Cookie() (Cookie[Reply], error) { return r.cookie, r.err }

// ExtensionInfo reports what the engine has learned about the named
// extension, if QueryExtension has already resolved it. This exposes
// first_event/first_error per SPEC_FULL.md §6's supplement to spec.md's
// open question on that data.
func (d *Display) ExtensionInfo(name string) (ExtensionInfo, bool) {
	info, ok := d.registry.lookup(name)
	if !ok {
		return ExtensionInfo{}, false
	}
	return ExtensionInfo{
		Present:     info.present,
		MajorOpcode: info.majorOpcode,
		FirstEvent:  info.firstEvent,
		FirstError:  info.firstError,
	}, true
}

// readLoop is the background receive-state-machine driver: it
// continuously assembles incoming frames via a waitBuffer and
// dispatches each one to whichever pending entry (if any) is waiting
// for its sequence number, the generalisation of sesImpl's
// handleIncomingMessages for a protocol where replies are not always
// next-in-line.
func (d *Display) readLoop() {
	defer close(d.done)

	for {
		wb := newWaitBuffer()
		// The workaround to apply is not known until we have at least
		// peeked the frame type; errors (byte 0 == 0) and ordinary
		// events never need it, and for replies the workaround was
		// already recorded by sequence when the originating request
		// was sent. We resolve it after the sequence number is legible
		// at byte [2:4), a detail the literal wait loop below handles.
		result, err := d.readOneFrame(wb)
		if err != nil {
			d.trace.Error(d.id, "readLoop", err)
			d.failAllPending(err)
			return
		}
		d.dispatchFrame(result)
	}
}

// readOneFrame drives wb.step to completion, resolving the GLX
// workaround tag for a reply frame by its sequence number as soon as
// the first 32 bytes (and so the sequence number at bytes [2:4)) are
// available. Errors and ordinary events never need the workaround;
// resolveFrameWorkaround reports wire.NoWorkaround for anything that
// is not a reply.
func (d *Display) readOneFrame(wb *waitBuffer) (waitResult, error) {
	for {
		done, result, err := wb.step(d.conn, d.resolveFrameWorkaround)
		if err != nil {
			return waitResult{}, err
		}
		if done {
			return result, nil
		}
	}
}

// resolveFrameWorkaround looks up the workaround recorded for a
// reply's sequence number. first32 is the frame's first 32 bytes,
// enough to read byte 0 (kind) and bytes [2:4) (sequence).
func (d *Display) resolveFrameWorkaround(first32 []byte) wire.Workaround {
	if first32[0] != 1 {
		return wire.NoWorkaround
	}
	wireSeq := wire.GetUint16(first32[2:4])
	seq := widen(wireSeq, d.seq.current())
	return d.takeWorkaround(seq)
}

// dispatchFrame routes one fully-assembled frame to its pending entry,
// if any is registered, widening the wire sequence number against the
// most recently issued sequence per spec.md §4.5.
func (d *Display) dispatchFrame(result waitResult) {
	if len(result.data) < 8 {
		return
	}

	kind := result.data[0]
	wireSeq := wire.GetUint16(result.data[2:4])
	seq := widen(wireSeq, d.seq.current())

	if kind == 0 {
		serr := decodeServerError(result.data, seq)
		d.trace.ServerErrorReceived(d.id, serr)
		d.deliver(seq, replyResult{err: serr})
		return
	}

	if kind == 1 {
		d.trace.ReplyReceived(d.id, seq)
		d.deliver(seq, replyResult{body: result.data, fds: result.fds})
		return
	}

	// Events (kind >= 2): spec.md puts event dispatch out of scope for
	// the core engine; every frame that is not a reply or an error is
	// simply dropped here.
}

// deliver sends a result to the pending entry for seq, if one exists,
// and purges any earlier entries the server has implicitly skipped
// past: X11 replies and errors arrive in strictly increasing sequence
// order, so an entry still pending with a lower sequence number than
// one just answered will never get a direct reply of its own.
func (d *Display) deliver(seq uint64, result replyResult) {
	d.pendingMu.Lock()
	entry, ok := d.pending.take(seq)
	purged := d.pending.purgeBefore(seq)
	d.pendingMu.Unlock()

	for _, p := range purged {
		p.replyChan <- replyResult{err: &ErrSuperseded{Sequence: p.sequence}}
	}

	if !ok {
		return
	}
	entry.replyChan <- result
}

// failAllPending delivers err to every still-outstanding pending entry,
// e.g. when the connection has failed and no more replies will arrive.
func (d *Display) failAllPending(err error) {
	d.pendingMu.Lock()
	entries := d.pending.entries
	d.pending.entries = nil
	d.pendingMu.Unlock()

	for _, e := range entries {
		e.replyChan <- replyResult{err: wrapIO(err)}
	}
}

// decodeServerError builds a ServerError from a 32-byte error frame:
// byte 1 is the error code, bytes [4:8) the bad resource id (when
// applicable), bytes [8:10) the minor opcode, and byte 10 the major
// opcode, per the core X11 error layout.
func decodeServerError(buf []byte, seq uint64) *ServerError {
	return &ServerError{
		Code:       buf[1],
		Sequence:   seq,
		ResourceID: wire.GetUint32(buf[4:8]),
		MinorCode:  wire.GetUint16(buf[8:10]),
		MajorCode:  buf[10],
	}
}
