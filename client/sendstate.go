package client

import (
	"github.com/damianoneill/x11/wire"
	"github.com/damianoneill/x11/xproto"
)

// requestInfo describes a request waiting to go out: its encodable
// body, its opcode, and the extension it belongs to ("" for a core
// request). It is the Go analogue of breadx's RequestInfo.
type requestInfo struct {
	body      wire.Encodable
	opcode    uint8
	extension string
}

// innerSendBuffer tracks the bytes of one already-framed request as
// they are written to the connection in (possibly several) partial
// writes, mirroring common.rs's InnerSendBuffer.
type innerSendBuffer struct {
	data []byte
	fds  []wire.Fd
}

// step performs exactly one WritePacket call, consuming however many
// bytes it accepted, and reports whether the whole frame is now sent.
func (b *innerSendBuffer) step(conn Connection) (done bool, err error) {
	n, werr := conn.WritePacket(b.data, b.fds)
	if werr != nil {
		return true, wrapIO(werr)
	}
	b.data = b.data[n:]
	b.fds = nil
	return len(b.data) == 0, nil
}

// sendKind tags which variant of the send state machine is live,
// the Go analogue of breadx's SendBuffer enum (spec.md §4.4).
type sendKind uint8

const (
	sendHole sendKind = iota
	sendUninit
	sendPollingForExt
	sendWaitingForExt
	sendInit
)

// sendState is the sealed send-request state machine: exactly one of
// its variants is meaningful at a time, selected by kind. It is
// embedded once per Display, since spec.md §5 requires sends to be
// strictly serialized — there is only ever one send in flight.
type sendState struct {
	kind sendKind

	req requestInfo // valid in sendUninit, sendPollingForExt, sendWaitingForExt

	inner *innerSendBuffer // valid in sendPollingForExt, sendInit

	extReplyCh chan replyResult // valid in sendPollingForExt, sendWaitingForExt
	extSeq     uint64           // QueryExtension's sequence in sendPollingForExt/sendWaitingForExt; the real request's in sendInit

	replyCh chan replyResult // valid in sendInit: the real request's pending entry
}

// fillHole begins a new raw send. It panics if a request is already
// in flight, matching breadx's "begin_send_request_raw before the
// other request is finished sending" panic.
func (s *sendState) fillHole(req requestInfo) {
	if s.kind != sendHole {
		programmerError("begin_send_request_raw called before the previous request finished sending")
	}
	*s = sendState{kind: sendUninit, req: req}
}

// digHole resets the state machine to empty, ready for the next
// fillHole. Called both on successful completion and on error.
func (s *sendState) digHole() {
	*s = sendState{}
}

// step drives the state machine forward by performing work until it
// either completes, needs more I/O, or fails. Extension-opcode
// resolution (sendPollingForExt/sendWaitingForExt) is folded in here
// exactly as common.rs's poll_init does: a request against an
// unresolved extension first sends a QueryExtension sub-request and
// waits for its reply before the real request can be framed.
//
// Unlike the Rust poll functions this mirrors, a single call to step
// may perform more than one connection operation: the sendWaitingForExt
// transition blocks on a channel fed by Display's background readLoop
// rather than returning control to an external executor, since Go's
// scheduler plays the role Rust's Future::poll machinery does in
// spec.md §4.4's dual-driver design (see SPEC_FULL.md §4.4). The
// caller-visible contract is unchanged: loop calling step until done
// is true or an error is returned.
//
// On completion it returns the sequence number the real request was
// assigned and the pending-table channel its reply will arrive on.
//
// Every frame this machine ever writes goes through
// Display.frameAndIssue, which registers that frame's pending entry
// before returning it here — so the entry always exists before the
// corresponding inner.step ever calls WritePacket, for the real
// request as much as for the QueryExtension sub-request a cold
// extension lookup sends first.
func (s *sendState) step(d *Display) (done bool, seq uint64, ch chan replyResult, err error) {
	for {
		switch s.kind {
		case sendHole:
			programmerError("poll_send_request_raw called before begin_send_request_raw")

		case sendUninit:
			if s.req.extension == "" {
				seq, frame, replyCh := d.frameAndIssue(s.req, nil)
				s.kind = sendInit
				s.inner = &innerSendBuffer{data: frame}
				s.extSeq = seq
				s.replyCh = replyCh
				continue
			}
			if info, ok := d.registry.lookup(s.req.extension); ok {
				if !info.present {
					s.digHole()
					return true, 0, nil, &ErrExtensionNotPresent{Extension: s.req.extension}
				}
				extOpcode := info.majorOpcode
				seq, frame, replyCh := d.frameAndIssue(s.req, &extOpcode)
				s.kind = sendInit
				s.inner = &innerSendBuffer{data: frame}
				s.extSeq = seq
				s.replyCh = replyCh
				continue
			}

			qreq := xproto.QueryExtensionRequest{Name: s.req.extension}
			qSeq, qFrame, qCh := d.frameAndIssue(requestInfo{body: qreq, opcode: qreq.Opcode()}, nil)
			s.kind = sendPollingForExt
			s.inner = &innerSendBuffer{data: qFrame}
			s.extSeq = qSeq
			s.extReplyCh = qCh
			continue

		case sendPollingForExt:
			innerDone, ierr := s.inner.step(d.conn)
			if ierr != nil {
				s.digHole()
				return true, 0, nil, ierr
			}
			if !innerDone {
				return false, 0, nil, nil
			}
			s.kind = sendWaitingForExt
			continue

		case sendWaitingForExt:
			result := <-s.extReplyCh
			if result.err != nil {
				s.digHole()
				return true, 0, nil, result.err
			}
			var reply xproto.QueryExtensionReply
			if _, derr := reply.Decode(result.body, toFds(result.fds)); derr != nil {
				s.digHole()
				return true, 0, nil, &ErrBadReply{cause: derr}
			}
			info := extensionInfo{
				present:     reply.Present,
				majorOpcode: reply.MajorOpcode,
				firstEvent:  reply.FirstEvent,
				firstError:  reply.FirstError,
			}
			d.registry.store(s.req.extension, info)
			if !reply.Present {
				s.digHole()
				return true, 0, nil, &ErrExtensionNotPresent{Extension: s.req.extension}
			}
			extOpcode := reply.MajorOpcode
			seq, frame, replyCh := d.frameAndIssue(s.req, &extOpcode)
			s.kind = sendInit
			s.inner = &innerSendBuffer{data: frame}
			s.extSeq = seq
			s.replyCh = replyCh
			continue

		case sendInit:
			innerDone, ierr := s.inner.step(d.conn)
			if ierr != nil {
				s.digHole()
				return true, 0, nil, ierr
			}
			if !innerDone {
				return false, 0, nil, nil
			}
			finalSeq, finalCh := s.extSeq, s.replyCh
			s.digHole()
			return true, finalSeq, finalCh, nil

		default:
			programmerError("unreachable send state %d", s.kind)
		}
	}
}

func toFds(fds []int) []wire.Fd {
	out := make([]wire.Fd, len(fds))
	copy(out, fds)
	return out
}
