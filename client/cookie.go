package client

import "github.com/damianoneill/x11/proto"

// Cookie is a handle to a request's eventual reply, generic over the
// reply type so callers get a typed result without a cast. It plays
// the same role as breadx's RequestCookie, reading spec.md's
// "associated reply type" the idiomatic-Go way (see SPEC_FULL.md §3).
type Cookie[Reply proto.Decodable] struct {
	sequence uint64
	ch       chan replyResult
	newReply func() Reply
}

// Sequence reports the wire sequence number this cookie corresponds
// to, for diagnostics and for matching against trace events.
func (c Cookie[Reply]) Sequence() uint64 { return c.sequence }

// Take blocks until the reply (or an error) for this cookie is
// available and decodes it into a Reply. It is safe to call exactly
// once per cookie.
func (c Cookie[Reply]) Take() (Reply, error) {
	var zero Reply
	result, ok := <-c.ch
	if !ok {
		return zero, &ErrIO{cause: errClosedCookie}
	}
	if result.err != nil {
		return zero, result.err
	}
	reply := c.newReply()
	if _, err := reply.Decode(result.body, toFds(result.fds)); err != nil {
		return zero, &ErrBadReply{cause: err}
	}
	return reply, nil
}

// TakeAsync behaves exactly like Take but runs it on its own
// goroutine, returning immediately with a channel the caller can
// receive from whenever it is convenient — the reply-side counterpart
// to SendRequestAsync on the send side. It is safe to call exactly
// once per cookie, same as Take.
func (c Cookie[Reply]) TakeAsync() <-chan takeResult[Reply] {
	out := make(chan takeResult[Reply], 1)
	go func() {
		reply, err := c.Take()
		out <- takeResult[Reply]{reply: reply, err: err}
	}()
	return out
}

// takeResult is what TakeAsync delivers once the reply (or an error)
// becomes available.
type takeResult[Reply proto.Decodable] struct {
	reply Reply
	err   error
}

// Reply extracts the reply from a takeResult.
func (r takeResult[Reply]) Reply() (Reply, error) { return r.reply, r.err }

var errClosedCookie = errCookieClosed("x11: reply channel closed without a reply")

type errCookieClosed string

func (e errCookieClosed) Error() string { return string(e) }
