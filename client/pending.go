package client

import "sort"

// pendingEntry records one outstanding request: its reply-delivery
// channel and whether it expects a reply at all (some requests, like
// most core rendering requests, are void).
type pendingEntry struct {
	sequence   uint64
	replyChan  chan replyResult
	expectsOne bool
}

// replyResult is what the receive state machine hands back to whoever
// is waiting on a given sequence number: either a decoded reply body
// or a server error, never both.
type replyResult struct {
	body []byte
	fds  []int
	err  error
}

// pendingTable tracks outstanding requests keyed by sequence number,
// backed by a slice kept sorted by sequence number and searched with
// sort.Search. Because sequence numbers are handed out strictly
// increasing by sequenceCounter and requests are serialized on send
// (spec.md §5), insertion is always an append — the slice never needs
// re-sorting, just binary search on lookup. This is the sequence-keyed
// generalisation of netconf's FIFO responseq (client/message.go's
// pushRespChan/popRespChan), needed because X11 interleaves
// QueryExtension sub-requests with the caller's own requests.
type pendingTable struct {
	entries []pendingEntry
}

// expect registers a new pending entry. Callers must call it with
// strictly increasing sequence numbers.
func (t *pendingTable) expect(seq uint64, expectsOne bool) chan replyResult {
	ch := make(chan replyResult, 1)
	t.entries = append(t.entries, pendingEntry{sequence: seq, replyChan: ch, expectsOne: expectsOne})
	return ch
}

// find returns the pending entry for seq, if any, without removing it.
func (t *pendingTable) find(seq uint64) (pendingEntry, bool) {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].sequence >= seq })
	if i < len(t.entries) && t.entries[i].sequence == seq {
		return t.entries[i], true
	}
	return pendingEntry{}, false
}

// take removes and returns the pending entry for seq, if any.
func (t *pendingTable) take(seq uint64) (pendingEntry, bool) {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].sequence >= seq })
	if i < len(t.entries) && t.entries[i].sequence == seq {
		e := t.entries[i]
		t.entries = append(t.entries[:i], t.entries[i+1:]...)
		return e, true
	}
	return pendingEntry{}, false
}

// purgeBefore drops every entry with a sequence number strictly less
// than seq and returns them, so the caller can deliver a "request
// superseded" style error to their reply channels. This handles a
// server reply or error arriving for a sequence number past one or
// more entries the client never got a direct answer for (void
// requests the server silently accepted): the gap must not leave them
// stuck pending forever.
func (t *pendingTable) purgeBefore(seq uint64) []pendingEntry {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].sequence >= seq })
	purged := t.entries[:i:i]
	t.entries = t.entries[i:]
	return purged
}

// len reports the number of outstanding entries, for tests.
func (t *pendingTable) len() int { return len(t.entries) }
