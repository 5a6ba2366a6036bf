package client

import "github.com/damianoneill/x11/wire"

// waitResult is what a completed waitBuffer hands back: the full
// frame (32 bytes, extended if the reply/event carried additional
// data) and any file descriptors that arrived alongside it.
type waitResult struct {
	data []byte
	fds  []wire.Fd
}

// waitBuffer incrementally assembles one incoming frame off the
// connection: the first 32 bytes always, then however many more bytes
// wire.AdditionalBytes says the frame needs once those 32 bytes are in
// hand. It is the literal Go translation of
// original_source/src/display/common.rs's WaitBuffer, with the same
// "poll past completion panics" contract.
type waitBuffer struct {
	buffer    []byte
	fds       []wire.Fd
	firstRead bool
	cursor    int
	complete  bool
}

func newWaitBuffer() *waitBuffer {
	return &waitBuffer{buffer: make([]byte, 32), firstRead: true}
}

// step performs exactly one ReadPacket call against conn and reports
// whether the frame is now fully assembled. resolveWorkaround is
// consulted exactly once, right after the first 32 bytes are in hand
// (by which point the sequence number at bytes [2:4) is legible), to
// look up the GLX workaround tag recorded for whichever request this
// reply answers.
func (w *waitBuffer) step(conn Connection, resolveWorkaround func(first32 []byte) wire.Workaround) (done bool, result waitResult, err error) {
	if w.complete {
		programmerError("polled a wait buffer past completion")
	}

	n, fds, rerr := conn.ReadPacket(w.buffer[w.cursor:])
	if rerr != nil {
		w.complete = true
		return true, waitResult{}, wrapIO(rerr)
	}
	w.fds = append(w.fds, fds...)
	w.cursor += n

	if w.cursor < len(w.buffer) {
		return false, waitResult{}, nil
	}

	if w.firstRead {
		w.firstRead = false
		workaround := resolveWorkaround(w.buffer[:32])
		extra := wire.AdditionalBytes(w.buffer[:8], workaround)
		if extra > 0 {
			w.buffer = append(w.buffer, make([]byte, extra)...)
			return false, waitResult{}, nil
		}
	}

	w.complete = true
	return true, waitResult{data: w.buffer, fds: w.fds}, nil
}
