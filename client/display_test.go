package client

import (
	"testing"

	"github.com/damianoneill/x11/wire"
	"github.com/damianoneill/x11/xproto"
	"github.com/damianoneill/x11/xproto/glx"
)

// readFullRequest reads one complete, self-framed X11 request off conn:
// the 4-byte header first, then however many more bytes the length
// field says the request holds.
func readFullRequest(conn *pipeConnection) []byte {
	header := make([]byte, 4)
	readFull(conn, header)
	total := int(wire.GetUint16(header[2:4])) * 4
	buf := make([]byte, total)
	copy(buf, header)
	if total > 4 {
		readFull(conn, buf[4:])
	}
	return buf
}

func readFull(conn *pipeConnection, buf []byte) {
	for off := 0; off < len(buf); {
		n, _, err := conn.ReadPacket(buf[off:])
		if err != nil {
			return
		}
		off += n
	}
}

func writeReply(conn *pipeConnection, seq uint16, fill func(buf []byte)) {
	buf := make([]byte, 32)
	buf[0] = 1
	wire.PutUint16(buf[2:4], seq)
	fill(buf)
	_, _ = conn.WritePacket(buf, nil)
}

func TestEndToEndGetInputFocus(t *testing.T) {
	clientConn, serverConn := newPipeConnectionPair()

	go func() {
		readFullRequest(serverConn)
		writeReply(serverConn, 1, func(buf []byte) {
			buf[1] = byte(xproto.RevertToParent)
			wire.PutUint32(buf[8:12], 42)
		})
	}()

	d := NewDisplay(clientConn, nil, nil)
	defer d.Close()

	cookie, err := SendRequest[*xproto.GetInputFocusReply](d, xproto.GetInputFocusRequest{})
	if err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	if cookie.Sequence() != 1 {
		t.Fatalf("expected sequence 1, got %d", cookie.Sequence())
	}

	reply, err := cookie.Take()
	if err != nil {
		t.Fatalf("unexpected reply error: %v", err)
	}
	if reply.RevertTo != xproto.RevertToParent {
		t.Fatalf("expected RevertToParent, got %v", reply.RevertTo)
	}
	if reply.Focus != xproto.Window(42) {
		t.Fatalf("expected focus window 42, got %v", reply.Focus)
	}
}

func TestEndToEndExtensionResolutionAndGlxWorkaround(t *testing.T) {
	clientConn, serverConn := newPipeConnectionPair()

	go func() {
		// 1. QueryExtension("GLX")
		readFullRequest(serverConn)
		writeReply(serverConn, 1, func(buf []byte) {
			buf[8] = 1 // present
			buf[9] = 150
			buf[10] = 0
			buf[11] = 0
		})

		// 2. GLX GetFBConfigs, now framed with the resolved major opcode.
		req := readFullRequest(serverConn)
		if req[0] != 150 {
			t.Errorf("expected extension opcode 150 in byte 0, got %d", req[0])
		}
		if req[1] != glx.GetFBConfigsOpcode {
			t.Errorf("expected GetFBConfigs minor opcode, got %d", req[1])
		}
		writeReply(serverConn, 2, func(buf []byte) {
			wire.PutUint32(buf[8:12], 3)
			wire.PutUint32(buf[12:16], 4)
		})
	}()

	d := NewDisplay(clientConn, nil, nil)
	defer d.Close()

	cookie, err := SendRequest[*glx.GetFBConfigsReply](d, glx.GetFBConfigsRequest{Screen: 0})
	if err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	reply, err := cookie.Take()
	if err != nil {
		t.Fatalf("unexpected reply error: %v", err)
	}
	if reply.NumFBConfigs != 3 || reply.NumProperties != 4 {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	info, ok := d.ExtensionInfo("GLX")
	if !ok || !info.Present || info.MajorOpcode != 150 {
		t.Fatalf("expected GLX extension info to be cached, got %+v ok=%v", info, ok)
	}
}

func TestDeliverPurgesOrphanedEntriesOnSequenceGap(t *testing.T) {
	clientConn, serverConn := newPipeConnectionPair()
	defer serverConn.Close()

	d := NewDisplay(clientConn, nil, nil)
	defer d.Close()

	voidCh := d.pendingExpect(1, false)
	answeredCh := d.pendingExpect(2, true)

	d.deliver(2, replyResult{body: make([]byte, 32)})

	select {
	case res := <-voidCh:
		if _, ok := res.err.(*ErrSuperseded); !ok {
			t.Fatalf("expected ErrSuperseded for the orphaned void entry, got %v", res.err)
		}
	default:
		t.Fatal("expected the orphaned sequence 1 entry to be purged and delivered an error")
	}

	select {
	case res := <-answeredCh:
		if res.err != nil {
			t.Fatalf("unexpected error on the answered entry: %v", res.err)
		}
	default:
		t.Fatal("expected sequence 2's own reply to be delivered")
	}

	if d.pending.len() != 0 {
		t.Fatalf("expected no pending entries left, got %d", d.pending.len())
	}
}

func TestEndToEndVendorPrivateGlxWorkaround(t *testing.T) {
	clientConn, serverConn := newPipeConnectionPair()

	go func() {
		// 1. QueryExtension("GLX")
		readFullRequest(serverConn)
		writeReply(serverConn, 1, func(buf []byte) {
			buf[8] = 1 // present
			buf[9] = 150
		})

		// 2. GLX VendorPrivate (ImportContextEXT), framed with the
		// resolved major opcode. Its real request body places the
		// ImportContextEXT sub-code at wire offset 32, which is what
		// makes wire.DetectWorkaround actually tag it.
		req := readFullRequest(serverConn)
		if req[0] != 150 {
			t.Errorf("expected extension opcode 150 in byte 0, got %d", req[0])
		}
		if req[1] != glx.VendorPrivateOpcode {
			t.Errorf("expected VendorPrivate minor opcode, got %d", req[1])
		}
		if wire.GetUint32(req[32:36]) != glx.VendorPrivateCodeImportContextEXT {
			t.Errorf("expected ImportContextEXT sub-code at offset 32, got %#x", wire.GetUint32(req[32:36]))
		}

		// The server's length-halving bug: the wire length field below
		// (3, in 4-byte units) must be read by the client as 6 units
		// (24 bytes) of trailing data once the workaround is applied.
		extra := make([]byte, 24)
		for i := range extra {
			extra[i] = byte(i + 1)
		}
		buf := make([]byte, 32+len(extra))
		buf[0] = 1
		wire.PutUint16(buf[2:4], 2)
		wire.PutUint32(buf[4:8], 3)
		wire.PutUint32(buf[8:12], 0xAB)
		copy(buf[32:], extra)
		_, _ = serverConn.WritePacket(buf, nil)
	}()

	d := NewDisplay(clientConn, nil, nil)
	defer d.Close()

	cookie, err := SendRequest[*glx.VendorPrivateReply](d, glx.NewImportContextEXTRequest(7))
	if err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	reply, err := cookie.Take()
	if err != nil {
		t.Fatalf("unexpected reply error: %v", err)
	}
	if reply.RetVal != 0xAB {
		t.Fatalf("unexpected RetVal: %#x", reply.RetVal)
	}
	if len(reply.Data) != 24 {
		t.Fatalf("expected the workaround to double the reply length to 24 trailing bytes, got %d", len(reply.Data))
	}
	for i, b := range reply.Data {
		if b != byte(i+1) {
			t.Fatalf("trailing byte %d corrupted: got %d want %d", i, b, i+1)
		}
	}
}

func TestSendRequestWhileAnotherInFlightPanics(t *testing.T) {
	clientConn, serverConn := newPipeConnectionPair()
	defer serverConn.Close()

	d := NewDisplay(clientConn, nil, nil)
	defer d.Close()

	d.beginSendRequestRaw(requestInfo{body: xproto.GetInputFocusRequest{}, opcode: 43})

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic when beginning a send while one is already in flight")
		}
	}()
	d.beginSendRequestRaw(requestInfo{body: xproto.GetInputFocusRequest{}, opcode: 43})
}
