package client

import (
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/damianoneill/x11/client/mocks"
	"github.com/damianoneill/x11/xproto"
)

// TestSendRequestSyncWritesFramedBytes exercises sendRequestSync
// against a gomock.Controller-driven Connection double, the style
// damianoneill-net/v2/snmp's session_test.go uses for its Conn mock:
// expectations are set up on the mock, and the method under test is
// driven entirely through the interface rather than a real socket.
func TestSendRequestSyncWritesFramedBytes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := mocks.NewMockConnection(ctrl)

	// WritePacket and ReadPacket run on different goroutines (the
	// caller and the background readLoop), so their relative order is
	// not deterministic; each is expected independently rather than
	// via gomock.InOrder.
	mockConn.EXPECT().WritePacket(gomock.Any(), gomock.Any()).Return(4, nil).Times(1)
	mockConn.EXPECT().ReadPacket(gomock.Any()).Return(0, nil, io.EOF).AnyTimes()
	// The deferred d.Close below reaches the connection's Close.
	mockConn.EXPECT().Close().Return(nil).Times(1)

	d := NewDisplay(mockConn, nil, nil)
	defer d.Close()

	req := xproto.GetInputFocusRequest{}
	seq, _, err := d.sendRequestSync(requestInfo{body: req, opcode: req.Opcode(), extension: req.Extension()})
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
}

// TestDisplayCloseClosesConnection verifies Close delegates to the
// underlying Connection exactly once even under concurrent callers.
func TestDisplayCloseClosesConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := mocks.NewMockConnection(ctrl)
	mockConn.EXPECT().ReadPacket(gomock.Any()).Return(0, nil, io.EOF).AnyTimes()
	mockConn.EXPECT().Close().Return(nil).Times(1)

	d := NewDisplay(mockConn, nil, nil)

	done := make(chan struct{})
	go func() { _ = d.Close(); close(done) }()
	_ = d.Close()
	<-done
}
