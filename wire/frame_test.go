package wire

import "testing"

type fixedBody struct {
	data []byte
}

func (f fixedBody) Size() int { return len(f.data) }

func (f fixedBody) Encode(buf []byte) int {
	return copy(buf, f.data)
}

func TestEncodeRequestCoreNoBody(t *testing.T) {
	// GetInputFocus: opcode 43, no body beyond the 4-byte header.
	body := fixedBody{data: []byte{0, 0, 0, 0}}
	got := EncodeRequest(body, 43, nil)
	want := []byte{43, 0, 0x01, 0x00}
	if string(got) != string(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestEncodeRequestExtensionPadding(t *testing.T) {
	// Body with a minor opcode at byte 1 and 3 trailing bytes needing
	// padding to the next multiple of 4.
	body := fixedBody{data: []byte{0, 9, 1, 2, 3}}
	ext := uint8(149)
	got := EncodeRequest(body, 21, &ext)

	if len(got) != 8 {
		t.Fatalf("expected padded length 8, got %d", len(got))
	}
	if got[0] != 149 {
		t.Fatalf("expected extension opcode in byte 0, got %d", got[0])
	}
	if got[1] != 21 {
		t.Fatalf("expected request opcode in byte 1, got %d", got[1])
	}
	if GetUint16(got[2:4]) != 2 {
		t.Fatalf("expected length 2 (in 4-byte units), got %d", GetUint16(got[2:4]))
	}
	for i, b := range got[5:8] {
		if b != 0 {
			t.Fatalf("padding byte %d not zero: %d", i, b)
		}
	}
}

func TestDetectWorkaroundGetFBConfigsAlwaysTagged(t *testing.T) {
	if DetectWorkaround("GLX", 21, nil) != GlxFbconfigLengthFix {
		t.Fatal("expected GetFBConfigs (opcode 21) to always be tagged")
	}
}

func TestDetectWorkaroundVendorPrivateRequiresMagic(t *testing.T) {
	framed := make([]byte, 36)
	PutUint32(framed[32:36], 0x10004)
	if got := DetectWorkaround("GLX", 17, framed); got != GlxFbconfigLengthFix {
		t.Fatalf("expected workaround tagged, got %v", got)
	}

	framed2 := make([]byte, 36)
	PutUint32(framed2[32:36], 0x1)
	if got := DetectWorkaround("GLX", 17, framed2); got != NoWorkaround {
		t.Fatalf("expected no workaround, got %v", got)
	}
}

func TestDetectWorkaroundOtherExtensionsNeverTagged(t *testing.T) {
	if DetectWorkaround("RANDR", 21, nil) != NoWorkaround {
		t.Fatal("non-GLX extensions must never be tagged")
	}
}

func TestAdditionalBytesOrdinaryReply(t *testing.T) {
	first8 := make([]byte, 8)
	first8[0] = 1
	PutUint32(first8[4:8], 5)
	if got := AdditionalBytes(first8, NoWorkaround); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
}

func TestAdditionalBytesGlxWorkaroundDoublesLength(t *testing.T) {
	first8 := make([]byte, 8)
	first8[0] = 1
	PutUint32(first8[4:8], 3)
	if got := AdditionalBytes(first8, GlxFbconfigLengthFix); got != 24 {
		t.Fatalf("expected 24 (3*8), got %d", got)
	}
}

func TestAdditionalBytesErrorAndEventAreZero(t *testing.T) {
	errFrame := make([]byte, 8)
	errFrame[0] = 0
	PutUint32(errFrame[4:8], 99)
	if got := AdditionalBytes(errFrame, NoWorkaround); got != 0 {
		t.Fatalf("expected 0 for error frame, got %d", got)
	}

	eventFrame := make([]byte, 8)
	eventFrame[0] = 2
	PutUint32(eventFrame[4:8], 99)
	if got := AdditionalBytes(eventFrame, NoWorkaround); got != 0 {
		t.Fatalf("expected 0 for ordinary event frame, got %d", got)
	}
}
