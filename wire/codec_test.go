package wire

import "testing"

func TestPutGetUint8RoundTrip(t *testing.T) {
	buf := make([]byte, 1)
	if n := PutUint8(buf, 0xAB); n != 1 {
		t.Fatalf("PutUint8 returned %d, want 1", n)
	}
	if got := GetUint8(buf); got != 0xAB {
		t.Fatalf("GetUint8 = %#x, want 0xAB", got)
	}
}

func TestPutGetUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	if n := PutUint16(buf, 0x1234); n != 2 {
		t.Fatalf("PutUint16 returned %d, want 2", n)
	}
	if got := GetUint16(buf); got != 0x1234 {
		t.Fatalf("GetUint16 = %#x, want 0x1234", got)
	}
	// X11 is little-endian on the wire regardless of host order.
	if buf[0] != 0x34 || buf[1] != 0x12 {
		t.Fatalf("PutUint16 wrote %v, want little-endian [0x34 0x12]", buf)
	}
}

func TestPutGetUint32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	if n := PutUint32(buf, 0xDEADBEEF); n != 4 {
		t.Fatalf("PutUint32 returned %d, want 4", n)
	}
	if got := GetUint32(buf); got != 0xDEADBEEF {
		t.Fatalf("GetUint32 = %#x, want 0xDEADBEEF", got)
	}
}

func TestPutGetBoolRoundTrip(t *testing.T) {
	buf := make([]byte, 1)
	PutBool(buf, true)
	if !GetBool(buf) {
		t.Fatalf("GetBool = false after PutBool(true)")
	}
	PutBool(buf, false)
	if GetBool(buf) {
		t.Fatalf("GetBool = true after PutBool(false)")
	}
}

func TestPadLenAndPad4(t *testing.T) {
	cases := []struct{ n, wantPad, wantPad4 int }{
		{0, 0, 0},
		{1, 3, 4},
		{2, 2, 4},
		{3, 1, 4},
		{4, 0, 4},
		{5, 3, 8},
	}
	for _, c := range cases {
		if got := PadLen(c.n); got != c.wantPad {
			t.Errorf("PadLen(%d) = %d, want %d", c.n, got, c.wantPad)
		}
		if got := Pad4(c.n); got != c.wantPad4 {
			t.Errorf("Pad4(%d) = %d, want %d", c.n, got, c.wantPad4)
		}
	}
}

func TestPutStringAndZeroPad(t *testing.T) {
	buf := make([]byte, 8)
	n := PutString(buf, "GLX")
	if n != 3 {
		t.Fatalf("PutString returned %d, want 3", n)
	}
	ZeroPad(buf[3:], 5)
	for i, b := range buf[3:] {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: %v", i, buf)
		}
	}
}
