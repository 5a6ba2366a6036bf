package xkb

import "testing"

func TestDecodeActionRoundTrip(t *testing.T) {
	buf := []byte{byte(SaTypeSetMods), 1, 2, 3, 4, 5, 6, 7}
	act, n, err := DecodeAction(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != ActionSize {
		t.Fatalf("expected to consume %d bytes, got %d", ActionSize, n)
	}
	if act.Type() != SaTypeSetMods {
		t.Fatalf("expected SaTypeSetMods, got %v", act.Type())
	}
	sm, ok := act.(SetMods)
	if !ok {
		t.Fatalf("expected SetMods, got %T", act)
	}

	out := make([]byte, ActionSize)
	sm.Encode(out)
	for i, b := range out {
		if b != buf[i] {
			t.Fatalf("round trip mismatch at byte %d: got %d want %d", i, b, buf[i])
		}
	}
}

func TestDecodeActionUnknownDiscriminatorErrors(t *testing.T) {
	buf := []byte{200, 0, 0, 0, 0, 0, 0, 0}
	if _, _, err := DecodeAction(buf); err == nil {
		t.Fatal("expected an error for an unknown action discriminator, got nil")
	}
}

func TestDecodeActionShortBufferErrors(t *testing.T) {
	buf := []byte{byte(SaTypeNoAction), 0, 0}
	if _, _, err := DecodeAction(buf); err == nil {
		t.Fatal("expected an error for a too-short buffer, got nil")
	}
}
