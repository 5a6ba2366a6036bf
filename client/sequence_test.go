package client

import "testing"

func TestWidenSameEpoch(t *testing.T) {
	if got := widen(42, 1042); got != 42 {
		t.Fatalf("got %d want 42", got)
	}
}

func TestWidenWrapsBackAnEpoch(t *testing.T) {
	issued := uint64(1<<16) + 5
	if got := widen(65530, issued); got != 65530 {
		t.Fatalf("got %d want 65530", got)
	}
}

func TestSequenceCounterIssuesIncreasing(t *testing.T) {
	var c sequenceCounter
	a := c.issue()
	b := c.issue()
	if b != a+1 {
		t.Fatalf("expected strictly increasing sequence numbers, got %d then %d", a, b)
	}
	if c.current() != b {
		t.Fatalf("current() should report the last issued value")
	}
}
