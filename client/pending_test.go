package client

import "testing"

func TestPendingTableExpectAndTake(t *testing.T) {
	var p pendingTable
	p.expect(1, true)
	p.expect(2, true)
	p.expect(3, false)

	if p.len() != 3 {
		t.Fatalf("expected 3 entries, got %d", p.len())
	}

	e, ok := p.take(2)
	if !ok {
		t.Fatal("expected to find sequence 2")
	}
	if e.sequence != 2 {
		t.Fatalf("got wrong entry: %+v", e)
	}
	if p.len() != 2 {
		t.Fatalf("expected 2 entries remaining, got %d", p.len())
	}

	if _, ok := p.take(2); ok {
		t.Fatal("sequence 2 should no longer be pending after take")
	}
}

func TestPendingTableFindDoesNotRemove(t *testing.T) {
	var p pendingTable
	p.expect(5, true)
	if _, ok := p.find(5); !ok {
		t.Fatal("expected to find sequence 5")
	}
	if p.len() != 1 {
		t.Fatal("find must not remove the entry")
	}
}

func TestPendingTablePurgeBefore(t *testing.T) {
	var p pendingTable
	p.expect(1, true)
	p.expect(2, true)
	p.expect(3, true)

	purged := p.purgeBefore(3)
	if len(purged) != 2 {
		t.Fatalf("expected 2 purged entries, got %d", len(purged))
	}
	if purged[0].sequence != 1 || purged[1].sequence != 2 {
		t.Fatalf("unexpected purged sequences: %+v", purged)
	}
	if p.len() != 1 {
		t.Fatalf("expected 1 entry remaining, got %d", p.len())
	}
	if _, ok := p.find(3); !ok {
		t.Fatal("sequence 3 should survive the purge")
	}
}
