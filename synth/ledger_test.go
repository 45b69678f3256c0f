package synth

import "testing"

func TestLedger_ReserveAndCollision(t *testing.T) {
	l := NewLedger()
	tx := l.Begin()

	if !tx.Reserve("alpha") {
		t.Fatal("first Reserve should succeed")
	}
	if tx.Reserve("alpha") {
		t.Error("duplicate Reserve in same tx should fail")
	}
	if tx.Reserve("") {
		t.Error("empty string must never be reservable")
	}

	other := l.Begin()
	if other.Reserve("alpha") {
		t.Error("reservation must be visible across transactions before commit")
	}
	if !other.Reserve("beta") {
		t.Error("unrelated string should be reservable")
	}
}

func TestLedger_Rollback(t *testing.T) {
	l := NewLedger()
	tx := l.Begin()
	tx.Reserve("alpha")
	tx.Reserve("beta")
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	tx.Rollback()
	if l.Len() != 0 {
		t.Errorf("Len() after rollback = %d, want 0", l.Len())
	}
	if l.Used("alpha") {
		t.Error("rolled-back string should be free")
	}

	// A dead transaction accepts nothing.
	if tx.Reserve("gamma") {
		t.Error("Reserve after Rollback should fail")
	}
}

func TestLedger_CommitThenRollbackIsNoOp(t *testing.T) {
	l := NewLedger()
	tx := l.Begin()
	tx.Reserve("alpha")
	tx.Commit()
	tx.Rollback() // the usual defer pattern

	if !l.Used("alpha") {
		t.Error("committed string must survive a deferred Rollback")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLedger_IsolatedInstances(t *testing.T) {
	a, b := NewLedger(), NewLedger()
	txA := a.Begin()
	txA.Reserve("shared")
	txA.Commit()

	txB := b.Begin()
	if !txB.Reserve("shared") {
		t.Error("ledgers must not share state")
	}
}
