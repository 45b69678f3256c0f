package synth

import "sync"

// Ledger tracks every string emitted across one run, enforcing the
// dataset-wide uniqueness invariant. It is explicit state owned by the
// caller, never package-global, so independent runs and tests hold
// isolated instances. Safe for concurrent use.
type Ledger struct {
	mu   sync.Mutex
	used map[string]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{used: make(map[string]struct{})}
}

// Len returns the number of reserved strings.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.used)
}

// Used reports whether s is already reserved.
func (l *Ledger) Used(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.used[s]
	return ok
}

// Begin opens a transaction scoped to one record build. Reservations
// made through the transaction become visible to other reservers
// immediately but are released as a unit by Rollback.
func (l *Ledger) Begin() *Tx {
	return &Tx{ledger: l}
}

func (l *Ledger) reserve(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.used[s]; taken {
		return false
	}
	l.used[s] = struct{}{}
	return true
}

func (l *Ledger) release(strings []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range strings {
		delete(l.used, s)
	}
}

// Tx groups the reservations for a single anchor so they commit or roll
// back atomically. Not safe for concurrent use; each anchor build owns
// its own transaction.
type Tx struct {
	ledger   *Ledger
	reserved []string
	done     bool
}

// Reserve claims s for this record. Returns false when s is empty or
// already claimed anywhere in the run, including earlier in this same
// transaction.
func (tx *Tx) Reserve(s string) bool {
	if tx.done || s == "" {
		return false
	}
	if !tx.ledger.reserve(s) {
		return false
	}
	tx.reserved = append(tx.reserved, s)
	return true
}

// Commit makes every reservation permanent for the run.
func (tx *Tx) Commit() {
	tx.done = true
	tx.reserved = nil
}

// Rollback releases every reservation made through this transaction.
// Safe to call after Commit, where it is a no-op; this allows the usual
// defer tx.Rollback() pattern.
func (tx *Tx) Rollback() {
	if tx.done {
		return
	}
	tx.done = true
	tx.ledger.release(tx.reserved)
	tx.reserved = nil
}
