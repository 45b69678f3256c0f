// Package validate re-checks the structural invariants of an emitted
// dataset file as a separate, read-only pass: band cardinality, minimum
// lengths, and non-duplication within and across records. It collects
// every violation rather than stopping at the first.
package validate
