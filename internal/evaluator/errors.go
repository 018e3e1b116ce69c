// Package evaluator computes one company's Output from an Algorithm
// and its Input: per-atomic op dispatch and the write-once
// ResolvedValues table each company owns exclusively.
package evaluator

import "fmt"

// ContractError is a fatal error raised while evaluating a single
// atomic: a dependency count or constant-presence mismatch against its
// OperationType, a dimension mismatch between operands, or a division
// by a zero-valued divisor.
type ContractError struct {
	Atomic string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("atomic %q: %s", e.Atomic, e.Reason)
}

func newContractError(name, format string, args ...interface{}) *ContractError {
	return &ContractError{Atomic: name, Reason: fmt.Sprintf(format, args...)}
}
