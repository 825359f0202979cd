package ledger

import "errors"

var (
	// ErrNoDependencyIndex is returned by ForwardIDByCreditID on a Bumpable
	// that has no credit-id index, e.g. bare market data used without the
	// prefetch cache in front of it.
	ErrNoDependencyIndex = errors.New("ledger: forward id by credit id mapping not available, use the prefetch cache")

	// ErrWrongLedgerType is returned when a Saveable produced by one
	// Bumpable is handed to a different Bumpable's bump/restore methods.
	ErrWrongLedgerType = errors.New("ledger: mismatching save space")
)
