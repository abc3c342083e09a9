package ledger

import "context"

type Repository interface {
	// GetOrCreate returns the patient's ledger, inserting a zero-balance row
	// when none exists. Concurrent first access for the same patient yields
	// exactly one row.
	GetOrCreate(ctx context.Context, patientID int64) (*Ledger, error)
	// GetOrCreateForUpdate is GetOrCreate with the row locked for the rest
	// of the ambient transaction.
	GetOrCreateForUpdate(ctx context.Context, patientID int64) (*Ledger, error)
	// GetByPatientForUpdate locks and returns the ledger, or ErrNotFound
	// when the patient has none.
	GetByPatientForUpdate(ctx context.Context, patientID int64) (*Ledger, error)
	Save(ctx context.Context, l *Ledger) error
}
