package queue

import "context"

type Repository interface {
	// Enqueue inserts a new entry with the next token number.
	Enqueue(ctx context.Context, e *Entry) error
	GetByPatient(ctx context.Context, patientID int64) (*Entry, error)
	// GetByPatientForUpdate locks the patient's entry for the rest of the
	// ambient transaction.
	GetByPatientForUpdate(ctx context.Context, patientID int64) (*Entry, error)
	// NextToken reserves and returns maxToken+1. Concurrent callers must
	// serialize so no two entries ever receive the same token.
	NextToken(ctx context.Context) (int, error)
	Update(ctx context.Context, e *Entry) error
	// ListUnserved returns entries with served=false ascending by token.
	ListUnserved(ctx context.Context) ([]*Entry, error)
}
