package history

import "context"

// Repository is append-only on purpose: no update or delete methods exist.
type Repository interface {
	Append(ctx context.Context, rec *VisitRecord) error
	CountByPatient(ctx context.Context, patientID int64) (int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*VisitRecord, int, error)
}
