package identity

import "context"

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByPhoneAndNationalID(ctx context.Context, phone, nationalID string) (*Account, error)
}

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*Patient, error)
	CountByAccount(ctx context.Context, accountID int64) (int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	// GetByIDForUpdate locks the doctor row for the rest of the ambient
	// transaction. The scheduling engine serializes capacity checks on it.
	GetByIDForUpdate(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
}
