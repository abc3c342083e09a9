package scheduling

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	// CountByDoctorAndDate counts live appointments for one doctor's day.
	// The capacity check reads it under the doctor row lock.
	CountByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) (int, error)
	// Delete removes the row entirely; consulted appointments are not
	// archived.
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error)
}
