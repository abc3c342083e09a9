package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicq/clinicq/internal/domain/history"
	"github.com/clinicq/clinicq/internal/domain/identity"
	"github.com/clinicq/clinicq/internal/platform/db"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

// PatientDirectory resolves patient existence. identity.PatientRepository
// satisfies it.
type PatientDirectory interface {
	GetByID(ctx context.Context, id int64) (*identity.Patient, error)
}

// DoctorDirectory resolves doctors, with a locking read for the capacity
// check. identity.DoctorRepository satisfies it.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id int64) (*identity.Doctor, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*identity.Doctor, error)
}

type Service struct {
	appointments Repository
	visits       history.Repository
	patients     PatientDirectory
	doctors      DoctorDirectory
	tx           db.TxRunner
}

func NewService(appointments Repository, visits history.Repository, patients PatientDirectory, doctors DoctorDirectory, tx db.TxRunner) *Service {
	return &Service{
		appointments: appointments,
		visits:       visits,
		patients:     patients,
		doctors:      doctors,
		tx:           tx,
	}
}

// BookingRequest carries the inputs for Schedule.
type BookingRequest struct {
	PatientID int64
	DoctorID  int64
	Date      time.Time
	TimeSlot  string
	IsPremium bool
}

// Schedule books an appointment against the doctor's daily capacity. The
// doctor row is locked for the duration of the transaction so that two
// concurrent bookings at the capacity boundary cannot both pass the count.
// The date is taken as given; the doctor's booking window is not enforced.
func (s *Service) Schedule(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if req.PatientID <= 0 {
		return nil, httperr.Invalid("patientId")
	}
	if req.DoctorID <= 0 {
		return nil, httperr.Invalid("doctorId")
	}
	if req.Date.IsZero() {
		return nil, httperr.Invalid("date")
	}

	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}

	var appt *Appointment
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		d, err := s.doctors.GetByIDForUpdate(ctx, req.DoctorID)
		if err != nil {
			return err
		}

		if d.MaxPatientsPerDay != nil {
			existing, err := s.appointments.CountByDoctorAndDate(ctx, d.ID, req.Date)
			if err != nil {
				return err
			}
			if existing >= *d.MaxPatientsPerDay {
				return fmt.Errorf("doctor %d is fully booked on %s: %w",
					d.ID, req.Date.Format("2006-01-02"), httperr.ErrCapacityExceeded)
			}
		}

		a := &Appointment{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			VisitDate: req.Date,
			TimeSlot:  req.TimeSlot,
			IsPremium: req.IsPremium,
			Status:    StatusScheduled,
		}
		if err := s.appointments.Create(ctx, a); err != nil {
			return err
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// MarkConsulted closes out a visit: it derives the visit type from the
// patient's prior history, appends the history row dated with the
// appointment's date, and deletes the appointment outright. Calling it twice
// for the same id fails the second time because the row is gone.
func (s *Service) MarkConsulted(ctx context.Context, appointmentID int64, diagnosis string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.appointments.GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}

		prior, err := s.visits.CountByPatient(ctx, a.PatientID)
		if err != nil {
			return err
		}

		rec := &history.VisitRecord{
			PatientID: a.PatientID,
			VisitDate: a.VisitDate,
			Diagnosis: diagnosis,
			VisitType: history.Classify(prior),
		}
		if err := s.visits.Append(ctx, rec); err != nil {
			return err
		}

		return s.appointments.Delete(ctx, a.ID)
	})
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}
