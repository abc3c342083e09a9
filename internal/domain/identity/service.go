package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicq/clinicq/internal/platform/httperr"
)

type Service struct {
	accounts AccountRepository
	patients PatientRepository
	doctors  DoctorRepository
}

func NewService(accounts AccountRepository, patients PatientRepository, doctors DoctorRepository) *Service {
	return &Service{accounts: accounts, patients: patients, doctors: doctors}
}

// Login finds the account matching phone and national id, creating it when
// none exists. Registration and login are the same operation at this clinic.
func (s *Service) Login(ctx context.Context, phone, nationalID string) (*Account, bool, error) {
	if phone == "" {
		return nil, false, httperr.Invalid("phone_number")
	}

	a, err := s.accounts.GetByPhoneAndNationalID(ctx, phone, nationalID)
	if err == nil {
		return a, false, nil
	}
	if !errors.Is(err, httperr.ErrNotFound) {
		return nil, false, err
	}

	a = &Account{PhoneNumber: phone}
	if nationalID != "" {
		a.PrimaryNationalID = &nationalID
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, false, fmt.Errorf("create account: %w", err)
	}
	return a, true, nil
}

// AddPatient registers a patient profile under an account.
func (s *Service) AddPatient(ctx context.Context, accountID int64, p *Patient) error {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return err
	}

	count, err := s.patients.CountByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if count >= MaxPatientsPerAccount {
		return fmt.Errorf("account %d already holds %d patients: %w",
			accountID, MaxPatientsPerAccount, httperr.ErrInvalidInput)
	}

	p.AccountID = &accountID
	return s.patients.Create(ctx, p)
}

func (s *Service) AccountPatients(ctx context.Context, accountID int64) ([]*Patient, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.patients.ListByAccount(ctx, accountID)
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return httperr.Invalid("name")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return httperr.Invalid("name")
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}
