package queue

import (
	"context"
	"time"

	"github.com/clinicq/clinicq/internal/domain/identity"
	"github.com/clinicq/clinicq/internal/domain/ledger"
	"github.com/clinicq/clinicq/internal/platform/db"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

// LatePenalty is the fixed deduction applied when a checked-in patient is
// moved to the back of the queue.
const LatePenalty = 100

// creditExpiryWorkdays is how far a late-arrival penalty pushes the credit
// expiry, in working days.
const creditExpiryWorkdays = 7

// PatientDirectory resolves patient existence. identity.PatientRepository
// satisfies it.
type PatientDirectory interface {
	GetByID(ctx context.Context, id int64) (*identity.Patient, error)
}

type Service struct {
	entries  Repository
	ledgers  ledger.Repository
	patients PatientDirectory
	tx       db.TxRunner
}

func NewService(entries Repository, ledgers ledger.Repository, patients PatientDirectory, tx db.TxRunner) *Service {
	return &Service{entries: entries, ledgers: ledgers, patients: patients, tx: tx}
}

// TriggerLateArrival moves the patient's queue entry to the back of the line
// and charges the late penalty: the entry receives maxToken+1 with a fresh
// issuance timestamp, the ledger loses LatePenalty unclamped, and the credit
// expiry is refreshed to seven working days out. The queue write and the
// ledger write commit together or not at all.
func (s *Service) TriggerLateArrival(ctx context.Context, patientID int64) (*Entry, *ledger.Ledger, error) {
	if patientID <= 0 {
		return nil, nil, httperr.Invalid("patientId")
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, nil, err
	}

	var (
		entry *Entry
		led   *ledger.Ledger
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		e, err := s.entries.GetByPatientForUpdate(ctx, patientID)
		if err != nil {
			return err
		}

		token, err := s.entries.NextToken(ctx)
		if err != nil {
			return err
		}
		e.TokenNumber = token
		e.IssuedAt = time.Now()
		if err := s.entries.Update(ctx, e); err != nil {
			return err
		}

		l, err := s.ledgers.GetOrCreateForUpdate(ctx, patientID)
		if err != nil {
			return err
		}
		l.DeductUnclamped(LatePenalty)
		expiry := AddWorkingDays(time.Now(), creditExpiryWorkdays)
		l.CreditExpiryDate = &expiry
		if err := s.ledgers.Save(ctx, l); err != nil {
			return err
		}

		entry, led = e, l
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return entry, led, nil
}

// CurrentQueue returns the unserved entries ascending by token number. It is
// a fresh read on every call; nothing is cached.
func (s *Service) CurrentQueue(ctx context.Context) ([]*Entry, error) {
	return s.entries.ListUnserved(ctx)
}

// CheckIn places a patient at the back of the queue with a new token. The
// surrounding check-in workflow (vitals, screening) lives outside this
// service; this only issues the token.
func (s *Service) CheckIn(ctx context.Context, patientID int64) (*Entry, error) {
	if patientID <= 0 {
		return nil, httperr.Invalid("patientId")
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	var entry *Entry
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		e := &Entry{PatientID: patientID}
		if err := s.entries.Enqueue(ctx, e); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
