package ledger

import (
	"context"
	"time"

	"github.com/clinicq/clinicq/internal/platform/db"
)

type Service struct {
	ledgers Repository
	tx      db.TxRunner
}

func NewService(ledgers Repository, tx db.TxRunner) *Service {
	return &Service{ledgers: ledgers, tx: tx}
}

// GetOrCreateLedger is the explicit get-or-create contract: reading a
// missing ledger brings it into existence with a zero balance and no expiry.
func (s *Service) GetOrCreateLedger(ctx context.Context, patientID int64) (*Ledger, error) {
	return s.ledgers.GetOrCreate(ctx, patientID)
}

// AdjustCredit adds amount (possibly negative) to the patient's balance. A
// non-nil expiry overwrites the stored expiry unconditionally, even when it
// shortens a previously extended one.
func (s *Service) AdjustCredit(ctx context.Context, patientID int64, amount int, expiry *time.Time) (*Ledger, error) {
	var out *Ledger
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		l, err := s.ledgers.GetOrCreateForUpdate(ctx, patientID)
		if err != nil {
			return err
		}
		l.CreditBalance += amount
		if expiry != nil {
			l.CreditExpiryDate = expiry
		}
		if err := s.ledgers.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

// DeductClamped removes up to amount from an existing ledger, never taking
// the balance below zero. Missing ledgers are an error on this path, not a
// creation trigger.
func (s *Service) DeductClamped(ctx context.Context, patientID int64, amount int) (*Ledger, int, error) {
	var (
		out      *Ledger
		deducted int
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		l, err := s.ledgers.GetByPatientForUpdate(ctx, patientID)
		if err != nil {
			return err
		}
		deducted = l.DeductClamped(amount)
		if err := s.ledgers.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, deducted, err
}
