package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicq/clinicq/internal/platform/httperr"
)

type mockTx struct{}

func (mockTx) WithTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

type mockRepo struct {
	ledgers map[int64]*Ledger
	nextID  int64
}

func (m *mockRepo) GetOrCreate(_ context.Context, patientID int64) (*Ledger, error) {
	if l, ok := m.ledgers[patientID]; ok {
		return l, nil
	}
	m.nextID++
	l := &Ledger{ID: m.nextID, PatientID: patientID, TotalFee: DefaultTotalFee}
	m.ledgers[patientID] = l
	return l, nil
}

func (m *mockRepo) GetOrCreateForUpdate(ctx context.Context, patientID int64) (*Ledger, error) {
	return m.GetOrCreate(ctx, patientID)
}

func (m *mockRepo) GetByPatientForUpdate(_ context.Context, patientID int64) (*Ledger, error) {
	l, ok := m.ledgers[patientID]
	if !ok {
		return nil, httperr.NotFound("ledger")
	}
	return l, nil
}

func (m *mockRepo) Save(_ context.Context, l *Ledger) error {
	m.ledgers[l.PatientID] = l
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := &mockRepo{ledgers: map[int64]*Ledger{}}
	return NewService(repo, mockTx{}), repo
}

func TestGetOrCreateLedgerIsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.GetOrCreateLedger(context.Background(), 7)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if first.TotalFee != DefaultTotalFee {
		t.Errorf("total fee = %d, want %d", first.TotalFee, DefaultTotalFee)
	}
	if first.CreditBalance != 0 {
		t.Errorf("fresh balance = %d, want 0", first.CreditBalance)
	}

	second, err := svc.GetOrCreateLedger(context.Background(), 7)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second read returned a different row: %d vs %d", second.ID, first.ID)
	}
}

func TestAdjustCredit(t *testing.T) {
	svc, _ := newTestService()

	l, err := svc.AdjustCredit(context.Background(), 1, 500, nil)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if l.CreditBalance != 500 {
		t.Errorf("balance = %d, want 500", l.CreditBalance)
	}
	if l.CreditExpiryDate != nil {
		t.Error("expiry should stay unset without an explicit value")
	}

	l, err = svc.AdjustCredit(context.Background(), 1, -200, nil)
	if err != nil {
		t.Fatalf("adjust down: %v", err)
	}
	if l.CreditBalance != 300 {
		t.Errorf("balance = %d, want 300", l.CreditBalance)
	}
}

func TestAdjustCreditOverwritesExpiry(t *testing.T) {
	svc, _ := newTestService()

	far := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.AdjustCredit(context.Background(), 1, 100, &far); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	// A later adjustment with an earlier date shortens the expiry. The last
	// write wins unconditionally.
	near := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l, err := svc.AdjustCredit(context.Background(), 1, 0, &near)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if !l.CreditExpiryDate.Equal(near) {
		t.Errorf("expiry = %s, want %s", l.CreditExpiryDate, near)
	}
}

func TestDeductClampedStopsAtZero(t *testing.T) {
	svc, repo := newTestService()
	repo.ledgers[1] = &Ledger{ID: 1, PatientID: 1, TotalFee: 500, CreditBalance: 60}

	l, deducted, err := svc.DeductClamped(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if deducted != 60 {
		t.Errorf("deducted = %d, want 60", deducted)
	}
	if l.CreditBalance != 0 {
		t.Errorf("balance = %d, want 0", l.CreditBalance)
	}
}

func TestDeductClampedFullAmount(t *testing.T) {
	svc, repo := newTestService()
	repo.ledgers[1] = &Ledger{ID: 1, PatientID: 1, TotalFee: 500, CreditBalance: 250}

	l, deducted, err := svc.DeductClamped(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if deducted != 100 {
		t.Errorf("deducted = %d, want 100", deducted)
	}
	if l.CreditBalance != 150 {
		t.Errorf("balance = %d, want 150", l.CreditBalance)
	}
}

func TestDeductClampedMissingLedger(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.DeductClamped(context.Background(), 1, 100)
	if !errors.Is(err, httperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeductUnclampedGoesNegative(t *testing.T) {
	l := &Ledger{CreditBalance: 30}
	l.DeductUnclamped(100)
	if l.CreditBalance != -70 {
		t.Errorf("balance = %d, want -70", l.CreditBalance)
	}
}
