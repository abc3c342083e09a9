package ledger

import "time"

// DefaultTotalFee is the consultation fee a fresh ledger starts with.
const DefaultTotalFee = 500

// Ledger is one patient's prepaid credit record. Exactly one row exists per
// patient once anything references it; creation happens on first access.
type Ledger struct {
	ID               int64      `db:"id" json:"id"`
	PatientID        int64      `db:"patient_id" json:"patient_id"`
	TotalFee         int        `db:"total_fee" json:"total_fee"`
	CreditBalance    int        `db:"credit_balance" json:"credit_balance"`
	CreditExpiryDate *time.Time `db:"credit_expiry_date" json:"credit_expiry_date,omitempty"`
}

// DeductClamped subtracts amount from the balance, flooring at zero. It
// returns the amount actually removed. The mediator's late-charge endpoint
// uses this path.
func (l *Ledger) DeductClamped(amount int) int {
	if l.CreditBalance >= amount {
		l.CreditBalance -= amount
		return amount
	}
	taken := l.CreditBalance
	l.CreditBalance = 0
	return taken
}

// DeductUnclamped subtracts amount unconditionally; the balance may go
// negative. The queue engine's late-arrival flow uses this path. The two
// deduction behaviors are intentionally separate operations.
func (l *Ledger) DeductUnclamped(amount int) {
	l.CreditBalance -= amount
}
