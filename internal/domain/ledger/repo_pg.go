package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicq/clinicq/internal/platform/db"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryer {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const ledgerCols = `id, patient_id, total_fee, credit_balance, credit_expiry_date`

func (r *repoPG) scanLedger(row pgx.Row) (*Ledger, error) {
	var l Ledger
	err := row.Scan(&l.ID, &l.PatientID, &l.TotalFee, &l.CreditBalance, &l.CreditExpiryDate)
	if err != nil {
		return nil, httperr.FromNoRows(err, "ledger")
	}
	return &l, nil
}

// getOrCreate inserts a default row unless one exists, then reads it back.
// The unique constraint on patient_id makes the insert race-safe: the loser
// of a concurrent first access hits ON CONFLICT DO NOTHING and reads the
// winner's row.
func (r *repoPG) getOrCreate(ctx context.Context, patientID int64, lock string) (*Ledger, error) {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO finance_ledgers (patient_id, total_fee, credit_balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (patient_id) DO NOTHING`,
		patientID, DefaultTotalFee)
	if err != nil {
		return nil, err
	}
	return r.scanLedger(r.conn(ctx).QueryRow(ctx,
		`SELECT `+ledgerCols+` FROM finance_ledgers WHERE patient_id = $1`+lock, patientID))
}

func (r *repoPG) GetOrCreate(ctx context.Context, patientID int64) (*Ledger, error) {
	return r.getOrCreate(ctx, patientID, ``)
}

func (r *repoPG) GetOrCreateForUpdate(ctx context.Context, patientID int64) (*Ledger, error) {
	return r.getOrCreate(ctx, patientID, ` FOR UPDATE`)
}

func (r *repoPG) GetByPatientForUpdate(ctx context.Context, patientID int64) (*Ledger, error) {
	return r.scanLedger(r.conn(ctx).QueryRow(ctx,
		`SELECT `+ledgerCols+` FROM finance_ledgers WHERE patient_id = $1 FOR UPDATE`, patientID))
}

func (r *repoPG) Save(ctx context.Context, l *Ledger) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE finance_ledgers
		SET total_fee = $2, credit_balance = $3, credit_expiry_date = $4
		WHERE id = $1`,
		l.ID, l.TotalFee, l.CreditBalance, l.CreditExpiryDate)
	return err
}
