package queue

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicq/clinicq/internal/platform/db"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

// tokenLockKey is the advisory lock key serializing token issuance.
const tokenLockKey = 0x71756575 // "queu"

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryer {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const entryCols = `id, patient_id, token_number, issued_at, served`

func (r *repoPG) scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.PatientID, &e.TokenNumber, &e.IssuedAt, &e.Served)
	if err != nil {
		return nil, httperr.FromNoRows(err, "queue entry")
	}
	return &e, nil
}

func (r *repoPG) Enqueue(ctx context.Context, e *Entry) error {
	token, err := r.NextToken(ctx)
	if err != nil {
		return err
	}
	e.TokenNumber = token
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO queue_entries (patient_id, token_number, issued_at, served)
		VALUES ($1, $2, NOW(), FALSE) RETURNING id, issued_at`,
		e.PatientID, e.TokenNumber).Scan(&e.ID, &e.IssuedAt)
}

func (r *repoPG) GetByPatient(ctx context.Context, patientID int64) (*Entry, error) {
	return r.scanEntry(r.conn(ctx).QueryRow(ctx,
		`SELECT `+entryCols+` FROM queue_entries WHERE patient_id = $1`, patientID))
}

func (r *repoPG) GetByPatientForUpdate(ctx context.Context, patientID int64) (*Entry, error) {
	return r.scanEntry(r.conn(ctx).QueryRow(ctx,
		`SELECT `+entryCols+` FROM queue_entries WHERE patient_id = $1 FOR UPDATE`, patientID))
}

// NextToken serializes issuance on a transaction-scoped advisory lock so
// concurrent callers cannot read the same max. The unique constraint on
// token_number backstops the lock.
func (r *repoPG) NextToken(ctx context.Context) (int, error) {
	if db.TxFromContext(ctx) != nil {
		if _, err := r.conn(ctx).Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, tokenLockKey); err != nil {
			return 0, err
		}
	}
	var max int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(MAX(token_number), 0) FROM queue_entries`).Scan(&max); err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *repoPG) Update(ctx context.Context, e *Entry) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE queue_entries
		SET token_number = $2, issued_at = $3, served = $4
		WHERE id = $1`,
		e.ID, e.TokenNumber, e.IssuedAt, e.Served)
	return err
}

func (r *repoPG) ListUnserved(ctx context.Context) ([]*Entry, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+entryCols+` FROM queue_entries WHERE served = FALSE ORDER BY token_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
