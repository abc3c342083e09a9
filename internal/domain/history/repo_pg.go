package history

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicq/clinicq/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryer {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Append(ctx context.Context, rec *VisitRecord) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO visit_history (patient_id, visit_date, diagnosis, visit_type)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		rec.PatientID, rec.VisitDate, rec.Diagnosis, rec.VisitType).Scan(&rec.ID)
}

func (r *repoPG) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM visit_history WHERE patient_id = $1`, patientID).Scan(&count)
	return count, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*VisitRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM visit_history WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, visit_date, diagnosis, visit_type
		FROM visit_history WHERE patient_id = $1
		ORDER BY visit_date DESC, id DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*VisitRecord
	for rows.Next() {
		var rec VisitRecord
		if err := rows.Scan(&rec.ID, &rec.PatientID, &rec.VisitDate, &rec.Diagnosis, &rec.VisitType); err != nil {
			return nil, 0, err
		}
		items = append(items, &rec)
	}
	return items, total, rows.Err()
}
