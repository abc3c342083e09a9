package vitals

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

func (r *repoPG) Create(ctx context.Context, l *Log) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO vitals_logs (user_name, heart_rate, status, logged_at)
		VALUES ($1, $2, $3, NOW()) RETURNING id, logged_at`,
		l.UserName, l.HeartRate, l.Status).Scan(&l.ID, &l.LoggedAt)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Log, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vitals_logs`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, user_name, heart_rate, status, logged_at
		FROM vitals_logs ORDER BY logged_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Log
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.UserName, &l.HeartRate, &l.Status, &l.LoggedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &l)
	}
	return items, total, rows.Err()
}
