package identity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicq/clinicq/internal/platform/db"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

// =========== Account Repository ===========

type accountRepoPG struct{ pool *pgxpool.Pool }

func NewAccountRepoPG(pool *pgxpool.Pool) AccountRepository { return &accountRepoPG{pool: pool} }

func (r *accountRepoPG) conn(ctx context.Context) db.Queryer {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *accountRepoPG) Create(ctx context.Context, a *Account) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO accounts (phone_number, primary_national_id)
		VALUES ($1, $2) RETURNING id`,
		a.PhoneNumber, a.PrimaryNationalID).Scan(&a.ID)
}

func (r *accountRepoPG) scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.PhoneNumber, &a.PrimaryNationalID)
	if err != nil {
		return nil, httperr.FromNoRows(err, "account")
	}
	return &a, nil
}

func (r *accountRepoPG) GetByID(ctx context.Context, id int64) (*Account, error) {
	return r.scanAccount(r.conn(ctx).QueryRow(ctx,
		`SELECT id, phone_number, primary_national_id FROM accounts WHERE id = $1`, id))
}

func (r *accountRepoPG) GetByPhoneAndNationalID(ctx context.Context, phone, nationalID string) (*Account, error) {
	return r.scanAccount(r.conn(ctx).QueryRow(ctx,
		`SELECT id, phone_number, primary_national_id FROM accounts
		 WHERE phone_number = $1 AND primary_national_id = $2`, phone, nationalID))
}

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) conn(ctx context.Context) db.Queryer {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, account_id, name, age, national_id`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.AccountID, &p.Name, &p.Age, &p.NationalID)
	if err != nil {
		return nil, httperr.FromNoRows(err, "patient")
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (account_id, name, age, national_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		p.AccountID, p.Name, p.Age, p.NationalID).Scan(&p.ID)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *patientRepoPG) ListByAccount(ctx context.Context, accountID int64) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE account_id = $1 ORDER BY id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *patientRepoPG) CountByAccount(ctx context.Context, accountID int64) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE account_id = $1`, accountID).Scan(&count)
	return count, err
}

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn(ctx context.Context) db.Queryer {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `id, name, speciality, qualification, start_time, end_time,
	booking_window_days, max_patients_per_day, target_age_range,
	pharmacy_available, wheelchair_accessible`

func (r *doctorRepoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Speciality, &d.Qualification, &d.StartTime, &d.EndTime,
		&d.BookingWindowDays, &d.MaxPatientsPerDay, &d.TargetAgeRange,
		&d.PharmacyAvailable, &d.WheelchairAccessible)
	if err != nil {
		return nil, httperr.FromNoRows(err, "doctor")
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctors (name, speciality, qualification, start_time, end_time,
			booking_window_days, max_patients_per_day, target_age_range,
			pharmacy_available, wheelchair_accessible)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
		d.Name, d.Speciality, d.Qualification, d.StartTime, d.EndTime,
		d.BookingWindowDays, d.MaxPatientsPerDay, d.TargetAgeRange,
		d.PharmacyAvailable, d.WheelchairAccessible).Scan(&d.ID)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByIDForUpdate(ctx context.Context, id int64) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE id = $1 FOR UPDATE`, id))
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+doctorCols+` FROM doctors ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
