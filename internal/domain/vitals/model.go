package vitals

import "time"

// Log is a single self-reported vitals reading from the health tracker.
type Log struct {
	ID        int64     `db:"id" json:"id"`
	UserName  string    `db:"user_name" json:"user_name"`
	HeartRate int       `db:"heart_rate" json:"heart_rate"`
	Status    string    `db:"status" json:"status"`
	LoggedAt  time.Time `db:"logged_at" json:"logged_at"`
}
