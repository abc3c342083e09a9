package queue

import "time"

// Entry is a patient's position in the live queue. A patient holds at most
// one live entry; token numbers are unique and strictly increasing in
// issuance order across the whole queue.
type Entry struct {
	ID          int64     `db:"id" json:"id"`
	PatientID   int64     `db:"patient_id" json:"patient_id"`
	TokenNumber int       `db:"token_number" json:"token_number"`
	IssuedAt    time.Time `db:"issued_at" json:"issued_at"`
	Served      bool      `db:"served" json:"served"`
}
