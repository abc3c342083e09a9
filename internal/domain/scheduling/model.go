package scheduling

import "time"

// Appointment statuses. An appointment only ever holds StatusScheduled: on
// consult the row is deleted outright and visit history becomes the durable
// record, so no completed state exists.
const StatusScheduled = "scheduled"

// Appointment is one booked visit against a doctor's day. The date is a
// calendar day; TimeSlot is a free-text label, not a parsed time.
type Appointment struct {
	ID            int64     `db:"id" json:"id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	DoctorID      int64     `db:"doctor_id" json:"doctor_id"`
	VisitDate     time.Time `db:"visit_date" json:"visit_date"`
	TimeSlot      string    `db:"time_slot" json:"time_slot"`
	IsPremium     bool      `db:"is_premium" json:"is_premium"`
	Status        string    `db:"status" json:"status"`
	ETAMinutes    *int      `db:"eta_minutes" json:"eta_minutes,omitempty"`
	ClinicAddress *string   `db:"clinic_address" json:"clinic_address,omitempty"`
}
