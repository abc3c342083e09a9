package history

import "time"

// VisitType classifies a consultation relative to the patient's record.
type VisitType string

const (
	FirstVisit VisitType = "FIRST_VISIT"
	FollowUp   VisitType = "FOLLOW_UP"
)

// VisitRecord is one completed consultation. Records are append-only: the
// table is the clinic's permanent record after the appointment row is gone,
// so nothing ever updates or deletes them.
type VisitRecord struct {
	ID        int64     `db:"id" json:"id"`
	PatientID int64     `db:"patient_id" json:"patient_id"`
	VisitDate time.Time `db:"visit_date" json:"visit_date"`
	Diagnosis string    `db:"diagnosis" json:"diagnosis"`
	VisitType VisitType `db:"visit_type" json:"visit_type"`
}

// Classify derives the visit type from the number of prior records for the
// patient: any history at all makes the new visit a follow-up.
func Classify(priorVisits int) VisitType {
	if priorVisits > 0 {
		return FollowUp
	}
	return FirstVisit
}
