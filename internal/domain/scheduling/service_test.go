package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicq/clinicq/internal/domain/history"
	"github.com/clinicq/clinicq/internal/domain/identity"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

type mockTx struct{}

func (mockTx) WithTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

type mockPatients struct {
	known map[int64]bool
}

func (m *mockPatients) GetByID(_ context.Context, id int64) (*identity.Patient, error) {
	if !m.known[id] {
		return nil, httperr.NotFound("patient")
	}
	return &identity.Patient{ID: id}, nil
}

type mockDoctors struct {
	doctors map[int64]*identity.Doctor
}

func (m *mockDoctors) GetByID(_ context.Context, id int64) (*identity.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, httperr.NotFound("doctor")
	}
	return d, nil
}

func (m *mockDoctors) GetByIDForUpdate(ctx context.Context, id int64) (*identity.Doctor, error) {
	return m.GetByID(ctx, id)
}

type mockAppointments struct {
	appts  map[int64]*Appointment
	nextID int64
}

func (m *mockAppointments) Create(_ context.Context, a *Appointment) error {
	m.nextID++
	a.ID = m.nextID
	m.appts[a.ID] = a
	return nil
}

func (m *mockAppointments) GetByID(_ context.Context, id int64) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, httperr.NotFound("appointment")
	}
	return a, nil
}

func (m *mockAppointments) CountByDoctorAndDate(_ context.Context, doctorID int64, date time.Time) (int, error) {
	count := 0
	for _, a := range m.appts {
		if a.DoctorID == doctorID && a.VisitDate.Format("2006-01-02") == date.Format("2006-01-02") {
			count++
		}
	}
	return count, nil
}

func (m *mockAppointments) Delete(_ context.Context, id int64) error {
	if _, ok := m.appts[id]; !ok {
		return httperr.NotFound("appointment")
	}
	delete(m.appts, id)
	return nil
}

func (m *mockAppointments) ListByPatient(_ context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.appts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

type mockVisits struct {
	records []*history.VisitRecord
}

func (m *mockVisits) Append(_ context.Context, rec *history.VisitRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *mockVisits) CountByPatient(_ context.Context, patientID int64) (int, error) {
	count := 0
	for _, r := range m.records {
		if r.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (m *mockVisits) ListByPatient(_ context.Context, patientID int64, limit, offset int) ([]*history.VisitRecord, int, error) {
	var out []*history.VisitRecord
	for _, r := range m.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func newTestService(capacity int) (*Service, *mockAppointments, *mockVisits) {
	appts := &mockAppointments{appts: map[int64]*Appointment{}}
	visits := &mockVisits{}
	patients := &mockPatients{known: map[int64]bool{1: true, 2: true}}
	doctors := &mockDoctors{doctors: map[int64]*identity.Doctor{
		10: {ID: 10, Name: "Dr. Kumar", MaxPatientsPerDay: &capacity},
	}}
	svc := NewService(appts, visits, patients, doctors, mockTx{})
	return svc, appts, visits
}

func bookingFor(patientID int64, date time.Time) BookingRequest {
	return BookingRequest{
		PatientID: patientID,
		DoctorID:  10,
		Date:      date,
		TimeSlot:  "10:00 AM",
	}
}

func TestSchedule(t *testing.T) {
	svc, _, _ := newTestService(15)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	appt, err := svc.Schedule(context.Background(), bookingFor(1, date))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if appt.ID == 0 {
		t.Error("expected an assigned id")
	}
	if appt.Status != StatusScheduled {
		t.Errorf("status = %q, want %q", appt.Status, StatusScheduled)
	}
}

func TestScheduleCapacityBoundary(t *testing.T) {
	svc, appts, _ := newTestService(1)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Schedule(context.Background(), bookingFor(1, date)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := svc.Schedule(context.Background(), bookingFor(2, date))
	if !errors.Is(err, httperr.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if len(appts.appts) != 1 {
		t.Errorf("appointment count = %d, want 1", len(appts.appts))
	}

	// A different day is unaffected.
	nextDay := date.AddDate(0, 0, 1)
	if _, err := svc.Schedule(context.Background(), bookingFor(2, nextDay)); err != nil {
		t.Fatalf("next-day booking: %v", err)
	}
}

func TestScheduleUnknownPatient(t *testing.T) {
	svc, _, _ := newTestService(15)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.Schedule(context.Background(), bookingFor(99, date))
	if !errors.Is(err, httperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleValidation(t *testing.T) {
	svc, _, _ := newTestService(15)

	_, err := svc.Schedule(context.Background(), BookingRequest{DoctorID: 10, Date: time.Now()})
	if !errors.Is(err, httperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing patient, got %v", err)
	}

	_, err = svc.Schedule(context.Background(), BookingRequest{PatientID: 1, DoctorID: 10})
	if !errors.Is(err, httperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero date, got %v", err)
	}
}

func TestMarkConsulted(t *testing.T) {
	svc, appts, visits := newTestService(15)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	appt, err := svc.Schedule(context.Background(), bookingFor(1, date))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if err := svc.MarkConsulted(context.Background(), appt.ID, "seasonal flu"); err != nil {
		t.Fatalf("MarkConsulted: %v", err)
	}

	if len(visits.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(visits.records))
	}
	rec := visits.records[0]
	if rec.VisitType != history.FirstVisit {
		t.Errorf("visit type = %q, want %q", rec.VisitType, history.FirstVisit)
	}
	if rec.Diagnosis != "seasonal flu" {
		t.Errorf("diagnosis = %q", rec.Diagnosis)
	}
	if !rec.VisitDate.Equal(date) {
		t.Errorf("visit date = %s, want %s", rec.VisitDate, date)
	}
	if len(appts.appts) != 0 {
		t.Error("expected appointment to be deleted")
	}
}

func TestMarkConsultedSecondVisitIsFollowUp(t *testing.T) {
	svc, _, visits := newTestService(15)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first, _ := svc.Schedule(context.Background(), bookingFor(1, date))
	if err := svc.MarkConsulted(context.Background(), first.ID, "flu"); err != nil {
		t.Fatalf("first consult: %v", err)
	}

	second, _ := svc.Schedule(context.Background(), bookingFor(1, date.AddDate(0, 0, 7)))
	if err := svc.MarkConsulted(context.Background(), second.ID, "follow up"); err != nil {
		t.Fatalf("second consult: %v", err)
	}

	if visits.records[1].VisitType != history.FollowUp {
		t.Errorf("visit type = %q, want %q", visits.records[1].VisitType, history.FollowUp)
	}
}

func TestMarkConsultedTwiceFails(t *testing.T) {
	svc, _, _ := newTestService(15)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	appt, _ := svc.Schedule(context.Background(), bookingFor(1, date))
	if err := svc.MarkConsulted(context.Background(), appt.ID, "flu"); err != nil {
		t.Fatalf("first consult: %v", err)
	}

	err := svc.MarkConsulted(context.Background(), appt.ID, "flu")
	if !errors.Is(err, httperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second consult, got %v", err)
	}
}

func TestScheduleNoCapacityLimit(t *testing.T) {
	appts := &mockAppointments{appts: map[int64]*Appointment{}}
	patients := &mockPatients{known: map[int64]bool{1: true}}
	doctors := &mockDoctors{doctors: map[int64]*identity.Doctor{
		10: {ID: 10, Name: "Dr. Kumar"}, // no MaxPatientsPerDay
	}}
	svc := NewService(appts, &mockVisits{}, patients, doctors, mockTx{})

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		if _, err := svc.Schedule(context.Background(), bookingFor(1, date)); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}
}
