package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicq/clinicq/internal/domain/identity"
	"github.com/clinicq/clinicq/internal/domain/ledger"
	"github.com/clinicq/clinicq/internal/domain/queue"
	"github.com/clinicq/clinicq/internal/domain/scheduling"
)

// seed wipes every table and loads a small demo dataset: one doctor, one
// account with two patients, prepaid ledgers, one appointment for today and
// one queue entry holding token 1.
func seed(ctx context.Context, pool *pgxpool.Pool, clinicAddress string) error {
	_, err := pool.Exec(ctx, `
		TRUNCATE appointments, queue_entries, visit_history, finance_ledgers,
			vitals_logs, patients, accounts, doctors
		RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("clear tables: %w", err)
	}

	accounts := identity.NewAccountRepoPG(pool)
	patients := identity.NewPatientRepoPG(pool)
	doctors := identity.NewDoctorRepoPG(pool)
	appointments := scheduling.NewRepoPG(pool)
	entries := queue.NewRepoPG(pool)
	ledgers := ledger.NewRepoPG(pool)

	start, end := "09:00", "17:00"
	window, capacity := 30, 15
	ageRange := identity.AgeRangeAdult
	yes := true
	doctor := &identity.Doctor{
		Name:                 "Dr. Rajesh Kumar",
		Speciality:           "General Medicine",
		Qualification:        "MBBS, MD",
		StartTime:            &start,
		EndTime:              &end,
		BookingWindowDays:    &window,
		MaxPatientsPerDay:    &capacity,
		TargetAgeRange:       &ageRange,
		PharmacyAvailable:    &yes,
		WheelchairAccessible: &yes,
	}
	if err := doctors.Create(ctx, doctor); err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}

	nationalID := "123456789012"
	account := &identity.Account{PhoneNumber: "9876543210", PrimaryNationalID: &nationalID}
	if err := accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	demo := []*identity.Patient{
		{AccountID: &account.ID, Name: "Rajesh Sharma", Age: 35, NationalID: "ABHA-2024-001"},
		{AccountID: &account.ID, Name: "Priya Sharma", Age: 32, NationalID: "ABHA-2024-002"},
	}
	for _, p := range demo {
		if err := patients.Create(ctx, p); err != nil {
			return fmt.Errorf("create patient %s: %w", p.Name, err)
		}

		l, err := ledgers.GetOrCreate(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("create ledger for %s: %w", p.Name, err)
		}
		expiry := time.Now().AddDate(0, 6, 0)
		l.CreditBalance = 1000
		l.CreditExpiryDate = &expiry
		if err := ledgers.Save(ctx, l); err != nil {
			return fmt.Errorf("save ledger for %s: %w", p.Name, err)
		}
	}

	eta := 30
	appt := &scheduling.Appointment{
		PatientID:     demo[0].ID,
		DoctorID:      doctor.ID,
		VisitDate:     time.Now(),
		TimeSlot:      "10:00 AM",
		IsPremium:     false,
		Status:        scheduling.StatusScheduled,
		ETAMinutes:    &eta,
		ClinicAddress: &clinicAddress,
	}
	if err := appointments.Create(ctx, appt); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	if err := entries.Enqueue(ctx, &queue.Entry{PatientID: demo[0].ID}); err != nil {
		return fmt.Errorf("enqueue patient: %w", err)
	}

	fmt.Printf("Seeded doctor %d, account %d, patients %d and %d.\n",
		doctor.ID, account.ID, demo[0].ID, demo[1].ID)
	return nil
}
