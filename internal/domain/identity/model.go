package identity

// Account is a phone-number-keyed login that owns up to MaxPatientsPerAccount
// patient profiles.
type Account struct {
	ID                int64   `db:"id" json:"id"`
	PhoneNumber       string  `db:"phone_number" json:"phone_number"`
	PrimaryNationalID *string `db:"primary_national_id" json:"primary_national_id,omitempty"`
}

// Patient is a person seen at the clinic. The engines reference patients by
// id only; everything else is registration data.
type Patient struct {
	ID         int64  `db:"id" json:"id"`
	AccountID  *int64 `db:"account_id" json:"account_id,omitempty"`
	Name       string `db:"name" json:"name"`
	Age        int    `db:"age" json:"age"`
	NationalID string `db:"national_id" json:"national_id"`
}

// Doctor carries clinic configuration. MaxPatientsPerDay is the only field
// the scheduling engine interprets; BookingWindowDays and the operating
// hours are accepted and served but not enforced anywhere.
type Doctor struct {
	ID                   int64   `db:"id" json:"id"`
	Name                 string  `db:"name" json:"name"`
	Speciality           string  `db:"speciality" json:"speciality"`
	Qualification        string  `db:"qualification" json:"qualification"`
	StartTime            *string `db:"start_time" json:"start_time,omitempty"`
	EndTime              *string `db:"end_time" json:"end_time,omitempty"`
	BookingWindowDays    *int    `db:"booking_window_days" json:"booking_window_days,omitempty"`
	MaxPatientsPerDay    *int    `db:"max_patients_per_day" json:"max_patients_per_day,omitempty"`
	TargetAgeRange       *string `db:"target_age_range" json:"target_age_range,omitempty"`
	PharmacyAvailable    *bool   `db:"pharmacy_available" json:"pharmacy_available,omitempty"`
	WheelchairAccessible *bool   `db:"wheelchair_accessible" json:"wheelchair_accessible,omitempty"`
}

// TargetAgeRange values.
const (
	AgeRangeChild  = "CHILD"
	AgeRangeAdult  = "ADULT"
	AgeRangeSenior = "SENIOR"
)

// MaxPatientsPerAccount caps how many patient profiles one account may hold.
const MaxPatientsPerAccount = 5
