package queue

import (
	"testing"
	"time"
)

func TestAddWorkingDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{
			// Wed + 7 working days lands the following Friday, 9 calendar
			// days later.
			name:  "from wednesday",
			start: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
			n:     7,
			want:  time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			// Fri + 7 skips two full weekends.
			name:  "from friday",
			start: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
			n:     7,
			want:  time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			// Sat start: the weekend itself never counts.
			name:  "from saturday",
			start: time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC),
			n:     1,
			want:  time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "zero days",
			start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			n:     0,
			want:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddWorkingDays(tt.start, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddWorkingDays(%s, %d) = %s, want %s",
					tt.start.Format("2006-01-02"), tt.n,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
			if got.Weekday() == time.Saturday || got.Weekday() == time.Sunday {
				t.Errorf("result %s falls on a weekend", got.Format("2006-01-02"))
			}
		})
	}
}
