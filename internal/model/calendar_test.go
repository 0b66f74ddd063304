package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAbsenceIsActive(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{AbsenceApprovata, true},
		{AbsenceApprovato, true},
		{"In Attesa", false},
		{"Rifiutata", false},
		{"", false},
	}
	for _, c := range cases {
		a := Absence{Status: c.status}
		assert.Equal(t, c.want, a.IsActive(), "status %q", c.status)
	}
}

func TestCalendarActivityDurationHours(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(150 * time.Minute)

	a := CalendarActivity{StartTime: &start, EndTime: &end}
	assert.InDelta(t, 2.5, a.DurationHours(), 1e-9)

	// missing or inverted bounds contribute nothing
	assert.Zero(t, (&CalendarActivity{StartTime: &start}).DurationHours())
	assert.Zero(t, (&CalendarActivity{EndTime: &end}).DurationHours())
	assert.Zero(t, (&CalendarActivity{StartTime: &end, EndTime: &start}).DurationHours())
}
