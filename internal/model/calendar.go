package model

import "time"

// CalendarActivity is a block of worked time on a user's calendar.
// ClientIDs may list several clients; hours and cost are split evenly
// across them. The legacy singular client field is folded into ClientIDs
// at ingestion.
type CalendarActivity struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	ClientIDs []string   `json:"client_ids,omitempty"`
	PresetID  string     `json:"preset_id,omitempty"`
}

// DurationHours returns the activity length in hours, 0 when either
// timestamp is missing or the interval is not positive.
func (a *CalendarActivity) DurationHours() float64 {
	if a.StartTime == nil || a.EndTime == nil {
		return 0
	}
	d := a.EndTime.Sub(*a.StartTime)
	if d <= 0 {
		return 0
	}
	return d.Hours()
}

type CalendarActivityPreset struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate,omitempty"`
	Color      string  `json:"color,omitempty"`
}

const (
	AbsenceApprovata = "Approvata"
	AbsenceApprovato = "Approvato"
)

type Absence struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      string     `json:"type,omitempty"`
	Status    string     `json:"status,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// IsActive reports whether the absence was approved. Both spellings occur
// in historical data.
func (a *Absence) IsActive() bool {
	return a.Status == AbsenceApprovata || a.Status == AbsenceApprovato
}
