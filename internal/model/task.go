package model

import "time"

// Task statuses as used by the agency workflow. Approvato and Annullato
// are terminal.
const (
	StatusDaFare                = "Da Fare"
	StatusInLavorazione         = "In Lavorazione"
	StatusInApprovazione        = "In Approvazione"
	StatusInApprovazioneCliente = "In Approvazione Cliente"
	StatusApprovato             = "Approvato"
	StatusAnnullato             = "Annullato"
)

const (
	PriorityBassa   = "Bassa"
	PriorityMedia   = "Media"
	PriorityAlta    = "Alta"
	PriorityCritica = "Critica"
)

type Approval struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	ClientID         string     `json:"client_id,omitempty"`
	AssignedUserID   string     `json:"assigned_user_id,omitempty"`
	ProjectID        string     `json:"project_id,omitempty"`
	ActivityType     string     `json:"activity_type,omitempty"`
	TimeSpentSeconds int64      `json:"time_spent_seconds"`
	EstimatedMinutes int64      `json:"estimated_minutes"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	Approvals        []Approval `json:"approvals,omitempty"`
}

// IsTerminal reports whether the task reached a final state.
func (t *Task) IsTerminal() bool {
	return t.Status == StatusApprovato || t.Status == StatusAnnullato
}

// LastApproval returns the most recent approval timestamp, nil if none.
func (t *Task) LastApproval() *time.Time {
	if len(t.Approvals) == 0 {
		return nil
	}
	last := t.Approvals[len(t.Approvals)-1].Timestamp
	return &last
}

// ReferenceDate is the single timestamp that places a task within a
// reporting period: the last approval for approved tasks, the cancellation
// (or last update) for cancelled ones. Tasks in any other status have no
// reference date and fall out of date-ranged reports.
func (t *Task) ReferenceDate() *time.Time {
	switch t.Status {
	case StatusApprovato:
		return t.LastApproval()
	case StatusAnnullato:
		if t.CancelledAt != nil {
			return t.CancelledAt
		}
		return t.UpdatedAt
	}
	return nil
}

// HoursSpent converts accumulated seconds to hours.
func (t *Task) HoursSpent() float64 {
	if t.TimeSpentSeconds <= 0 {
		return 0
	}
	return float64(t.TimeSpentSeconds) / 3600.0
}

// HoursEstimated converts the estimate from minutes to hours.
func (t *Task) HoursEstimated() float64 {
	if t.EstimatedMinutes <= 0 {
		return 0
	}
	return float64(t.EstimatedMinutes) / 60.0
}
