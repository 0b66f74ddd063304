package model

import "time"

const (
	ProjectAttivo     = "Attivo"
	ProjectInPausa    = "In Pausa"
	ProjectCompletato = "Completato"
	ProjectAnnullato  = "Annullato"
)

type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	ClientID     string     `json:"client_id,omitempty"`
	TeamLeaderID string     `json:"team_leader_id,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Budget       float64    `json:"budget"`
}

// IsClosed reports whether the project is finished or cancelled.
func (p *Project) IsClosed() bool {
	return p.Status == ProjectCompletato || p.Status == ProjectAnnullato
}

// IsOverdue reports whether an open project ran past its end date.
func (p *Project) IsOverdue(now time.Time) bool {
	return !p.IsClosed() && p.EndDate != nil && p.EndDate.Before(now)
}
