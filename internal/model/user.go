package model

import "time"

const (
	RoleAmministratore = "Amministratore"
	RoleProjectManager = "Project Manager"
	RoleCollaboratore  = "Collaboratore"
)

const UserInattivo = "Inattivo"

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
	// HourlyRate arrives from the data source as written by the back
	// office, sometimes with a comma decimal ("25,50"). Parsed by the
	// cost model, never used raw.
	HourlyRate string     `json:"hourly_rate,omitempty"`
	Color      string     `json:"color,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// IsBillable reports whether company overhead applies to this user's rate.
func (u *User) IsBillable() bool {
	return u.Role == RoleCollaboratore || u.Role == RoleProjectManager
}

// IsActive reports whether the user currently works at the agency.
func (u *User) IsActive() bool {
	return u.Status != UserInattivo
}

type Client struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget,omitempty"`
	Color  string  `json:"color,omitempty"`
}
