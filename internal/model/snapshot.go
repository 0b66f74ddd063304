package model

// CompanyCosts holds the agency's fixed monthly overhead figures.
type CompanyCosts struct {
	Dirigenza float64 `json:"dirigenza"`
	Struttura float64 `json:"struttura"`
	Varie     float64 `json:"varie"`
}

// Total sums the monthly overhead components.
func (c CompanyCosts) Total() float64 {
	return c.Dirigenza + c.Struttura + c.Varie
}

// Snapshot is the full read-only state one analytics pass runs over.
// It is loaded once per request and never mutated by the pipeline.
type Snapshot struct {
	Tasks      []Task                   `json:"tasks"`
	Projects   []Project                `json:"projects"`
	Clients    []Client                 `json:"clients"`
	Users      []User                   `json:"users"`
	Activities []CalendarActivity       `json:"activities"`
	Presets    []CalendarActivityPreset `json:"presets"`
	Absences   []Absence                `json:"absences"`
	Costs      CompanyCosts             `json:"costs"`
}

// UserByID builds a lookup map over the snapshot's users.
func (s *Snapshot) UserByID() map[string]*User {
	m := make(map[string]*User, len(s.Users))
	for i := range s.Users {
		m[s.Users[i].ID] = &s.Users[i]
	}
	return m
}

// ClientByID builds a lookup map over the snapshot's clients.
func (s *Snapshot) ClientByID() map[string]*Client {
	m := make(map[string]*Client, len(s.Clients))
	for i := range s.Clients {
		m[s.Clients[i].ID] = &s.Clients[i]
	}
	return m
}

// PresetByID builds a lookup map over the snapshot's activity presets.
func (s *Snapshot) PresetByID() map[string]*CalendarActivityPreset {
	m := make(map[string]*CalendarActivityPreset, len(s.Presets))
	for i := range s.Presets {
		m[s.Presets[i].ID] = &s.Presets[i]
	}
	return m
}

// PresetByName builds a name lookup, used to match task activity types to
// preset rates.
func (s *Snapshot) PresetByName() map[string]*CalendarActivityPreset {
	m := make(map[string]*CalendarActivityPreset, len(s.Presets))
	for i := range s.Presets {
		m[s.Presets[i].Name] = &s.Presets[i]
	}
	return m
}
