package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

// ImportStore is what the importer needs from persistence.
type ImportStore interface {
	UpsertClient(ctx context.Context, c *model.Client) error
	UpsertUser(ctx context.Context, u *model.User) error
	UpsertPreset(ctx context.Context, p *model.CalendarActivityPreset) error
	UpsertProject(ctx context.Context, p *model.Project) error
	UpsertTask(ctx context.Context, t *model.Task) error
	UpsertActivity(ctx context.Context, a *model.CalendarActivity) error
	UpsertAbsence(ctx context.Context, a *model.Absence) error
	SaveCompanyCosts(ctx context.Context, c model.CompanyCosts) error
}

// Importer ingests snapshot payloads exported from the agency's previous
// tool. The wire format is loose: several date layouts, comma-decimal
// numbers, and two generations of field names for calendar activities
// (start/end vs startTime/endTime, singular clientId vs clientIds).
// Everything is normalized here so the rest of the codebase only ever
// sees canonical entities.
type Importer struct {
	store ImportStore
}

func NewImporter(store ImportStore) *Importer {
	return &Importer{store: store}
}

type LegacyApproval struct {
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
}

type LegacyTask struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Status            string           `json:"status"`
	Priority          string           `json:"priority"`
	ClientID          string           `json:"clientId"`
	AssignedUserID    string           `json:"assignedUserId"`
	ProjectID         string           `json:"projectId"`
	ActivityType      string           `json:"activityType"`
	TimeSpent         int64            `json:"timeSpent"`
	EstimatedDuration int64            `json:"estimatedDuration"`
	DueDate           string           `json:"dueDate"`
	CreatedAt         string           `json:"createdAt"`
	UpdatedAt         string           `json:"updatedAt"`
	CancelledAt       string           `json:"cancelledAt"`
	Approvals         []LegacyApproval `json:"approvals"`
}

type LegacyActivity struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Title     string   `json:"title"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	ClientID  string   `json:"clientId"`
	ClientIDs []string `json:"clientIds"`
	PresetID  string   `json:"presetId"`
}

type LegacyUser struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	Status     string          `json:"status"`
	HourlyRate json.RawMessage `json:"hourlyRate"`
	Color      string          `json:"color"`
}

type LegacyProject struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	ClientID     string  `json:"clientId"`
	TeamLeaderID string  `json:"teamLeaderId"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Budget       float64 `json:"budget"`
}

type LegacyAbsence struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type LegacyPayload struct {
	Clients    []model.Client                 `json:"clients"`
	Users      []LegacyUser                   `json:"users"`
	Presets    []model.CalendarActivityPreset `json:"activityPresets"`
	Projects   []LegacyProject                `json:"projects"`
	Tasks      []LegacyTask                   `json:"tasks"`
	Activities []LegacyActivity               `json:"calendarActivities"`
	Absences   []LegacyAbsence                `json:"absences"`
	Costs      *model.CompanyCosts            `json:"companyCosts"`
}

type ImportResult struct {
	Clients    int `json:"clients"`
	Users      int `json:"users"`
	Presets    int `json:"presets"`
	Projects   int `json:"projects"`
	Tasks      int `json:"tasks"`
	Activities int `json:"activities"`
	Absences   int `json:"absences"`
}

// legacy date layouts seen in exports, most specific first
var legacyTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseLegacyTime returns nil for empty or unparseable values; downstream
// aggregators treat a missing timestamp as "contributes nothing".
func parseLegacyTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// rawRateToString keeps the rate as the string the cost model expects,
// whether the payload carried a JSON number or a comma-decimal string.
func rawRateToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// NormalizeTask maps a legacy task onto the canonical entity.
func NormalizeTask(lt LegacyTask) model.Task {
	t := model.Task{
		ID:               lt.ID,
		Title:            lt.Title,
		Status:           lt.Status,
		Priority:         lt.Priority,
		ClientID:         lt.ClientID,
		AssignedUserID:   lt.AssignedUserID,
		ProjectID:        lt.ProjectID,
		ActivityType:     lt.ActivityType,
		TimeSpentSeconds: lt.TimeSpent,
		EstimatedMinutes: lt.EstimatedDuration,
		DueDate:          parseLegacyTime(lt.DueDate),
		CreatedAt:        parseLegacyTime(lt.CreatedAt),
		UpdatedAt:        parseLegacyTime(lt.UpdatedAt),
		CancelledAt:      parseLegacyTime(lt.CancelledAt),
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.TimeSpentSeconds < 0 {
		t.TimeSpentSeconds = 0
	}
	if t.EstimatedMinutes < 0 {
		t.EstimatedMinutes = 0
	}
	for _, la := range lt.Approvals {
		ts := parseLegacyTime(la.Timestamp)
		if ts == nil {
			continue
		}
		t.Approvals = append(t.Approvals, model.Approval{UserID: la.UserID, Timestamp: *ts})
	}
	return t
}

// NormalizeActivity resolves the two generations of calendar fields into
// one shape: startTime/endTime win over start/end, and a singular
// clientId folds into ClientIDs when no list is present.
func NormalizeActivity(la LegacyActivity) model.CalendarActivity {
	a := model.CalendarActivity{
		ID:       la.ID,
		UserID:   la.UserID,
		Title:    la.Title,
		PresetID: la.PresetID,
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	if start := parseLegacyTime(la.StartTime); start != nil {
		a.StartTime = start
	} else {
		a.StartTime = parseLegacyTime(la.Start)
	}
	if end := parseLegacyTime(la.EndTime); end != nil {
		a.EndTime = end
	} else {
		a.EndTime = parseLegacyTime(la.End)
	}

	for _, id := range la.ClientIDs {
		if id != "" {
			a.ClientIDs = append(a.ClientIDs, id)
		}
	}
	if len(a.ClientIDs) == 0 && la.ClientID != "" {
		a.ClientIDs = []string{la.ClientID}
	}
	return a
}

// NormalizeUser maps a legacy user record, keeping the rate as a string
// for the cost model to parse.
func NormalizeUser(lu LegacyUser) model.User {
	u := model.User{
		ID:         lu.ID,
		Name:       lu.Name,
		Email:      lu.Email,
		Role:       lu.Role,
		Status:     lu.Status,
		HourlyRate: rawRateToString(lu.HourlyRate),
		Color:      lu.Color,
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return u
}

// NormalizeProject maps a legacy project record.
func NormalizeProject(lp LegacyProject) model.Project {
	p := model.Project{
		ID:           lp.ID,
		Name:         lp.Name,
		Status:       lp.Status,
		Priority:     lp.Priority,
		ClientID:     lp.ClientID,
		TeamLeaderID: lp.TeamLeaderID,
		StartDate:    parseLegacyTime(lp.StartDate),
		EndDate:      parseLegacyTime(lp.EndDate),
		Budget:       lp.Budget,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p
}

// NormalizeAbsence maps a legacy absence record.
func NormalizeAbsence(la LegacyAbsence) model.Absence {
	a := model.Absence{
		ID:        la.ID,
		UserID:    la.UserID,
		Type:      la.Type,
		Status:    la.Status,
		StartDate: parseLegacyTime(la.StartDate),
		EndDate:   parseLegacyTime(la.EndDate),
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return a
}

// Import normalizes and upserts one payload. Entities are written in
// dependency order so foreign keys resolve.
func (imp *Importer) Import(ctx context.Context, payload LegacyPayload) (ImportResult, error) {
	var res ImportResult

	for i := range payload.Clients {
		c := payload.Clients[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if err := imp.store.UpsertClient(ctx, &c); err != nil {
			return res, err
		}
		res.Clients++
	}
	for _, lu := range payload.Users {
		u := NormalizeUser(lu)
		if err := imp.store.UpsertUser(ctx, &u); err != nil {
			return res, err
		}
		res.Users++
	}
	for i := range payload.Presets {
		p := payload.Presets[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if err := imp.store.UpsertPreset(ctx, &p); err != nil {
			return res, err
		}
		res.Presets++
	}
	for _, lp := range payload.Projects {
		p := NormalizeProject(lp)
		if err := imp.store.UpsertProject(ctx, &p); err != nil {
			return res, err
		}
		res.Projects++
	}
	for _, lt := range payload.Tasks {
		t := NormalizeTask(lt)
		if err := imp.store.UpsertTask(ctx, &t); err != nil {
			return res, err
		}
		res.Tasks++
	}
	for _, la := range payload.Activities {
		a := NormalizeActivity(la)
		if err := imp.store.UpsertActivity(ctx, &a); err != nil {
			return res, err
		}
		res.Activities++
	}
	for _, la := range payload.Absences {
		a := NormalizeAbsence(la)
		if err := imp.store.UpsertAbsence(ctx, &a); err != nil {
			return res, err
		}
		res.Absences++
	}
	if payload.Costs != nil {
		if err := imp.store.SaveCompanyCosts(ctx, *payload.Costs); err != nil {
			return res, err
		}
	}
	return res, nil
}
