package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

func TestParseLegacyTimeLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want *time.Time
	}{
		{"2026-03-15T09:30:00Z", tp(time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC))},
		{"2026-03-15T09:30:00", tp(time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC))},
		{"2026-03-15 09:30:00", tp(time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC))},
		{"2026-03-15", tp(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"  2026-03-15  ", tp(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"", nil},
		{"15/03/2026", nil},
		{"non una data", nil},
	}
	for _, c := range cases {
		got := parseLegacyTime(c.in)
		if c.want == nil {
			assert.Nil(t, got, "input %q", c.in)
			continue
		}
		require.NotNil(t, got, "input %q", c.in)
		assert.True(t, got.Equal(*c.want), "input %q", c.in)
	}
}

func TestRawRateToString(t *testing.T) {
	assert.Equal(t, "22,50", rawRateToString(json.RawMessage(`"22,50"`)))
	assert.Equal(t, "30", rawRateToString(json.RawMessage(`30`)))
	assert.Equal(t, "27.5", rawRateToString(json.RawMessage(`27.5`)))
	assert.Equal(t, "", rawRateToString(nil))
	assert.Equal(t, "", rawRateToString(json.RawMessage(`{"bad":true}`)))
}

func TestNormalizeActivityFieldGenerations(t *testing.T) {
	// new generation fields win when both are present
	a := NormalizeActivity(LegacyActivity{
		ID:        "a1",
		UserID:    "u1",
		StartTime: "2026-05-04T09:00:00Z",
		EndTime:   "2026-05-04T11:00:00Z",
		Start:     "2026-05-04T08:00:00Z",
		End:       "2026-05-04T10:00:00Z",
		ClientIDs: []string{"c1", "c2"},
		ClientID:  "c9",
	})
	require.NotNil(t, a.StartTime)
	assert.Equal(t, 9, a.StartTime.Hour())
	assert.Equal(t, []string{"c1", "c2"}, a.ClientIDs)

	// old generation only: start/end used, singular clientId folded in
	a = NormalizeActivity(LegacyActivity{
		ID:       "a2",
		UserID:   "u1",
		Start:    "2026-05-04T08:00:00Z",
		End:      "2026-05-04T10:00:00Z",
		ClientID: "c9",
	})
	require.NotNil(t, a.StartTime)
	assert.Equal(t, 8, a.StartTime.Hour())
	assert.Equal(t, []string{"c9"}, a.ClientIDs)

	// empty strings in the list are dropped
	a = NormalizeActivity(LegacyActivity{ID: "a3", ClientIDs: []string{"", "c4", ""}})
	assert.Equal(t, []string{"c4"}, a.ClientIDs)
}

func TestNormalizeTask(t *testing.T) {
	lt := LegacyTask{
		ID:                "t1",
		Title:             "Shooting prodotto",
		Status:            model.StatusApprovato,
		TimeSpent:         -5,
		EstimatedDuration: 120,
		DueDate:           "2026-06-01",
		Approvals: []LegacyApproval{
			{UserID: "u1", Timestamp: "2026-06-02T10:00:00Z"},
			{UserID: "u2", Timestamp: "quando capita"},
		},
	}
	task := NormalizeTask(lt)
	assert.Equal(t, int64(0), task.TimeSpentSeconds, "negative durations clamp to zero")
	assert.Equal(t, int64(120), task.EstimatedMinutes)
	require.NotNil(t, task.DueDate)
	// approvals with unparseable timestamps are skipped
	require.Len(t, task.Approvals, 1)
	assert.Equal(t, "u1", task.Approvals[0].UserID)
}

func TestNormalizeGeneratesMissingIDs(t *testing.T) {
	assert.NotEmpty(t, NormalizeTask(LegacyTask{}).ID)
	assert.NotEmpty(t, NormalizeUser(LegacyUser{}).ID)
	assert.NotEmpty(t, NormalizeProject(LegacyProject{}).ID)
	assert.NotEmpty(t, NormalizeActivity(LegacyActivity{}).ID)
	assert.NotEmpty(t, NormalizeAbsence(LegacyAbsence{}).ID)
}

type recordingStore struct {
	order      []string
	costs      *model.CompanyCosts
	clients    []model.Client
	users      []model.User
	activities []model.CalendarActivity
}

func (s *recordingStore) UpsertClient(_ context.Context, c *model.Client) error {
	s.order = append(s.order, "client")
	s.clients = append(s.clients, *c)
	return nil
}

func (s *recordingStore) UpsertUser(_ context.Context, u *model.User) error {
	s.order = append(s.order, "user")
	s.users = append(s.users, *u)
	return nil
}

func (s *recordingStore) UpsertPreset(_ context.Context, _ *model.CalendarActivityPreset) error {
	s.order = append(s.order, "preset")
	return nil
}

func (s *recordingStore) UpsertProject(_ context.Context, _ *model.Project) error {
	s.order = append(s.order, "project")
	return nil
}

func (s *recordingStore) UpsertTask(_ context.Context, _ *model.Task) error {
	s.order = append(s.order, "task")
	return nil
}

func (s *recordingStore) UpsertActivity(_ context.Context, a *model.CalendarActivity) error {
	s.order = append(s.order, "activity")
	s.activities = append(s.activities, *a)
	return nil
}

func (s *recordingStore) UpsertAbsence(_ context.Context, _ *model.Absence) error {
	s.order = append(s.order, "absence")
	return nil
}

func (s *recordingStore) SaveCompanyCosts(_ context.Context, c model.CompanyCosts) error {
	s.order = append(s.order, "costs")
	s.costs = &c
	return nil
}

func TestImportWritesInDependencyOrder(t *testing.T) {
	store := &recordingStore{}
	imp := NewImporter(store)

	payload := LegacyPayload{
		Clients:    []model.Client{{ID: "c1", Name: "Bianchi SPA"}},
		Users:      []LegacyUser{{ID: "u1", Name: "Luca", HourlyRate: json.RawMessage(`"18,00"`)}},
		Presets:    []model.CalendarActivityPreset{{ID: "pr1", Name: "Riunione"}},
		Projects:   []LegacyProject{{ID: "p1", ClientID: "c1"}},
		Tasks:      []LegacyTask{{ID: "t1", ClientID: "c1"}},
		Activities: []LegacyActivity{{ID: "a1", UserID: "u1", Start: "2026-01-10T09:00:00Z", End: "2026-01-10T10:00:00Z", ClientID: "c1"}},
		Absences:   []LegacyAbsence{{ID: "ab1", UserID: "u1"}},
		Costs:      &model.CompanyCosts{Dirigenza: 1000, Struttura: 500, Varie: 100},
	}

	res, err := imp.Import(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, ImportResult{Clients: 1, Users: 1, Presets: 1, Projects: 1, Tasks: 1, Activities: 1, Absences: 1}, res)
	assert.Equal(t, []string{"client", "user", "preset", "project", "task", "activity", "absence", "costs"}, store.order)

	require.Len(t, store.users, 1)
	assert.Equal(t, "18,00", store.users[0].HourlyRate)
	require.NotNil(t, store.costs)
	assert.Equal(t, 1600.0, store.costs.Total())

	require.Len(t, store.activities, 1)
	assert.Equal(t, []string{"c1"}, store.activities[0].ClientIDs)
}
