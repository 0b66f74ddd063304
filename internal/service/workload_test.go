package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

func TestBuildWorkloadSortsAndDrops(t *testing.T) {
	users := []model.User{
		collaborator("u1", "Anna", "20"),
		collaborator("u2", "Bruno", "20"),
		collaborator("u3", "Carla", "20"),
		{ID: "boss", Name: "Dario", Role: model.RoleAmministratore},
	}
	fs := FilteredSet{
		Tasks: []model.Task{
			{ID: "t1", Status: model.StatusDaFare, AssignedUserID: "u2"},
			{ID: "t2", Status: model.StatusInLavorazione, AssignedUserID: "u2"},
			{ID: "t3", Status: model.StatusDaFare, AssignedUserID: "u1"},
			// terminal states never count as load
			{ID: "t4", Status: model.StatusApprovato, AssignedUserID: "u3"},
			{ID: "t5", Status: model.StatusDaFare, AssignedUserID: "boss"},
		},
	}

	out := BuildWorkload(fs, users)

	require.Len(t, out, 2)
	assert.Equal(t, "u2", out[0].UserID)
	assert.Equal(t, 2, out[0].ActiveTasks)
	assert.Equal(t, "u1", out[1].UserID)
}

func TestBuildPerformanceRatesAndHours(t *testing.T) {
	users := []model.User{
		collaborator("u1", "Anna", "20"),
		collaborator("u2", "Bruno", "20"),
	}
	day := date(2026, 8, 3)
	fs := FilteredSet{
		Tasks: []model.Task{
			{ID: "t1", Status: model.StatusApprovato, AssignedUserID: "u1", TimeSpentSeconds: 7200, EstimatedMinutes: 90},
			{ID: "t2", Status: model.StatusDaFare, AssignedUserID: "u1", EstimatedMinutes: 30},
		},
		Activities: []model.CalendarActivity{
			activity("a1", "u1", day, day.Add(3*time.Hour), "c1"),
		},
	}

	out := BuildPerformance(fs, users)

	require.Len(t, out, 1)
	p := out[0]
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, 2, p.AssignedTasks)
	assert.Equal(t, 1, p.CompletedTasks)
	assert.InDelta(t, 5.0, p.TotalHours, 1e-9) // 2h task + 3h activity
	assert.InDelta(t, 2.0, p.EstimatedHours, 1e-9)
	assert.InDelta(t, 50.0, p.CompletionRate, 1e-9)
}

func TestBuildFutureWorkloadBucketsByDueDay(t *testing.T) {
	now := date(2026, 8, 28)
	users := []model.User{collaborator("u1", "Anna", "20")}
	fs := FilteredSet{
		Tasks: []model.Task{
			{ID: "t1", Status: model.StatusDaFare, AssignedUserID: "u1",
				DueDate: tp(now.AddDate(0, 0, 2)), EstimatedMinutes: 120},
			{ID: "t2", Status: model.StatusDaFare, AssignedUserID: "u1",
				DueDate: tp(now.AddDate(0, 0, 2)), EstimatedMinutes: 60},
			// past the 7-day horizon: ignored
			{ID: "t3", Status: model.StatusDaFare, AssignedUserID: "u1",
				DueDate: tp(now.AddDate(0, 0, 9)), EstimatedMinutes: 600},
		},
	}

	out := BuildFutureWorkload(fs, users, now)

	require.Len(t, out.Days, 7)
	require.Len(t, out.Rows, 1)
	row := out.Rows[0]
	assert.InDelta(t, 3.0, row.Hours[2], 1e-9)
	assert.InDelta(t, 3.0, row.Total, 1e-9)
}

func TestHeatmapWeekdayMapping(t *testing.T) {
	users := []model.User{collaborator("u1", "Anna", "20")}
	monday := date(2026, 8, 24)
	sunday := date(2026, 8, 30)
	require.Equal(t, time.Monday, monday.Weekday())
	require.Equal(t, time.Sunday, sunday.Weekday())

	fs := FilteredSet{
		Activities: []model.CalendarActivity{
			activity("a1", "u1", monday, monday.Add(2*time.Hour), "c1"),
		},
		Tasks: []model.Task{
			{ID: "t1", Status: model.StatusApprovato, AssignedUserID: "u1",
				DueDate: tp(sunday), TimeSpentSeconds: 3600},
		},
	}

	out := BuildHeatmap(fs, users)

	require.Len(t, out, 1)
	assert.InDelta(t, 2.0, out[0].Hours[0], 1e-9) // Monday first
	assert.InDelta(t, 1.0, out[0].Hours[6], 1e-9) // Sunday last
}

func TestRadarKeepsTopFiveAndCapsAxes(t *testing.T) {
	var users []model.User
	var tasks []model.Task
	names := []string{"u1", "u2", "u3", "u4", "u5", "u6"}
	for i, id := range names {
		users = append(users, collaborator(id, id, "20"))
		// user i gets i+1 open tasks so u6 is the busiest
		for j := 0; j <= i; j++ {
			tasks = append(tasks, model.Task{
				ID: id + "-" + string(rune('a'+j)), Status: model.StatusDaFare, AssignedUserID: id,
			})
		}
	}
	// a heavy worker to exercise the hours cap
	tasks = append(tasks, model.Task{
		ID: "big", Status: model.StatusApprovato, AssignedUserID: "u6",
		TimeSpentSeconds: 400 * 3600, DueDate: tp(date(2026, 8, 1)),
	})

	out := BuildRadar(FilteredSet{Tasks: tasks}, users)

	require.Len(t, out, 5)
	assert.Equal(t, "u6", out[0].UserID)
	assert.Equal(t, 100.0, out[0].Hours) // 400/2 capped at 100
	assert.Equal(t, 35.0, out[0].Volume) // 7 assigned tasks x5
	assert.Equal(t, 25.0, out[1].Volume) // u5: 5 assigned tasks x5
}

func TestRadarOnTimeCountsApprovedWithDueDate(t *testing.T) {
	users := []model.User{collaborator("u1", "Anna", "20")}
	fs := FilteredSet{
		Tasks: []model.Task{
			{ID: "t1", Status: model.StatusApprovato, AssignedUserID: "u1", DueDate: tp(date(2026, 8, 1))},
			{ID: "t2", Status: model.StatusApprovato, AssignedUserID: "u1"},
		},
	}

	out := BuildRadar(fs, users)

	require.Len(t, out, 1)
	// one of two completed tasks had a due date
	assert.InDelta(t, 50.0, out[0].OnTime, 1e-9)
	assert.InDelta(t, 100.0, out[0].Completion, 1e-9)
}

func TestDistributionPriorityOnlyOverOpenTasks(t *testing.T) {
	fs := FilteredSet{
		Tasks: []model.Task{
			{ID: "t1", Status: model.StatusDaFare, Priority: model.PriorityAlta},
			{ID: "t2", Status: model.StatusInLavorazione, Priority: model.PriorityAlta},
			{ID: "t3", Status: model.StatusApprovato, Priority: model.PriorityCritica},
		},
	}

	d := BuildDistribution(fs)

	assert.Equal(t, 1, d.ByStatus[model.StatusDaFare])
	assert.Equal(t, 1, d.ByStatus[model.StatusApprovato])
	assert.Equal(t, 2, d.ByPriority[model.PriorityAlta])
	_, hasCritica := d.ByPriority[model.PriorityCritica]
	assert.False(t, hasCritica)
}
