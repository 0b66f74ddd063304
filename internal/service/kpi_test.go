package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

func TestBuildKPIsCounts(t *testing.T) {
	now := date(2026, 8, 28)

	fs := FilteredSet{
		Projects: []model.Project{
			{ID: "p1", Status: model.ProjectAttivo},
			{ID: "p2", Status: model.ProjectAttivo, EndDate: tp(now.AddDate(0, 0, -3))},
			{ID: "p3", Status: model.ProjectCompletato, EndDate: tp(now.AddDate(0, 0, -30))},
		},
		Tasks: []model.Task{
			{ID: "t1", Status: model.StatusInLavorazione, DueDate: tp(now.AddDate(0, 0, 3)), TimeSpentSeconds: 3600},
			{ID: "t2", Status: model.StatusDaFare, DueDate: tp(now.AddDate(0, 0, 10))},
			{ID: "t3", Status: model.StatusApprovato, TimeSpentSeconds: 7200},
		},
	}

	r := BuildKPIs(fs, now)

	assert.Equal(t, 2, r.ActiveProjects)
	assert.Equal(t, 1, r.AtRiskProjects)
	assert.Equal(t, 1, r.TasksInProgress)
	// only t1 is due inside the next 7 days
	assert.Equal(t, 1, r.UpcomingDeadlines)
	assert.Equal(t, 1, r.CompletedTasks)
	assert.InDelta(t, 3.0, r.TotalHours, 1e-9)
}

func TestTrendGrowthFromZeroBaseline(t *testing.T) {
	now := date(2026, 8, 28)

	// five completed tasks, none due in the prior 30-day window
	var tasks []model.Task
	for i := 0; i < 5; i++ {
		tasks = append(tasks, model.Task{
			ID:     string(rune('a' + i)),
			Status: model.StatusApprovato,
		})
	}

	r := BuildKPIs(FilteredSet{Tasks: tasks}, now)
	assert.Equal(t, 100.0, r.Trend.CompletedTasksPct)
}

func TestTrendFlatAtZero(t *testing.T) {
	r := BuildKPIs(FilteredSet{}, date(2026, 8, 28))
	assert.Zero(t, r.Trend.CompletedTasksPct)
	assert.Zero(t, r.Trend.TotalHoursPct)
}

func TestTrendAgainstPriorWindow(t *testing.T) {
	now := date(2026, 8, 28)
	prior := now.AddDate(0, 0, -45) // inside [now-60d, now-30d)

	fs := FilteredSet{
		Tasks: []model.Task{
			{ID: "prev1", Status: model.StatusApprovato, DueDate: tp(prior), TimeSpentSeconds: 3600},
			{ID: "prev2", Status: model.StatusApprovato, DueDate: tp(prior.AddDate(0, 0, 1)), TimeSpentSeconds: 3600},
			{ID: "cur", Status: model.StatusApprovato, DueDate: tp(now), TimeSpentSeconds: 3600},
		},
	}

	r := BuildKPIs(fs, now)

	// current completed = 3 (all approved), previous = 2
	assert.InDelta(t, 50.0, r.Trend.CompletedTasksPct, 1e-9)
	// current hours = 3, previous = 2
	assert.InDelta(t, 50.0, r.Trend.TotalHoursPct, 1e-9)
}

func TestWindowBoundaryIsHalfOpen(t *testing.T) {
	now := date(2026, 8, 28)
	// exactly now-30d falls outside the prior window
	edge := now.Add(-30 * 24 * time.Hour)

	fs := FilteredSet{
		Tasks: []model.Task{
			{ID: "edge", Status: model.StatusApprovato, DueDate: tp(edge)},
		},
	}

	r := BuildKPIs(fs, now)
	// previous stays 0 so the single completed task reads as +100%
	assert.Equal(t, 100.0, r.Trend.CompletedTasksPct)
}
