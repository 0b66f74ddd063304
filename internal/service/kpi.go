package service

import (
	"time"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

const upcomingDeadlineWindow = 7 * 24 * time.Hour

// BuildKPIs computes the dashboard headline numbers over the filtered set.
// The trend compares completed tasks and worked hours against the fixed
// prior 30-day window (tasks due in [now-60d, now-30d)).
func BuildKPIs(fs FilteredSet, now time.Time) model.KPIReport {
	var r model.KPIReport

	for i := range fs.Projects {
		p := &fs.Projects[i]
		if !p.IsClosed() {
			r.ActiveProjects++
		}
		if p.IsOverdue(now) {
			r.AtRiskProjects++
		}
	}

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.Status == model.StatusInLavorazione {
			r.TasksInProgress++
		}
		if !t.IsTerminal() && t.DueDate != nil {
			d := t.DueDate.Sub(now)
			if d >= 0 && d <= upcomingDeadlineWindow {
				r.UpcomingDeadlines++
			}
		}
		if t.Status == model.StatusApprovato {
			r.CompletedTasks++
		}
		r.TotalHours += t.HoursSpent()
	}

	prevStart := now.Add(-60 * 24 * time.Hour)
	prevEnd := now.Add(-30 * 24 * time.Hour)
	prevCompleted := 0
	prevHours := 0.0
	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.DueDate == nil || t.DueDate.Before(prevStart) || !t.DueDate.Before(prevEnd) {
			continue
		}
		if t.Status == model.StatusApprovato {
			prevCompleted++
		}
		prevHours += t.HoursSpent()
	}

	r.Trend = model.TrendDelta{
		CompletedTasksPct: pctChange(float64(r.CompletedTasks), float64(prevCompleted)),
		TotalHoursPct:     pctChange(r.TotalHours, prevHours),
	}
	return r
}

// pctChange is the trend delta with the zero-baseline convention: growing
// from nothing reads as +100%, staying at nothing as 0%.
func pctChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
