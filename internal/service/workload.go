package service

import (
	"sort"
	"time"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

const futureWorkloadDays = 7

// BuildWorkload counts open tasks per non-admin user, busiest first.
// Users with nothing assigned are dropped.
func BuildWorkload(fs FilteredSet, users []model.User) []model.WorkloadEntry {
	counts := make(map[string]int)
	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.IsTerminal() || t.AssignedUserID == "" {
			continue
		}
		counts[t.AssignedUserID]++
	}

	out := []model.WorkloadEntry{}
	for i := range users {
		u := &users[i]
		if u.Role == model.RoleAmministratore {
			continue
		}
		if n := counts[u.ID]; n > 0 {
			out = append(out, model.WorkloadEntry{
				UserID:      u.ID,
				Name:        u.Name,
				Color:       u.Color,
				ActiveTasks: n,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ActiveTasks > out[j].ActiveTasks })
	return out
}

// BuildPerformance computes per-user delivery metrics: assigned/completed
// counts, worked hours (task time plus calendar activity time), estimated
// hours and completion rate. Users with no activity in the period are
// dropped; the busiest finishers come first.
func BuildPerformance(fs FilteredSet, users []model.User) []model.PerformanceEntry {
	type acc struct {
		assigned, completed int
		hours, estimated    float64
	}
	byUser := make(map[string]*acc)
	get := func(id string) *acc {
		a, ok := byUser[id]
		if !ok {
			a = &acc{}
			byUser[id] = a
		}
		return a
	}

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.AssignedUserID == "" {
			continue
		}
		a := get(t.AssignedUserID)
		a.assigned++
		if t.Status == model.StatusApprovato {
			a.completed++
		}
		a.hours += t.HoursSpent()
		a.estimated += t.HoursEstimated()
	}
	for i := range fs.Activities {
		act := &fs.Activities[i]
		if act.UserID == "" {
			continue
		}
		get(act.UserID).hours += act.DurationHours()
	}

	out := []model.PerformanceEntry{}
	for i := range users {
		u := &users[i]
		if u.Role == model.RoleAmministratore {
			continue
		}
		a, ok := byUser[u.ID]
		if !ok || (a.assigned == 0 && a.hours == 0) {
			continue
		}
		rate := 0.0
		if a.assigned > 0 {
			rate = float64(a.completed) / float64(a.assigned) * 100
		}
		out = append(out, model.PerformanceEntry{
			UserID:         u.ID,
			Name:           u.Name,
			AssignedTasks:  a.assigned,
			CompletedTasks: a.completed,
			TotalHours:     a.hours,
			EstimatedHours: a.estimated,
			CompletionRate: rate,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedTasks > out[j].CompletedTasks })
	return out
}

// BuildFutureWorkload lays estimated hours of open, assigned tasks onto a
// user-by-day matrix covering today through the next six calendar days.
func BuildFutureWorkload(fs FilteredSet, users []model.User, now time.Time) model.FutureWorkload {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := make([]string, futureWorkloadDays)
	dayIndex := make(map[string]int, futureWorkloadDays)
	for i := 0; i < futureWorkloadDays; i++ {
		key := today.AddDate(0, 0, i).Format("2006-01-02")
		days[i] = key
		dayIndex[key] = i
	}

	byUser := make(map[string][]float64)
	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.IsTerminal() || t.AssignedUserID == "" || t.DueDate == nil {
			continue
		}
		idx, ok := dayIndex[t.DueDate.Format("2006-01-02")]
		if !ok {
			continue
		}
		row, ok := byUser[t.AssignedUserID]
		if !ok {
			row = make([]float64, futureWorkloadDays)
			byUser[t.AssignedUserID] = row
		}
		row[idx] += t.HoursEstimated()
	}

	out := model.FutureWorkload{Days: days, Rows: []model.FutureWorkloadRow{}}
	for i := range users {
		u := &users[i]
		row, ok := byUser[u.ID]
		if !ok {
			continue
		}
		total := 0.0
		for _, h := range row {
			total += h
		}
		out.Rows = append(out.Rows, model.FutureWorkloadRow{
			UserID: u.ID,
			Name:   u.Name,
			Hours:  row,
			Total:  total,
		})
	}
	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].Total > out.Rows[j].Total })
	return out
}

// weekdayIndex maps time.Weekday to a Monday-first index, Sunday last.
func weekdayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// BuildHeatmap sums hours per user per weekday: calendar activities by
// their start day, task time by due-date day.
func BuildHeatmap(fs FilteredSet, users []model.User) []model.HeatmapRow {
	byUser := make(map[string][]float64)
	get := func(id string) []float64 {
		row, ok := byUser[id]
		if !ok {
			row = make([]float64, 7)
			byUser[id] = row
		}
		return row
	}

	for i := range fs.Activities {
		a := &fs.Activities[i]
		if a.UserID == "" || a.StartTime == nil {
			continue
		}
		h := a.DurationHours()
		if h <= 0 {
			continue
		}
		get(a.UserID)[weekdayIndex(a.StartTime.Weekday())] += h
	}
	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.AssignedUserID == "" || t.DueDate == nil {
			continue
		}
		h := t.HoursSpent()
		if h <= 0 {
			continue
		}
		get(t.AssignedUserID)[weekdayIndex(t.DueDate.Weekday())] += h
	}

	out := []model.HeatmapRow{}
	for i := range users {
		u := &users[i]
		if u.Role == model.RoleAmministratore {
			continue
		}
		row, ok := byUser[u.ID]
		if !ok {
			continue
		}
		out = append(out, model.HeatmapRow{UserID: u.ID, Name: u.Name, Hours: row})
	}
	return out
}

// BuildRadar scores the five most active users on five 0-100 axes.
// "On time" here counts any approved task that had a due date; true
// punctuality is not tracked.
func BuildRadar(fs FilteredSet, users []model.User) []model.RadarEntry {
	type acc struct {
		assigned, completed, onTime int
		hours                       float64
	}
	byUser := make(map[string]*acc)
	get := func(id string) *acc {
		a, ok := byUser[id]
		if !ok {
			a = &acc{}
			byUser[id] = a
		}
		return a
	}

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.AssignedUserID == "" {
			continue
		}
		a := get(t.AssignedUserID)
		a.assigned++
		a.hours += t.HoursSpent()
		if t.Status == model.StatusApprovato {
			a.completed++
			if t.DueDate != nil {
				a.onTime++
			}
		}
	}
	for i := range fs.Activities {
		act := &fs.Activities[i]
		if act.UserID != "" {
			get(act.UserID).hours += act.DurationHours()
		}
	}

	type scored struct {
		user  *model.User
		a     *acc
		score float64
	}
	candidates := []scored{}
	for i := range users {
		u := &users[i]
		if u.Role == model.RoleAmministratore {
			continue
		}
		a, ok := byUser[u.ID]
		if !ok || (a.assigned == 0 && a.hours == 0) {
			continue
		}
		candidates = append(candidates, scored{user: u, a: a, score: float64(a.assigned) + a.hours})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}

	out := []model.RadarEntry{}
	for _, c := range candidates {
		a := c.a
		completion := 0.0
		onTime := 0.0
		if a.assigned > 0 {
			completion = float64(a.completed) / float64(a.assigned) * 100
		}
		if a.completed > 0 {
			onTime = float64(a.onTime) / float64(a.completed) * 100
		}
		divisor := a.hours
		if divisor < 1 {
			divisor = 1
		}
		out = append(out, model.RadarEntry{
			UserID:       c.user.ID,
			Name:         c.user.Name,
			Completion:   completion,
			Hours:        capAt(a.hours/2, 100),
			OnTime:       onTime,
			Volume:       capAt(float64(a.assigned)*5, 100),
			Productivity: float64(a.completed) / divisor * 20,
		})
	}
	return out
}

func capAt(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

// BuildDistribution tallies tasks by status and, among still-open tasks,
// by priority.
func BuildDistribution(fs FilteredSet) model.Distribution {
	d := model.Distribution{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		d.ByStatus[t.Status]++
		if !t.IsTerminal() {
			d.ByPriority[t.Priority]++
		}
	}
	return d
}
