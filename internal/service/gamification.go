package service

import (
	"sort"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

// Level is one rung of the XP ladder.
type Level struct {
	Level int
	Name  string
	MinXP int
}

// LevelTable resolves an XP total to a level. Ordered by MinXP ascending.
type LevelTable []Level

// DefaultLevels is the ladder shipped with the service; deployments can
// inject their own.
func DefaultLevels() LevelTable {
	return LevelTable{
		{Level: 1, Name: "Novizio", MinXP: 0},
		{Level: 2, Name: "Apprendista", MinXP: 100},
		{Level: 3, Name: "Operativo", MinXP: 250},
		{Level: 4, Name: "Esperto", MinXP: 500},
		{Level: 5, Name: "Veterano", MinXP: 1000},
		{Level: 6, Name: "Maestro", MinXP: 2000},
		{Level: 7, Name: "Leggenda", MinXP: 3500},
	}
}

// Lookup returns the highest level whose threshold the XP total reaches.
func (lt LevelTable) Lookup(xp int) Level {
	if len(lt) == 0 {
		return Level{Level: 1}
	}
	current := lt[0]
	for _, l := range lt {
		if xp >= l.MinXP {
			current = l
		}
	}
	return current
}

const (
	xpPerCompleted   = 25
	xpPerTenHours    = 10
	xpPerOnTime      = 15
	tasksPerStreak   = 5
	maxStreak        = 30
	leaderboardLimit = 10
)

// BuildLeaderboard ranks active non-admin users by XP earned from
// completed tasks, worked hours and on-time deliveries. Streak is a
// simplified proxy derived from the completion count, not a true
// consecutive-day record.
func BuildLeaderboard(fs FilteredSet, users []model.User, levels LevelTable) []model.LeaderboardEntry {
	type acc struct {
		completed, onTime int
		hours             float64
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
		a.hours += t.HoursSpent()
		if t.Status == model.StatusApprovato {
			a.completed++
			if t.UpdatedAt != nil && t.DueDate != nil && !t.UpdatedAt.After(*t.DueDate) {
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

	out := []model.LeaderboardEntry{}
	for i := range users {
		u := &users[i]
		if u.Role == model.RoleAmministratore || !u.IsActive() {
			continue
		}
		a, ok := byUser[u.ID]
		if !ok {
			a = &acc{}
		}
		xp := a.completed*xpPerCompleted + int(a.hours/10)*xpPerTenHours + a.onTime*xpPerOnTime
		streak := a.completed / tasksPerStreak
		if streak > maxStreak {
			streak = maxStreak
		}
		level := levels.Lookup(xp)
		out = append(out, model.LeaderboardEntry{
			UserID:         u.ID,
			Name:           u.Name,
			Color:          u.Color,
			XP:             xp,
			Level:          level.Level,
			LevelName:      level.Name,
			CompletedTasks: a.completed,
			TotalHours:     a.hours,
			OnTime:         a.onTime,
			Streak:         streak,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].XP > out[j].XP })
	if len(out) > leaderboardLimit {
		out = out[:leaderboardLimit]
	}
	return out
}
