package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

func TestLevelTableLookup(t *testing.T) {
	lt := DefaultLevels()

	assert.Equal(t, 1, lt.Lookup(0).Level)
	assert.Equal(t, 1, lt.Lookup(99).Level)
	assert.Equal(t, 2, lt.Lookup(100).Level)
	assert.Equal(t, 7, lt.Lookup(999999).Level)
}

func TestLeaderboardXPFormula(t *testing.T) {
	users := []model.User{collaborator("u1", "Anna", "20")}
	due := date(2026, 8, 10)

	var tasks []model.Task
	// 4 completed on time, 25h total -> 4*25 + 2*10 + 4*15 = 180
	for i := 0; i < 4; i++ {
		tasks = append(tasks, model.Task{
			ID: fmt.Sprintf("t%d", i), Status: model.StatusApprovato, AssignedUserID: "u1",
			TimeSpentSeconds: int64(6.25 * 3600), DueDate: tp(due), UpdatedAt: tp(due.AddDate(0, 0, -1)),
		})
	}

	out := BuildLeaderboard(FilteredSet{Tasks: tasks}, users, DefaultLevels())

	require.Len(t, out, 1)
	e := out[0]
	assert.Equal(t, 4, e.CompletedTasks)
	assert.Equal(t, 4, e.OnTime)
	assert.InDelta(t, 25.0, e.TotalHours, 1e-9)
	assert.Equal(t, 180, e.XP)
	assert.Equal(t, 2, e.Level)
	assert.Equal(t, "Apprendista", e.LevelName)
}

func TestLeaderboardLateCompletionEarnsNoOnTimeBonus(t *testing.T) {
	users := []model.User{collaborator("u1", "Anna", "20")}
	due := date(2026, 8, 10)

	tasks := []model.Task{
		{ID: "t1", Status: model.StatusApprovato, AssignedUserID: "u1",
			DueDate: tp(due), UpdatedAt: tp(due.AddDate(0, 0, 3))},
	}

	out := BuildLeaderboard(FilteredSet{Tasks: tasks}, users, DefaultLevels())

	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].OnTime)
	assert.Equal(t, 25, out[0].XP)
}

func TestLeaderboardStreakIsCapped(t *testing.T) {
	users := []model.User{collaborator("u1", "Anna", "20")}
	var tasks []model.Task
	for i := 0; i < 200; i++ {
		tasks = append(tasks, model.Task{
			ID: fmt.Sprintf("t%d", i), Status: model.StatusApprovato, AssignedUserID: "u1",
		})
	}

	out := BuildLeaderboard(FilteredSet{Tasks: tasks}, users, DefaultLevels())

	require.Len(t, out, 1)
	// 200/5 = 40, capped at 30
	assert.Equal(t, 30, out[0].Streak)
}

func TestLeaderboardExcludesAdminsAndInactive(t *testing.T) {
	users := []model.User{
		collaborator("u1", "Anna", "20"),
		{ID: "boss", Name: "Dario", Role: model.RoleAmministratore},
		{ID: "gone", Name: "Elisa", Role: model.RoleCollaboratore, Status: model.UserInattivo},
	}

	out := BuildLeaderboard(FilteredSet{}, users, DefaultLevels())

	require.Len(t, out, 1)
	assert.Equal(t, "u1", out[0].UserID)
}

func TestLeaderboardTopTenByXP(t *testing.T) {
	var users []model.User
	var tasks []model.Task
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("u%d", i)
		users = append(users, collaborator(id, id, "20"))
		for j := 0; j <= i; j++ {
			tasks = append(tasks, model.Task{
				ID: fmt.Sprintf("%s-t%d", id, j), Status: model.StatusApprovato, AssignedUserID: id,
			})
		}
	}

	out := BuildLeaderboard(FilteredSet{Tasks: tasks}, users, DefaultLevels())

	require.Len(t, out, 10)
	assert.Equal(t, "u11", out[0].UserID)
	assert.True(t, out[0].XP >= out[9].XP)
}
