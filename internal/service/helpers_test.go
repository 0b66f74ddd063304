package service

import (
	"time"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

// shared fixture helpers for the service tests

func tp(t time.Time) *time.Time { return &t }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func collaborator(id, name, rate string) model.User {
	return model.User{ID: id, Name: name, Role: model.RoleCollaboratore, HourlyRate: rate}
}

func approvedTask(id, userID, clientID string, spentSeconds int64, approvedAt time.Time) model.Task {
	return model.Task{
		ID:               id,
		Status:           model.StatusApprovato,
		AssignedUserID:   userID,
		ClientID:         clientID,
		TimeSpentSeconds: spentSeconds,
		Approvals:        []model.Approval{{UserID: userID, Timestamp: approvedAt}},
	}
}

func activity(id, userID string, start, end time.Time, clientIDs ...string) model.CalendarActivity {
	return model.CalendarActivity{
		ID:        id,
		UserID:    userID,
		StartTime: tp(start),
		EndTime:   tp(end),
		ClientIDs: clientIDs,
	}
}

func snapshotOf(users []model.User, tasks []model.Task, activities []model.CalendarActivity) *model.Snapshot {
	return &model.Snapshot{Users: users, Tasks: tasks, Activities: activities}
}
