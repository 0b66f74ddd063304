package service

import (
	"time"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

// FilterAll disables a client/user constraint, matching the dashboard's
// "all" picker value. An empty string means the same.
const FilterAll = "all"

type FilterOptions struct {
	ClientID  string
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// HasDateRange reports whether at least one bound is set.
func (o FilterOptions) HasDateRange() bool {
	return o.StartDate != nil || o.EndDate != nil
}

// FilteredSet is the working set every aggregator runs over.
type FilteredSet struct {
	Tasks      []model.Task
	Projects   []model.Project
	Activities []model.CalendarActivity
}

func wantAll(id string) bool {
	return id == "" || id == FilterAll
}

// inRange checks a timestamp against inclusive, possibly open-ended bounds.
func inRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

// overlaps checks whether [aStart, aEnd] intersects the filter range.
// A project missing both dates never matches a date-ranged filter.
func overlaps(aStart, aEnd *time.Time, start, end *time.Time) bool {
	if aStart == nil && aEnd == nil {
		return false
	}
	if aStart != nil && end != nil && aStart.After(*end) {
		return false
	}
	if aEnd != nil && start != nil && aEnd.Before(*start) {
		return false
	}
	return true
}

// ApplyFilter narrows the snapshot by client, assignee and date range.
// Pure function of its inputs: the snapshot is never mutated.
//
// When a date range is active, tasks are placed by their reference date
// (see model.Task.ReferenceDate); tasks without one are dropped. Projects
// match when their lifespan overlaps the range, activities when their
// start falls inside it.
func ApplyFilter(snap *model.Snapshot, opts FilterOptions) FilteredSet {
	var fs FilteredSet

	for _, t := range snap.Tasks {
		if !wantAll(opts.ClientID) && t.ClientID != opts.ClientID {
			continue
		}
		if !wantAll(opts.UserID) && t.AssignedUserID != opts.UserID {
			continue
		}
		if opts.HasDateRange() {
			ref := t.ReferenceDate()
			if ref == nil || !inRange(*ref, opts.StartDate, opts.EndDate) {
				continue
			}
		}
		fs.Tasks = append(fs.Tasks, t)
	}

	for _, p := range snap.Projects {
		if !wantAll(opts.ClientID) && p.ClientID != opts.ClientID {
			continue
		}
		if !wantAll(opts.UserID) && p.TeamLeaderID != opts.UserID {
			continue
		}
		if opts.HasDateRange() && !overlaps(p.StartDate, p.EndDate, opts.StartDate, opts.EndDate) {
			continue
		}
		fs.Projects = append(fs.Projects, p)
	}

	for _, a := range snap.Activities {
		if !wantAll(opts.ClientID) && !containsString(a.ClientIDs, opts.ClientID) {
			continue
		}
		if !wantAll(opts.UserID) && a.UserID != opts.UserID {
			continue
		}
		if opts.HasDateRange() {
			if a.StartTime == nil || !inRange(*a.StartTime, opts.StartDate, opts.EndDate) {
				continue
			}
		}
		fs.Activities = append(fs.Activities, a)
	}

	return fs
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
