package service

import (
	"fmt"
	"time"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

const (
	stuckThreshold = 7 * 24 * time.Hour
	nearDeadline   = 48 * time.Hour
)

// BuildAlerts derives the smart-alert list. Categories appear in a fixed
// order (overdue projects, stuck tasks, near deadlines, unassigned) and
// only when their count is positive.
func BuildAlerts(fs FilteredSet, now time.Time) []model.Alert {
	overdue := 0
	for i := range fs.Projects {
		if fs.Projects[i].IsOverdue(now) {
			overdue++
		}
	}

	stuck, closing, unassigned := 0, 0, 0
	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.Status == model.StatusInLavorazione && t.UpdatedAt != nil && now.Sub(*t.UpdatedAt) > stuckThreshold {
			stuck++
		}
		if !t.IsTerminal() {
			if t.DueDate != nil {
				d := t.DueDate.Sub(now)
				if d >= 0 && d <= nearDeadline {
					closing++
				}
			}
			if t.AssignedUserID == "" {
				unassigned++
			}
		}
	}

	alerts := []model.Alert{}
	if overdue > 0 {
		alerts = append(alerts, model.Alert{
			Type:    model.AlertCritical,
			Message: fmt.Sprintf("%d progetti oltre la data di fine prevista", overdue),
			Count:   overdue,
		})
	}
	if stuck > 0 {
		alerts = append(alerts, model.Alert{
			Type:    model.AlertWarning,
			Message: fmt.Sprintf("%d task in lavorazione fermi da oltre 7 giorni", stuck),
			Count:   stuck,
		})
	}
	if closing > 0 {
		alerts = append(alerts, model.Alert{
			Type:    model.AlertWarning,
			Message: fmt.Sprintf("%d task in scadenza entro 48 ore", closing),
			Count:   closing,
		})
	}
	if unassigned > 0 {
		alerts = append(alerts, model.Alert{
			Type:    model.AlertInfo,
			Message: fmt.Sprintf("%d task senza assegnatario", unassigned),
			Count:   unassigned,
		})
	}
	return alerts
}
