package service

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

const exportDateLayout = "2006-01-02"

// Column sets of the two report sections. Order is part of the export
// contract consumed by the agency's spreadsheets; do not reorder.
var (
	taskExportHeader = []string{
		"ID", "Titolo", "Stato", "Priorità", "Cliente", "Assegnatario",
		"Scadenza", "Ore Lavorate", "Ore Stimate", "Tipo Attività",
	}
	projectExportHeader = []string{
		"ID", "Nome", "Stato", "Priorità", "Cliente", "Responsabile",
		"Data Inizio", "Data Fine", "Budget",
	}
)

// ExportCSV serializes the filtered working set as the two-section report
// file: REPORT TASK followed by REPORT PROGETTI.
func ExportCSV(fs FilteredSet, clients map[string]*model.Client, users map[string]*model.User) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	clientName := func(id string) string {
		if c, ok := clients[id]; ok {
			return c.Name
		}
		return ""
	}
	userName := func(id string) string {
		if u, ok := users[id]; ok {
			return u.Name
		}
		return ""
	}
	formatDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(exportDateLayout)
	}
	formatHours := func(h float64) string {
		return strconv.FormatFloat(h, 'f', 2, 64)
	}

	rows := [][]string{{"REPORT TASK"}, taskExportHeader}
	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		rows = append(rows, []string{
			t.ID,
			t.Title,
			t.Status,
			t.Priority,
			clientName(t.ClientID),
			userName(t.AssignedUserID),
			formatDate(t.DueDate),
			formatHours(t.HoursSpent()),
			formatHours(t.HoursEstimated()),
			t.ActivityType,
		})
	}

	rows = append(rows, []string{""}, []string{"REPORT PROGETTI"}, projectExportHeader)
	for i := range fs.Projects {
		p := &fs.Projects[i]
		rows = append(rows, []string{
			p.ID,
			p.Name,
			p.Status,
			p.Priority,
			clientName(p.ClientID),
			userName(p.TeamLeaderID),
			formatDate(p.StartDate),
			formatDate(p.EndDate),
			strconv.FormatFloat(p.Budget, 'f', 2, 64),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
