package service

import (
	"sort"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

// fallback labels for work without a declared type
const (
	manualActivityLabel = "Attività Manuale"
	untypedTaskLabel    = "Altro"
)

// BuildActivityCosts attributes worked hours and their cost to activity
// types: tasks by their declared type against the assignee's effective
// rate, calendar activities by preset name against the owner's rate.
// Sorted by cost, most expensive first.
func BuildActivityCosts(fs FilteredSet, cm *CostModel, presets map[string]*model.CalendarActivityPreset) []model.ActivityTypeCost {
	type acc struct{ hours, cost float64 }
	byType := make(map[string]*acc)
	add := func(name string, hours, cost float64) {
		if hours <= 0 {
			return
		}
		a, ok := byType[name]
		if !ok {
			a = &acc{}
			byType[name] = a
		}
		a.hours += hours
		a.cost += cost
	}

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		name := t.ActivityType
		if name == "" {
			name = untypedTaskLabel
		}
		hours := t.HoursSpent()
		add(name, hours, hours*cm.EffectiveRate(t.AssignedUserID))
	}

	for i := range fs.Activities {
		a := &fs.Activities[i]
		name := manualActivityLabel
		if p, ok := presets[a.PresetID]; ok {
			name = p.Name
		}
		hours := a.DurationHours()
		add(name, hours, hours*cm.EffectiveRate(a.UserID))
	}

	out := []model.ActivityTypeCost{}
	for name, a := range byType {
		rate := 0.0
		if a.hours > 0 {
			rate = a.cost / a.hours
		}
		out = append(out, model.ActivityTypeCost{
			ActivityType: name,
			Hours:        a.hours,
			Cost:         a.cost,
			AverageRate:  rate,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cost > out[j].Cost })
	return out
}

// BuildClientCosts attributes the same cost figures to clients. A
// multi-client calendar activity splits hours and cost evenly across all
// of its clients.
func BuildClientCosts(fs FilteredSet, cm *CostModel, clients map[string]*model.Client) model.ClientCostReport {
	type acc struct{ hours, cost float64 }
	byClient := make(map[string]*acc)
	add := func(id string, hours, cost float64) {
		if id == "" || hours <= 0 {
			return
		}
		a, ok := byClient[id]
		if !ok {
			a = &acc{}
			byClient[id] = a
		}
		a.hours += hours
		a.cost += cost
	}

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		hours := t.HoursSpent()
		add(t.ClientID, hours, hours*cm.EffectiveRate(t.AssignedUserID))
	}
	for i := range fs.Activities {
		a := &fs.Activities[i]
		if len(a.ClientIDs) == 0 {
			continue
		}
		hours := a.DurationHours()
		if hours <= 0 {
			continue
		}
		share := hours / float64(len(a.ClientIDs))
		cost := share * cm.EffectiveRate(a.UserID)
		for _, id := range a.ClientIDs {
			add(id, share, cost)
		}
	}

	report := model.ClientCostReport{Clients: []model.ClientCost{}}
	for id, a := range byClient {
		entry := model.ClientCost{ClientID: id, Hours: a.hours, Cost: a.cost}
		if c, ok := clients[id]; ok {
			entry.Name = c.Name
			entry.Color = c.Color
		}
		if a.hours > 0 {
			entry.AverageRate = a.cost / a.hours
		}
		report.Clients = append(report.Clients, entry)
		report.TotalCost += a.cost
		if a.cost > report.MaxCost {
			report.MaxCost = a.cost
		}
	}
	sort.SliceStable(report.Clients, func(i, j int) bool { return report.Clients[i].Cost > report.Clients[j].Cost })
	return report
}

// BuildMonthlyCosts buckets cost by calendar month: tasks on their due
// month, calendar activities on their start month. Work without an owner
// contributes nothing, and so does work that costs nothing (owner with no
// rate and overhead 0): a month appears only when it carries billable
// cost. The average is a simple mean over the months present; neither
// missing nor zero-cost months are zero-filled into it.
func BuildMonthlyCosts(fs FilteredSet, cm *CostModel) model.MonthlyCostReport {
	byMonth := make(map[string]float64)

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.AssignedUserID == "" || t.DueDate == nil {
			continue
		}
		if cost := t.HoursSpent() * cm.EffectiveRate(t.AssignedUserID); cost > 0 {
			byMonth[t.DueDate.Format("2006-01")] += cost
		}
	}
	for i := range fs.Activities {
		a := &fs.Activities[i]
		if a.UserID == "" || a.StartTime == nil {
			continue
		}
		if cost := a.DurationHours() * cm.EffectiveRate(a.UserID); cost > 0 {
			byMonth[a.StartTime.Format("2006-01")] += cost
		}
	}

	report := model.MonthlyCostReport{Months: []model.MonthlyCost{}}
	total := 0.0
	for month, cost := range byMonth {
		report.Months = append(report.Months, model.MonthlyCost{Month: month, Cost: cost})
		total += cost
	}
	sort.Slice(report.Months, func(i, j int) bool { return report.Months[i].Month < report.Months[j].Month })
	if len(report.Months) > 0 {
		report.Average = total / float64(len(report.Months))
	}
	return report
}

// BuildProfitability compares each client's budget against the cost of
// work done for them. This report deliberately keeps the original
// system's rate source: the activity type's nominal rate (default 25),
// without the user-rate-plus-overhead model the other cost reports use.
func BuildProfitability(fs FilteredSet, cm *CostModel, clients []model.Client) []model.ClientProfit {
	costs := make(map[string]float64)

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.ClientID == "" {
			continue
		}
		if hours := t.HoursSpent(); hours > 0 {
			costs[t.ClientID] += hours * cm.NominalRate(t.ActivityType)
		}
	}
	for i := range fs.Activities {
		a := &fs.Activities[i]
		if len(a.ClientIDs) == 0 {
			continue
		}
		hours := a.DurationHours()
		if hours <= 0 {
			continue
		}
		share := hours / float64(len(a.ClientIDs))
		rate := cm.NominalRateByPresetID(a.PresetID)
		for _, id := range a.ClientIDs {
			costs[id] += share * rate
		}
	}

	out := []model.ClientProfit{}
	for i := range clients {
		c := &clients[i]
		cost := costs[c.ID]
		if c.Budget <= 0 && cost <= 0 {
			continue
		}
		profit := c.Budget - cost
		margin := 0.0
		if c.Budget > 0 {
			margin = profit / c.Budget * 100
		}
		out = append(out, model.ClientProfit{
			ClientID:     c.ID,
			Name:         c.Name,
			Budget:       c.Budget,
			Costs:        cost,
			Profit:       profit,
			ProfitMargin: margin,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit > out[j].Profit })
	return out
}
