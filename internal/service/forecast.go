package service

import (
	"math"
	"sort"
	"time"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

const maxPredictions = 10

// BuildForecast estimates delivery deviation per activity type from
// completed tasks and projects it onto open ones.
//
// Deviation is (actual - estimated) / estimated, in percent, averaged per
// type over tasks that carry both figures. An open task inherits its
// type's average deviation as a predicted delay of ceil(avg/10) days when
// the average runs over, zero otherwise.
func BuildForecast(fs FilteredSet, now time.Time) model.DeliveryForecast {
	type acc struct {
		sum     float64
		samples int
	}
	byType := make(map[string]*acc)

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.Status != model.StatusApprovato || t.EstimatedMinutes <= 0 || t.TimeSpentSeconds <= 0 {
			continue
		}
		estimated := float64(t.EstimatedMinutes) * 60
		actual := float64(t.TimeSpentSeconds)
		deviation := (actual - estimated) / estimated * 100
		a, ok := byType[t.ActivityType]
		if !ok {
			a = &acc{}
			byType[t.ActivityType] = a
		}
		a.sum += deviation
		a.samples++
	}

	forecast := model.DeliveryForecast{
		Accuracy:    []model.ActivityAccuracy{},
		Predictions: []model.TaskPrediction{},
	}
	avgByType := make(map[string]float64, len(byType))
	accuracyTotal := 0.0
	for name, a := range byType {
		avg := a.sum / float64(a.samples)
		avgByType[name] = avg
		accuracy := 100 - math.Abs(avg)
		if accuracy < 0 {
			accuracy = 0
		}
		forecast.Accuracy = append(forecast.Accuracy, model.ActivityAccuracy{
			ActivityType: name,
			AvgDeviation: avg,
			AccuracyRate: accuracy,
			Samples:      a.samples,
		})
		accuracyTotal += accuracy
	}
	sort.SliceStable(forecast.Accuracy, func(i, j int) bool {
		return forecast.Accuracy[i].ActivityType < forecast.Accuracy[j].ActivityType
	})
	if len(forecast.Accuracy) > 0 {
		forecast.OverallAccuracy = accuracyTotal / float64(len(forecast.Accuracy))
	}

	for i := range fs.Tasks {
		if len(forecast.Predictions) >= maxPredictions {
			break
		}
		t := &fs.Tasks[i]
		if t.IsTerminal() || t.DueDate == nil {
			continue
		}
		delay := 0
		if avg, ok := avgByType[t.ActivityType]; ok && avg > 0 {
			delay = int(math.Ceil(avg / 10))
		}
		predicted := t.DueDate.AddDate(0, 0, delay)
		risk := model.RiskLow
		switch {
		case delay > 3:
			risk = model.RiskHigh
		case delay > 1:
			risk = model.RiskMedium
		}
		forecast.Predictions = append(forecast.Predictions, model.TaskPrediction{
			TaskID:        t.ID,
			Title:         t.Title,
			ActivityType:  t.ActivityType,
			DueDate:       t.DueDate,
			PredictedDate: &predicted,
			DelayDays:     delay,
			Risk:          risk,
		})
	}

	return forecast
}

const efficiencyMonths = 6

// BuildEfficiency tracks estimated-vs-actual efficiency of completed tasks
// by completion month, keeping the latest six months in chronological
// order. A month with no recorded actual time reads as 100.
func BuildEfficiency(fs FilteredSet) []model.EfficiencyPoint {
	type acc struct {
		estimated, actual float64
		tasks             int
	}
	byMonth := make(map[string]*acc)

	for i := range fs.Tasks {
		t := &fs.Tasks[i]
		if t.Status != model.StatusApprovato || t.UpdatedAt == nil {
			continue
		}
		key := t.UpdatedAt.Format("2006-01")
		a, ok := byMonth[key]
		if !ok {
			a = &acc{}
			byMonth[key] = a
		}
		a.estimated += float64(t.EstimatedMinutes) * 60
		a.actual += float64(t.TimeSpentSeconds)
		a.tasks++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > efficiencyMonths {
		months = months[len(months)-efficiencyMonths:]
	}

	out := []model.EfficiencyPoint{}
	for _, m := range months {
		a := byMonth[m]
		efficiency := 100.0
		if a.actual > 0 {
			efficiency = math.Round(a.estimated / a.actual * 100)
		}
		out = append(out, model.EfficiencyPoint{Month: m, Efficiency: efficiency, Tasks: a.tasks})
	}
	return out
}
