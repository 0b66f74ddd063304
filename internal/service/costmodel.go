package service

import (
	"strconv"
	"strings"

	"github.com/valeriomes/agenzia-backend/internal/model"
)

// defaults used when the config leaves the knobs unset
const (
	defaultStandardMonthlyHours = 160
	defaultNominalRate          = 25
)

// CostModel resolves effective hourly rates for the snapshot it was built
// from. Overhead is computed once at construction, not per call.
type CostModel struct {
	rates        map[string]float64
	overhead     float64
	nominalRates map[string]float64 // preset name -> rate
	presetRates  map[string]float64 // preset id -> rate
	nominalDef   float64
}

// ParseHourlyRate normalizes a back-office rate string. Comma decimals
// ("25,50") occur in historical data; anything unparseable is 0.
func ParseHourlyRate(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// NewCostModel builds the rate table for one snapshot. The overhead share
// is the company's monthly fixed costs spread over the active billable
// headcount and a standard working month; it applies only to billable
// roles (Collaboratore, Project Manager). A zero headcount leaves the
// overhead at 0.
func NewCostModel(snap *model.Snapshot, standardMonthlyHours, defaultPresetRate float64) *CostModel {
	if standardMonthlyHours <= 0 {
		standardMonthlyHours = defaultStandardMonthlyHours
	}
	if defaultPresetRate <= 0 {
		defaultPresetRate = defaultNominalRate
	}

	billable := 0
	for i := range snap.Users {
		u := &snap.Users[i]
		if u.IsActive() && u.IsBillable() {
			billable++
		}
	}

	overhead := 0.0
	if billable > 0 {
		overhead = snap.Costs.Total() / float64(billable) / standardMonthlyHours
	}

	cm := &CostModel{
		rates:        make(map[string]float64, len(snap.Users)),
		overhead:     overhead,
		nominalRates: make(map[string]float64, len(snap.Presets)),
		presetRates:  make(map[string]float64, len(snap.Presets)),
		nominalDef:   defaultPresetRate,
	}

	for i := range snap.Users {
		u := &snap.Users[i]
		rate := ParseHourlyRate(u.HourlyRate)
		if u.IsBillable() {
			rate += overhead
		}
		cm.rates[u.ID] = rate
	}

	for name, p := range snap.PresetByName() {
		cm.nominalRates[name] = p.HourlyRate
	}
	for id, p := range snap.PresetByID() {
		cm.presetRates[id] = p.HourlyRate
	}

	return cm
}

// HourlyOverhead returns the per-employee overhead share for this snapshot.
func (cm *CostModel) HourlyOverhead() float64 {
	return cm.overhead
}

// EffectiveRate returns base rate plus overhead for billable roles.
// Unknown users cost nothing.
func (cm *CostModel) EffectiveRate(userID string) float64 {
	return cm.rates[userID]
}

// NominalRate returns the activity type's listed rate, or the default when
// the type is unknown or has no rate. Used only by client profitability,
// which keeps the original system's rate source.
func (cm *CostModel) NominalRate(activityType string) float64 {
	if r, ok := cm.nominalRates[activityType]; ok && r > 0 {
		return r
	}
	return cm.nominalDef
}

// NominalRateByPresetID is NominalRate keyed by preset id, for calendar
// activities.
func (cm *CostModel) NominalRateByPresetID(presetID string) float64 {
	if r, ok := cm.presetRates[presetID]; ok && r > 0 {
		return r
	}
	return cm.nominalDef
}
