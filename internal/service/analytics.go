package service

import (
	"context"
	"time"

	"github.com/valeriomes/agenzia-backend/internal/config"
	"github.com/valeriomes/agenzia-backend/internal/model"
)

// SnapshotLoader is the external provider of the entity snapshot one
// analytics pass runs over.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (*model.Snapshot, error)
}

// AnalyticsService turns a snapshot plus a filter selection into the
// dashboard's view models. It holds no state of its own between passes.
type AnalyticsService struct {
	repo   SnapshotLoader
	cfg    *config.Config
	levels LevelTable
	now    func() time.Time
}

func NewAnalyticsService(repo SnapshotLoader, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		cfg:    cfg,
		levels: DefaultLevels(),
		now:    time.Now,
	}
}

// Pass is one fully prepared computation pass: a loaded snapshot, the
// filtered working set and the snapshot's cost model. Every report method
// on it is pure, so running the same pass twice gives identical output.
type Pass struct {
	Snap   *model.Snapshot
	Set    FilteredSet
	Cost   *CostModel
	Levels LevelTable
	Now    time.Time
}

// NewPass loads a fresh snapshot and applies the filter selection.
func (s *AnalyticsService) NewPass(ctx context.Context, opts FilterOptions) (*Pass, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &Pass{
		Snap:   snap,
		Set:    ApplyFilter(snap, opts),
		Cost:   NewCostModel(snap, s.cfg.StandardMonthlyHours, s.cfg.DefaultPresetRate),
		Levels: s.levels,
		Now:    s.now(),
	}, nil
}

func (p *Pass) KPIs() model.KPIReport { return BuildKPIs(p.Set, p.Now) }
func (p *Pass) Alerts() []model.Alert { return BuildAlerts(p.Set, p.Now) }
func (p *Pass) Workload() []model.WorkloadEntry {
	return BuildWorkload(p.Set, p.Snap.Users)
}

func (p *Pass) Performance() []model.PerformanceEntry {
	return BuildPerformance(p.Set, p.Snap.Users)
}

func (p *Pass) FutureWorkload() model.FutureWorkload {
	return BuildFutureWorkload(p.Set, p.Snap.Users, p.Now)
}

func (p *Pass) Heatmap() []model.HeatmapRow {
	return BuildHeatmap(p.Set, p.Snap.Users)
}

func (p *Pass) Radar() []model.RadarEntry {
	return BuildRadar(p.Set, p.Snap.Users)
}

func (p *Pass) Distribution() model.Distribution { return BuildDistribution(p.Set) }

func (p *Pass) ActivityCosts() []model.ActivityTypeCost {
	return BuildActivityCosts(p.Set, p.Cost, p.Snap.PresetByID())
}

func (p *Pass) ClientCosts() model.ClientCostReport {
	return BuildClientCosts(p.Set, p.Cost, p.Snap.ClientByID())
}

func (p *Pass) MonthlyCosts() model.MonthlyCostReport {
	return BuildMonthlyCosts(p.Set, p.Cost)
}

func (p *Pass) Profitability() []model.ClientProfit {
	return BuildProfitability(p.Set, p.Cost, p.Snap.Clients)
}

func (p *Pass) Forecast() model.DeliveryForecast { return BuildForecast(p.Set, p.Now) }
func (p *Pass) Efficiency() []model.EfficiencyPoint {
	return BuildEfficiency(p.Set)
}

func (p *Pass) Leaderboard() []model.LeaderboardEntry {
	return BuildLeaderboard(p.Set, p.Snap.Users, p.Levels)
}

// ExportCSV renders the two-section report file for the pass's working set.
func (p *Pass) ExportCSV() ([]byte, error) {
	return ExportCSV(p.Set, p.Snap.ClientByID(), p.Snap.UserByID())
}

// Dashboard computes every widget in one go.
func (p *Pass) Dashboard() *model.Dashboard {
	return &model.Dashboard{
		KPIs:           p.KPIs(),
		Alerts:         p.Alerts(),
		Workload:       p.Workload(),
		Performance:    p.Performance(),
		FutureWorkload: p.FutureWorkload(),
		Heatmap:        p.Heatmap(),
		Radar:          p.Radar(),
		Distribution:   p.Distribution(),
		ActivityCosts:  p.ActivityCosts(),
		ClientCosts:    p.ClientCosts(),
		MonthlyCosts:   p.MonthlyCosts(),
		Profitability:  p.Profitability(),
		Forecast:       p.Forecast(),
		Efficiency:     p.Efficiency(),
		Leaderboard:    p.Leaderboard(),
	}
}
