package model

import "time"

// View models produced by the analytics pipeline, one per dashboard
// widget. All of them are transient: recomputed from a fresh snapshot on
// every request and discarded after rendering.

type TrendDelta struct {
	CompletedTasksPct float64 `json:"completed_tasks_pct"`
	TotalHoursPct     float64 `json:"total_hours_pct"`
}

type KPIReport struct {
	ActiveProjects    int        `json:"active_projects"`
	AtRiskProjects    int        `json:"at_risk_projects"`
	TasksInProgress   int        `json:"tasks_in_progress"`
	UpcomingDeadlines int        `json:"upcoming_deadlines"`
	CompletedTasks    int        `json:"completed_tasks"`
	TotalHours        float64    `json:"total_hours"`
	Trend             TrendDelta `json:"trend"`
}

const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
	AlertInfo     = "info"
)

type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type WorkloadEntry struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	ActiveTasks int    `json:"active_tasks"`
}

type PerformanceEntry struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	AssignedTasks  int     `json:"assigned_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	TotalHours     float64 `json:"total_hours"`
	EstimatedHours float64 `json:"estimated_hours"`
	CompletionRate float64 `json:"completion_rate"`
}

type FutureWorkloadRow struct {
	UserID string    `json:"user_id"`
	Name   string    `json:"name"`
	Hours  []float64 `json:"hours"`
	Total  float64   `json:"total"`
}

type FutureWorkload struct {
	Days []string            `json:"days"`
	Rows []FutureWorkloadRow `json:"rows"`
}

// HeatmapRow holds hours per weekday, Monday first.
type HeatmapRow struct {
	UserID string    `json:"user_id"`
	Name   string    `json:"name"`
	Hours  []float64 `json:"hours"`
}

type RadarEntry struct {
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	Completion   float64 `json:"completion"`
	Hours        float64 `json:"hours"`
	OnTime       float64 `json:"on_time"`
	Volume       float64 `json:"volume"`
	Productivity float64 `json:"productivity"`
}

type Distribution struct {
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
}

type ActivityTypeCost struct {
	ActivityType string  `json:"activity_type"`
	Hours        float64 `json:"hours"`
	Cost         float64 `json:"cost"`
	AverageRate  float64 `json:"average_rate"`
}

type ClientCost struct {
	ClientID    string  `json:"client_id"`
	Name        string  `json:"name"`
	Color       string  `json:"color,omitempty"`
	Hours       float64 `json:"hours"`
	Cost        float64 `json:"cost"`
	AverageRate float64 `json:"average_rate"`
}

type ClientCostReport struct {
	Clients   []ClientCost `json:"clients"`
	TotalCost float64      `json:"total_cost"`
	MaxCost   float64      `json:"max_cost"`
}

type MonthlyCost struct {
	Month string  `json:"month"`
	Cost  float64 `json:"cost"`
}

type MonthlyCostReport struct {
	Months  []MonthlyCost `json:"months"`
	Average float64       `json:"average"`
}

type ClientProfit struct {
	ClientID     string  `json:"client_id"`
	Name         string  `json:"name"`
	Budget       float64 `json:"budget"`
	Costs        float64 `json:"costs"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

type ActivityAccuracy struct {
	ActivityType string  `json:"activity_type"`
	AvgDeviation float64 `json:"avg_deviation"`
	AccuracyRate float64 `json:"accuracy_rate"`
	Samples      int     `json:"samples"`
}

const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

type TaskPrediction struct {
	TaskID        string     `json:"task_id"`
	Title         string     `json:"title"`
	ActivityType  string     `json:"activity_type,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PredictedDate *time.Time `json:"predicted_date,omitempty"`
	DelayDays     int        `json:"delay_days"`
	Risk          string     `json:"risk"`
}

type DeliveryForecast struct {
	Accuracy        []ActivityAccuracy `json:"accuracy"`
	Predictions     []TaskPrediction   `json:"predictions"`
	OverallAccuracy float64            `json:"overall_accuracy"`
}

type EfficiencyPoint struct {
	Month      string  `json:"month"`
	Efficiency float64 `json:"efficiency"`
	Tasks      int     `json:"tasks"`
}

type LeaderboardEntry struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	Color          string  `json:"color,omitempty"`
	XP             int     `json:"xp"`
	Level          int     `json:"level"`
	LevelName      string  `json:"level_name,omitempty"`
	CompletedTasks int     `json:"completed_tasks"`
	TotalHours     float64 `json:"total_hours"`
	OnTime         int     `json:"on_time"`
	Streak         int     `json:"streak"`
}

// Dashboard bundles every widget for the single-call endpoint.
type Dashboard struct {
	KPIs           KPIReport          `json:"kpis"`
	Alerts         []Alert            `json:"alerts"`
	Workload       []WorkloadEntry    `json:"workload"`
	Performance    []PerformanceEntry `json:"performance"`
	FutureWorkload FutureWorkload     `json:"future_workload"`
	Heatmap        []HeatmapRow       `json:"heatmap"`
	Radar          []RadarEntry       `json:"radar"`
	Distribution   Distribution       `json:"distribution"`
	ActivityCosts  []ActivityTypeCost `json:"activity_costs"`
	ClientCosts    ClientCostReport   `json:"client_costs"`
	MonthlyCosts   MonthlyCostReport  `json:"monthly_costs"`
	Profitability  []ClientProfit     `json:"profitability"`
	Forecast       DeliveryForecast   `json:"forecast"`
	Efficiency     []EfficiencyPoint  `json:"efficiency"`
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
}

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
