package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valeriomes/agenzia-backend/internal/service"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	Svc *service.AnalyticsService
}

func NewReportHandler(svc *service.AnalyticsService) *ReportHandler {
	return &ReportHandler{Svc: svc}
}

// parseFilter reads the shared query params. client_id/user_id default to
// "all"; dates use YYYY-MM-DD, end date inclusive through end of day.
func parseFilter(c *gin.Context) (service.FilterOptions, bool) {
	opts := service.FilterOptions{
		ClientID: c.DefaultQuery("client_id", service.FilterAll),
		UserID:   c.DefaultQuery("user_id", service.FilterAll),
	}
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, use YYYY-MM-DD"})
			return opts, false
		}
		opts.StartDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, use YYYY-MM-DD"})
			return opts, false
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		opts.EndDate = &end
	}
	return opts, true
}

// report runs one pass and responds with whatever the builder picks out
// of it.
func (h *ReportHandler) report(c *gin.Context, build func(p *service.Pass) interface{}) {
	opts, ok := parseFilter(c)
	if !ok {
		return
	}
	pass, err := h.Svc.NewPass(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, build(pass))
}

func (h *ReportHandler) GetDashboard(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Dashboard() })
}

func (h *ReportHandler) GetKPIs(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.KPIs() })
}

func (h *ReportHandler) GetAlerts(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Alerts() })
}

func (h *ReportHandler) GetWorkload(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Workload() })
}

func (h *ReportHandler) GetPerformance(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Performance() })
}

func (h *ReportHandler) GetFutureWorkload(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.FutureWorkload() })
}

func (h *ReportHandler) GetHeatmap(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Heatmap() })
}

func (h *ReportHandler) GetRadar(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Radar() })
}

func (h *ReportHandler) GetDistribution(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Distribution() })
}

func (h *ReportHandler) GetActivityCosts(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.ActivityCosts() })
}

func (h *ReportHandler) GetClientCosts(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.ClientCosts() })
}

func (h *ReportHandler) GetMonthlyCosts(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.MonthlyCosts() })
}

func (h *ReportHandler) GetProfitability(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Profitability() })
}

func (h *ReportHandler) GetForecast(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Forecast() })
}

func (h *ReportHandler) GetEfficiency(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Efficiency() })
}

func (h *ReportHandler) GetLeaderboard(c *gin.Context) {
	h.report(c, func(p *service.Pass) interface{} { return p.Leaderboard() })
}

// ExportCSV streams the two-section report file as an attachment.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	opts, ok := parseFilter(c)
	if !ok {
		return
	}
	pass, err := h.Svc.NewPass(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	data, err := pass.ExportCSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	filename := "report_" + pass.Now.Format(dateLayout) + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
