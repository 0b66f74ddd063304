package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/valeriomes/agenzia-backend/internal/api/handlers"
	"github.com/valeriomes/agenzia-backend/internal/config"
	"github.com/valeriomes/agenzia-backend/internal/middleware"
	"github.com/valeriomes/agenzia-backend/internal/repository"
	"github.com/valeriomes/agenzia-backend/internal/service"
)

func main() {
	// LOAD ENV
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed load config:", err)
	}

	// INIT DB
	repo, err := repository.NewPostgresRepoFromConfig(&repository.DBConfig{
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal("failed connect db:", err)
	}

	// MIGRATIONS
	if err := repo.RunMigrations(context.Background()); err != nil {
		log.Fatal("migration error:", err)
	}

	// ADMIN SEED
	hashed, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err := repo.UpsertAdmin(context.Background(), cfg.AdminUsername, string(hashed)); err != nil {
		log.Println("failed seeding admin:", err)
	} else {
		log.Println("admin seeded OK")
	}

	// SERVICES
	analyticsSvc := service.NewAnalyticsService(repo, cfg)
	importer := service.NewImporter(repo)

	// HANDLERS
	authHandler := handlers.NewAuthHandler(repo, cfg.JWTSecret)
	reportHandler := handlers.NewReportHandler(analyticsSvc)
	importHandler := handlers.NewImportHandler(importer)
	entityHandler := handlers.NewEntityHandler(repo)

	// ROUTER
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "alive"})
	})

	api := r.Group("/api/v1")

	// AUTH ROUTES
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	secured := api.Group("")
	secured.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// SYNC / IMPORT
	secured.POST("/sync/import", importHandler.Import)

	// ENTITY PICKERS
	secured.GET("/clients", entityHandler.ListClients)
	secured.GET("/users", entityHandler.ListUsers)
	secured.GET("/presets", entityHandler.ListPresets)
	secured.GET("/absences", entityHandler.ListAbsences)

	// REPORT ROUTES
	reports := secured.Group("/reports")
	{
		reports.GET("", reportHandler.GetDashboard)
		reports.GET("/kpis", reportHandler.GetKPIs)
		reports.GET("/alerts", reportHandler.GetAlerts)
		reports.GET("/workload", reportHandler.GetWorkload)
		reports.GET("/performance", reportHandler.GetPerformance)
		reports.GET("/future-workload", reportHandler.GetFutureWorkload)
		reports.GET("/heatmap", reportHandler.GetHeatmap)
		reports.GET("/radar", reportHandler.GetRadar)
		reports.GET("/distributions", reportHandler.GetDistribution)
		reports.GET("/costs/activity-types", reportHandler.GetActivityCosts)
		reports.GET("/costs/clients", reportHandler.GetClientCosts)
		reports.GET("/costs/monthly", reportHandler.GetMonthlyCosts)
		reports.GET("/profitability", reportHandler.GetProfitability)
		reports.GET("/predictions", reportHandler.GetForecast)
		reports.GET("/efficiency", reportHandler.GetEfficiency)
		reports.GET("/leaderboard", reportHandler.GetLeaderboard)
		reports.GET("/export", reportHandler.ExportCSV)
	}

	// START SERVER
	log.Println("Server running on port:", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server error:", err)
	}
}
