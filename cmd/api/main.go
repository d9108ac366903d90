package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jobhive/jobhive-backend/api/responses"
	"github.com/jobhive/jobhive-backend/api/routes"
	"github.com/jobhive/jobhive-backend/internal/applications"
	"github.com/jobhive/jobhive-backend/internal/auth"
	"github.com/jobhive/jobhive-backend/internal/companies"
	"github.com/jobhive/jobhive-backend/internal/jobs"
	"github.com/jobhive/jobhive-backend/internal/notifications"
	"github.com/jobhive/jobhive-backend/internal/users"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db"
	"github.com/jobhive/jobhive-backend/pkg/logger"
	"github.com/jobhive/jobhive-backend/pkg/media"
	"github.com/jobhive/jobhive-backend/pkg/metrics"
	"github.com/jobhive/jobhive-backend/pkg/migrate"
	"github.com/jobhive/jobhive-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	responses.ExposeStacks(!cfg.App.IsProd())

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mediaStore, err := media.New(cfg.Cloudinary)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cloudinary", err)
		os.Exit(1)
	}

	mailer := notifications.NewSMTPMailer(cfg.SMTP, logg)

	userRepo := users.NewRepository(dbClient.DB())
	tokenRepo := auth.NewTokenRepository(dbClient.DB())
	companyRepo := companies.NewRepository(dbClient.DB())
	jobRepo := jobs.NewRepository(dbClient.DB())
	applicationRepo := applications.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceDeps{
		Users:      userRepo,
		Tokens:     tokenRepo,
		Mailer:     mailer,
		App:        cfg.App,
		JWT:        cfg.JWT,
		Password:   cfg.Password,
		Cloudinary: cfg.Cloudinary,
		Reset:      cfg.Reset,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceDeps{
		Repo:         userRepo,
		Tokens:       tokenRepo,
		Companies:    companyRepo,
		Jobs:         jobRepo,
		Applications: applicationRepo,
		Uploader:     mediaStore,
		Mailer:       mailer,
		Logger:       logg,
		App:          cfg.App,
		JWT:          cfg.JWT,
		Password:     cfg.Password,
		Cloudinary:   cfg.Cloudinary,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	companyService, err := companies.NewService(companies.ServiceDeps{
		Repo:         companyRepo,
		Jobs:         jobRepo,
		Applications: applicationRepo,
		Users:        userRepo,
		Uploader:     mediaStore,
		Logger:       logg,
		Cloudinary:   cfg.Cloudinary,
		Upload:       cfg.Upload,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create company service", err)
		os.Exit(1)
	}

	jobService, err := jobs.NewService(jobs.ServiceDeps{
		Repo:         jobRepo,
		Companies:    companyRepo,
		Applications: applicationRepo,
		Uploader:     mediaStore,
		Logger:       logg,
		Cloudinary:   cfg.Cloudinary,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create job service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, httpMetrics,
			authService, userService, companyService, jobService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
