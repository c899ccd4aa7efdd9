package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/AnkitS-21/campus-connect-hub/internal/app"
	"github.com/AnkitS-21/campus-connect-hub/internal/config"
	"github.com/AnkitS-21/campus-connect-hub/internal/database"
	apphttp "github.com/AnkitS-21/campus-connect-hub/internal/http"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/handlers"
	httpmw "github.com/AnkitS-21/campus-connect-hub/internal/http/middleware"
	"github.com/AnkitS-21/campus-connect-hub/internal/repository/postgres"
	"github.com/AnkitS-21/campus-connect-hub/internal/security"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	profileRepo := postgres.NewProfileRepository(db)
	listingRepo := postgres.NewListingRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	profileService := app.NewProfileService(profileRepo)
	listingService := app.NewListingService(listingRepo, profileRepo, applicationRepo)
	applicationService := app.NewApplicationService(applicationRepo, listingRepo, profileRepo)
	reportService := app.NewReportService(applicationRepo, listingRepo)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if redisClient := database.NewRedis(cfg.RedisAddr); redisClient != nil {
		limiter = httpmw.NewRedisLimiter(redisClient)
		logger.Info("using redis rate limiter", slog.String("addr", cfg.RedisAddr))
	}

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		ProfileHandler:     handlers.NewProfileHandler(profileService),
		ListingHandler:     handlers.NewListingHandler(listingService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, limiter),
		ReportHandler:      handlers.NewReportHandler(reportService),
		ExportHandler:      handlers.NewExportHandler(applicationService, listingService),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started", slog.String("port", cfg.HTTPPort), slog.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(env string) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
