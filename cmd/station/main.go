package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpapi "visitdesk-station/internal/api/http"
	"visitdesk-station/internal/cache"
	"visitdesk-station/internal/config"
	"visitdesk-station/internal/gateway"
	"visitdesk-station/internal/jobs"
	"visitdesk-station/internal/logger"
	"visitdesk-station/internal/notify"
	"visitdesk-station/internal/scheduler"
	"visitdesk-station/internal/security"
	"visitdesk-station/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local .env is optional; the config loader reads the variables.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Visitdesk check-in station...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Backend configuration", "base_url", cfg.Backend.BaseURL, "timeout_seconds", cfg.Backend.TimeoutSeconds)
	logger.Info("Check-in windows", "early_grace_minutes", cfg.Checkin.EarlyGraceMinutes, "late_grace_minutes", cfg.Checkin.LateGraceMinutes, "scan_cooldown_seconds", cfg.Checkin.ScanCooldownSeconds)

	// Invitation service client (lookup + mutation collaborator)
	client := gateway.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIToken, cfg.Backend.Timeout())

	// Local cache of today's invitations
	invCache := cache.New(cfg.Checkin.LateGrace())

	// Host arrival notifications
	var notifier service.NotificationService
	if cfg.SendGrid.Enabled {
		logger.Info("Host arrival notifications enabled", "from", cfg.SendGrid.FromEmail)
		notifier = notify.NewSendGridNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Info("Host arrival notifications disabled")
	}

	// Check-in engine
	evaluator := service.NewEvaluator(cfg.Checkin.EarlyGrace(), cfg.Checkin.LateGrace())
	checkInSvc := service.NewCheckInService(client, client, notifier, invCache, evaluator, time.Now, cfg.Checkin.ScanCooldown())

	// Background cache refresh
	jobRunner := jobs.NewJobRunner(client, invCache, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Warm the cache so the dashboard is populated before the first tick
	go jobRunner.RefreshActiveInvitations()

	// Operator token validation
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// HTTP server for the kiosk UI
	handler := httpapi.NewCheckInHandler(checkInSvc, invCache)
	router := httpapi.NewRouter(handler, tokenManager)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("Station HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down station...")

	// Clear the scan cooldown slot so a restarted session starts clean
	checkInSvc.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Station stopped")
}
