package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker/internal/auth"
	"tracker/internal/config"
	"tracker/internal/httpapi"
	"tracker/internal/notify"
	"tracker/internal/repository"
	"tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	access := auth.NewAccessTokens(auth.TokenConfig{Secret: cfg.AccessSecret, TTL: cfg.AccessTTL, Issuer: cfg.Issuer})
	refresh := auth.NewRefreshTokens(auth.TokenConfig{Secret: cfg.RefreshSecret, TTL: cfg.RefreshTTL, Issuer: cfg.Issuer})

	reportSvc := service.NewReportService(userRepo, projectRepo, taskRepo, commentRepo)
	app := httpapi.New(httpapi.Services{
		Auth:      service.NewAuthService(userRepo, auth.NewPasswordHasher(cfg.BcryptCost), access, refresh),
		Users:     service.NewUserService(userRepo),
		Projects:  service.NewProjectService(projectRepo),
		Tasks:     service.NewTaskService(taskRepo, projectRepo),
		Comments:  service.NewCommentService(commentRepo, taskRepo),
		Hierarchy: service.NewHierarchyService(projectRepo),
		Reports:   reportSvc,
	}, httpapi.Options{AccessLog: true})

	if cfg.ReportScheduled() {
		scheduler, err := scheduleReports(cfg, reportSvc)
		if err != nil {
			log.Fatalf("schedule reports: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] tracker listening on %s (%s)", cfg.HTTPAddr, cfg.AppEnv)
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("http: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
	log.Println("Shutdown complete.")
}

func scheduleReports(cfg config.Config, reports *service.ReportService) (*service.SchedulerService, error) {
	var sender notify.Sender = notify.LogSender{}
	if cfg.ReportsEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, err
		}
		sender = tg
	}

	job := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := reports.Summary(jobCtx, time.Now())
		if err == nil {
			err = sender.Send(jobCtx, text)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("report: %v", err)
		}
	}

	scheduler := service.NewSchedulerService(time.Local)
	var err error
	if cfg.ReportAt != "" {
		_, err = scheduler.ScheduleDaily(cfg.ReportAt, job)
	} else {
		_, err = scheduler.ScheduleInterval(cfg.ReportInterval, job)
	}
	if err != nil {
		return nil, err
	}
	return scheduler, nil
}
