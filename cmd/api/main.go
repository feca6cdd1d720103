package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kopilka/internal/interfaces/scheduler"
	"kopilka/internal/shared/config"
	"kopilka/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize telemetry (if enabled)
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(context.Background(), telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	// Initialize dependencies
	deps, err := NewDependencies(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Initialize reminder scheduler (if enabled)
	var sched *scheduler.Scheduler
	if cfg.Reminder.Enabled {
		sched, err = scheduler.New(scheduler.Config{
			ScheduleTimes: cfg.Reminder.ScheduleTimes,
			WorkerCount:   cfg.Reminder.WorkerCount,
			JobDelay:      cfg.Reminder.JobDelay,
			QueueSize:     cfg.Reminder.QueueSize,
			RunOnStartup:  cfg.Reminder.RunOnStartup,
			JobProvider:   scheduler.ReminderJobProvider(deps.UserService, deps.Bot),
		})
		if err != nil {
			return err
		}
		sched.Start()
		log.Printf("Reminder scheduler started with times: %v", cfg.Reminder.ScheduleTimes)
	} else {
		log.Println("Reminder scheduler is disabled")
	}

	// Setup routes and start servers
	handler := SetupRoutes(deps, cfg)
	srv, redirectSrv := StartServers(handler, cfg)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	GracefulShutdown(srv, redirectSrv, sched, 30*time.Second)
	return nil
}
