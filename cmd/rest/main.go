package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"quicknotes-be/internal/bootstrap"
	"quicknotes-be/internal/config"
	"quicknotes-be/internal/server"
	"quicknotes-be/internal/tracer"
	"quicknotes-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Connection, cfg.App.Environment)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-quit:
		log.Printf("Received %s, shutting down...", sig)
	}

	if err := srv.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := container.Cache.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Database close error: %v", err)
		}
	}
	_ = container.Logger.Sync()

	log.Println("Shutdown complete")
}
