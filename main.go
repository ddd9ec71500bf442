package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artshop/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	app, err := NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialise app: %v", err)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.AppPort)
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Fiber.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// Confirmation emails already started get to finish.
	drainCtx, cancel := context.WithTimeout(ctx, cfg.EmailTimeout+time.Second)
	defer cancel()
	if err := app.Tasks.Wait(drainCtx); err != nil {
		log.Printf("Background tasks did not finish: %v", err)
	}

	app.Close()
	log.Println("Server gracefully stopped")
}
