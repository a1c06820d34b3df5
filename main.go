package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"oncampus/internal/config"
	"oncampus/internal/directory"
	"oncampus/internal/directory/directory_api"
	"oncampus/internal/logger"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	color.NoColor = color.NoColor || !cfg.Log.Color

	log, err := logger.New(logger.Options{
		Dir:      cfg.Log.Dir,
		Service:  "oncampus",
		MinLevel: logger.ParseLevel(cfg.Log.Level),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("APP", "Starting OnCampus directory service")
	if envErr != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	ctx := context.Background()

	dir, closeStore, err := directory.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("STORE", fmt.Sprintf("Failed to open %s store: %v", cfg.Store.Driver, err))
		return
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("STORE", fmt.Sprintf("Failed to close store: %v", err))
		}
	}()

	for _, res := range dir.Initialize(ctx) {
		if res.Err != nil {
			log.Warn("APP", fmt.Sprintf("%s served from seed data: %v", res.Kind, res.Err))
		}
	}

	log.Info("HTTP", "Setting up router and middleware")
	handler := directory_api.NewHandler(dir, log)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      directory_api.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 OnCampus running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ OnCampus shutdown complete")
	}
}
