package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"status-dashboard/api"
	"status-dashboard/config"
	"status-dashboard/database"
	"status-dashboard/jobs"
	"status-dashboard/render"
	"status-dashboard/scheduler"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chart rendering API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	fmt.Println("=== Status Dashboard - Chart Rendering Service ===")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	fmt.Println("✓ Configuration loaded")

	// Initialize database
	db, err := database.Initialize(cfg.AppDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	if err := repo.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	log.Println("✓ Database schema created")

	// Initialize worker pool
	workerPool := jobs.NewWorkerPool(cfg.WorkerPoolSize)
	defer workerPool.Stop()
	fmt.Printf("✓ Worker pool started with %d workers\n", cfg.WorkerPoolSize)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := render.NewMetrics()
	registry.MustRegister(metrics)

	renderer := render.NewService(repo, cfg, workerPool, metrics)

	// Retention cleanup
	sched := scheduler.NewScheduler(cfg, repo)
	sched.Start()
	defer sched.Stop()

	handler := api.NewHandler(repo, cfg, renderer, registry)

	// Setup router
	router := api.SetupRouter(handler)
	router.Use(api.CORSMiddleware())
	router.Use(api.LoggingMiddleware())

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // streams and page renders
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		fmt.Printf("✓ API server listening on %s\n", addr)
		fmt.Println("\nAPI Endpoints:")
		fmt.Println("  GET  /health")
		fmt.Println("  POST /api/chart/{svg,png,scene}?dir=ltr|rtl")
		fmt.Println("  POST /api/charts/stream")
		fmt.Println("  POST /api/export")
		fmt.Println("  POST /api/page/render?dir=ltr|rtl|auto&locale=")
		fmt.Println("  POST /api/page/jobs")
		fmt.Println("  GET  /api/page/jobs/{jobId}/status")
		fmt.Println("  GET  /api/page/jobs/{jobId}/result")
		fmt.Println("  GET  /metrics")
		fmt.Println("\nPress Ctrl+C to shutdown")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	fmt.Println("\nShutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Printf("Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Server exited")
	return nil
}
