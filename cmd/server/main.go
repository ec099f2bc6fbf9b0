// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crunchvision/boxstylemcp/internal/api"
	"github.com/crunchvision/boxstylemcp/internal/app"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("starting boxstylemcp server...")

	// 1. Load configuration, logging and services in dependency order
	application := app.GetApp()
	if err := application.Initialize(); err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	cfg := application.Config
	log.Printf("configuration loaded, port: %s", cfg.Port)

	// 2. Ensure the log directory exists
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
			log.Printf("warning: cannot create log directory %s: %v", cfg.LogDir, err)
		}
	}

	// 3. Set up routes; only pulls services from the container
	router, err := api.SetupRouter()
	if err != nil {
		log.Fatalf("router setup failed: %v", err)
	}
	log.Println("routes configured")

	// 4. Start serving
	log.Printf("server listening on port %s", cfg.Port)
	setupGracefulShutdown(router, cfg.Port)
}

// setupGracefulShutdown serves until SIGINT/SIGTERM, then drains for 30s
func setupGracefulShutdown(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped cleanly")
}
