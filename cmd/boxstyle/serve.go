// cmd/boxstyle/serve.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crunchvision/boxstylemcp/internal/api"
	"github.com/crunchvision/boxstylemcp/internal/app"
	"github.com/crunchvision/boxstylemcp/internal/utils"
)

// runServer mirrors cmd/server but inside the CLI process
func runServer() error {
	logger := utils.GetLogger()

	application := app.GetApp()
	if err := application.Initialize(); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	router, err := api.SetupRouter()
	if err != nil {
		return fmt.Errorf("router setup failed: %w", err)
	}

	srv := &http.Server{
		Addr:    ":" + application.Config.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("server listening on port %s", application.Config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server...", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
