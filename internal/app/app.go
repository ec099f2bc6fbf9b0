// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/crunchvision/boxstylemcp/internal/config"
	"github.com/crunchvision/boxstylemcp/internal/di"
	"github.com/crunchvision/boxstylemcp/internal/services"
	"github.com/crunchvision/boxstylemcp/internal/storage"
	"github.com/crunchvision/boxstylemcp/internal/utils"
)

// App is the application singleton. It owns service initialization order
// and process lifecycle.
type App struct {
	Config   *config.Config
	stopChan chan struct{}
}

var (
	instance *App
	appOnce  sync.Once
)

// GetApp returns the application instance
func GetApp() *App {
	appOnce.Do(func() {
		instance = &App{
			stopChan: make(chan struct{}),
		}
	})
	return instance
}

// Initialize loads configuration, sets up logging and initializes services
func (a *App) Initialize() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.Config = cfg

	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, "boxstylemcp.log")
		if err := utils.InitLogger(logFile); err != nil {
			utils.GetLogger().Warnf("failed to initialize log file: %v", err)
		}
	}

	if cfg.DebugMode {
		utils.GetLogger().SetLogLevel(utils.DEBUG)
	}

	return InitServices(cfg)
}

// InitServices registers all services in dependency order. The catalog load
// is the only I/O; it happens once, and a failure here is fatal.
func InitServices(cfg *config.Config) error {
	container := di.GetContainer()
	logger := utils.GetLogger()

	fileCache := storage.NewFileCacheService(100, 10*time.Minute)
	container.Register("file_cache", fileCache)

	catalogService, err := services.NewCatalogService(cfg.DataDir, fileCache)
	if err != nil {
		return fmt.Errorf("failed to initialize rule catalog: %w", err)
	}
	container.Register("catalog", catalogService)
	logger.Infof("rule catalog loaded: %d categories", len(catalogService.CategoryNames()))

	parserService := services.NewParserService(catalogService.Maps())
	container.Register("parser", parserService)

	transformerService := services.NewTransformerService()
	container.Register("transformer", transformerService)

	promptService := services.NewPromptService(catalogService, parserService, transformerService)
	container.Register("prompt", promptService)

	skeletonStore := services.NewSkeletonStore(cfg.SkeletonTTL, 10*time.Minute)
	container.Register("skeletons", skeletonStore)

	return nil
}

// Stop signals the application to shut down
func (a *App) Stop() {
	close(a.stopChan)
}

// Done exposes the shutdown signal
func (a *App) Done() <-chan struct{} {
	return a.stopChan
}
