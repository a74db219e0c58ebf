package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/api"
	"github.com/Kadhiravan2002/AuraX/internal/auth"
	"github.com/Kadhiravan2002/AuraX/internal/config"
	"github.com/Kadhiravan2002/AuraX/internal/importer"
	"github.com/Kadhiravan2002/AuraX/internal/mapping"
	"github.com/Kadhiravan2002/AuraX/internal/notify"
	"github.com/Kadhiravan2002/AuraX/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ensureDataDir(cfg)

	recordRepo, err := storage.NewRecordRepository(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init record storage: %v", err)
	}

	mappingRepo := storage.NewMappingRepository(cfg, logger)
	mappingStore, err := mapping.NewStore(context.Background(), mappingRepo, logger)
	if err != nil {
		logger.Fatalf("failed to load saved mappings: %v", err)
	}

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.WebhookURL, logger)
	}

	importSvc := importer.NewService(recordRepo, mappingStore, notifier, cfg.ImportChunkSize, logger)

	app := &api.Application{
		Log:          logger,
		RecordRepo:   recordRepo,
		MappingStore: mappingStore,
		ImportSvc:    importSvc,
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	r := api.NewRouter(app, provider, cfg)

	logger.Infof("Server running on %s (backend=%s)", cfg.ListenAddr, cfg.StorageBackend)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}

func ensureDataDir(cfg *config.Config) {
	for _, p := range []string{cfg.RecordsFile, cfg.MappingsFile, cfg.SQLitePath} {
		if dir := filepath.Dir(p); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
	}
}
