package storage

import (
	"fmt"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/config"
	"github.com/Kadhiravan2002/AuraX/internal/mapping"
)

// NewRecordRepository selects a record backend from config.
func NewRecordRepository(cfg *config.Config, logger internal.Logger) (RecordRepository, error) {
	switch cfg.StorageBackend {
	case "file":
		return NewFileRecordStore(cfg.RecordsFile, logger)
	case "postgres":
		return NewPostgresStorage(cfg.PostgresDSN, logger)
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewMappingRepository returns the saved-mapping persistence. Mappings are a
// local registry regardless of the record backend, so this is always the
// file store.
func NewMappingRepository(cfg *config.Config, logger internal.Logger) mapping.Repository {
	return NewFileMappingStore(cfg.MappingsFile, logger)
}
