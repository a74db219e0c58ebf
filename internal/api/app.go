package api

import (
	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/importer"
	"github.com/Kadhiravan2002/AuraX/internal/mapping"
	"github.com/Kadhiravan2002/AuraX/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Records() storage.RecordRepository
	Mappings() *mapping.Store
	Importer() *importer.Service
}

// Application is the concrete App used by the server and tests.
type Application struct {
	Log          internal.Logger
	RecordRepo   storage.RecordRepository
	MappingStore *mapping.Store
	ImportSvc    *importer.Service
}

func (a *Application) Logger() internal.Logger           { return a.Log }
func (a *Application) Records() storage.RecordRepository { return a.RecordRepo }
func (a *Application) Mappings() *mapping.Store          { return a.MappingStore }
func (a *Application) Importer() *importer.Service       { return a.ImportSvc }

var _ App = (*Application)(nil)
