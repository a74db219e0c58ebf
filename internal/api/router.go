package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Kadhiravan2002/AuraX/internal/auth"
	"github.com/Kadhiravan2002/AuraX/internal/config"
)

// NewRouter wires every route. Kept separate from main so handler tests can
// build the same engine against test doubles.
func NewRouter(app App, provider auth.Provider, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(provider, cfg))

	r.POST("/records", PostRecord(app))
	r.GET("/records", GetRecords(app))
	r.GET("/records/stats", GetRecordStats(app))

	r.POST("/import/preview", PostImportPreview(app))
	r.POST("/import", PostImport(app))
	r.POST("/import/export", PostImportExport(app))

	r.GET("/mappings", GetMappings(app))
	r.POST("/mappings", PostMapping(app))
	r.DELETE("/mappings/:id", DeleteMapping(app))

	return r
}
