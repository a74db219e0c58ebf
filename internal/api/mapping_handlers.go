package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Kadhiravan2002/AuraX/internal"
)

type SaveMappingRequest struct {
	Name    string                 `json:"name"`
	Mapping internal.ColumnMapping `json:"mapping"`
	Headers []string               `json:"headers"`
}

func GetMappings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), app.Mappings().List(), nil)
	}
}

func PostMapping(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body SaveMappingRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if body.Name == "" || len(body.Mapping) == 0 {
			HandleError(c, app.Logger(), errors.New("name and mapping are required"), 400, "Invalid mapping")
			return
		}

		saved := app.Mappings().Save(c.Request.Context(), body.Name, body.Mapping, body.Headers)
		HandleSuccess(c, app.Logger(), saved, nil)
	}
}

func DeleteMapping(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !app.Mappings().Delete(c.Request.Context(), id) {
			HandleError(c, app.Logger(), errors.New("no mapping with id "+id), 404, "Mapping not found")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}
