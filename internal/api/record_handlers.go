package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/service"
)

func PostRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.RecordRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateRecordRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		record, err := service.SaveRecord(c.Request.Context(), app.Records(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save record")
			return
		}

		HandleSuccess(c, app.Logger(), record, nil)
	}
}

func GetRecords(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		records, err := app.Records().ListByUser(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records")
			return
		}

		HandleSuccess(c, app.Logger(), records, nil)
	}
}

func GetRecordStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		records, err := app.Records().ListByUser(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records for stats")
			return
		}

		stats := service.CalculateStats(records)
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}
