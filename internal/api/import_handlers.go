package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/csv"
	"github.com/Kadhiravan2002/AuraX/internal/importer"
)

type ImportRequest struct {
	Text    string                 `json:"text"`
	Mapping internal.ColumnMapping `json:"mapping"`
	Mode    importer.InsertMode    `json:"mode"`
}

func PostImportPreview(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body ImportRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		preview, err := app.Importer().PreviewUpload(body.Text)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Failed to parse file")
			return
		}

		HandleSuccess(c, app.Logger(), preview, nil)
	}
}

func PostImport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body ImportRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if body.Mode == "" {
			body.Mode = importer.ModeMerge
		}
		if !body.Mode.Valid() {
			HandleError(c, app.Logger(), errors.New("mode must be merge, overwrite or new"), 400, "Invalid insert mode")
			return
		}

		result, err := app.Importer().Import(c.Request.Context(), importer.Request{
			UserID:  user.ID,
			Text:    body.Text,
			Mapping: body.Mapping,
			Mode:    body.Mode,
		})
		if err != nil {
			HandleError(c, app.Logger(), err, importStatus(err), "Import failed")
			return
		}

		HandleSuccess(c, app.Logger(), result, nil)
	}
}

// PostImportExport validates the file under the given mapping and returns
// the cleaned batch as CSV text in the canonical column order.
func PostImportExport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body ImportRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		table, err := csv.Parse(body.Text)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Failed to parse file")
			return
		}
		batch, err := csv.Transform(table, body.Mapping)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Failed to transform file")
			return
		}

		c.Header("Content-Disposition", `attachment; filename="health-data.csv"`)
		c.Data(200, "text/csv", []byte(app.Importer().ExportBatch(batch)))
	}
}

// importStatus maps pipeline failures to HTTP codes: user-input problems are
// 400, everything else 500.
func importStatus(err error) int {
	var parseErr *csv.ParseError
	var mappingErr *csv.MappingIncompleteError
	switch {
	case errors.As(err, &parseErr),
		errors.As(err, &mappingErr),
		errors.Is(err, importer.ErrNoValidData):
		return 400
	default:
		return 500
	}
}
