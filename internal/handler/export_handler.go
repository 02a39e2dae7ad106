package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hpsapps/daily/internal/service"
	"github.com/hpsapps/daily/pkg/response"
)

// ExportHandler serves rendered cover sheets.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs a new ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// CoverSheet godoc
// @Summary Export the daily cover sheet
// @Description Renders the derived schedule as text, CSV or PDF for handover to the casual teacher
// @Tags Export
// @Produce plain
// @Param teacher_id query string true "Teacher ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param casual query string false "Assigned casual teacher name"
// @Param format query string false "text, csv or pdf (default text)"
// @Success 200 {string} string "rendered cover sheet"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /export/cover-sheet [get]
func (h *ExportHandler) CoverSheet(c *gin.Context) {
	query := scheduleQuery{TeacherID: c.Query("teacher_id"), Date: c.Query("date")}
	if err := validate.Struct(query); err != nil {
		response.Error(c, invalidQueryError(err))
		return
	}

	file, err := h.exports.CoverSheet(
		c.Request.Context(),
		query.TeacherID,
		query.Date,
		c.Query("casual"),
		c.DefaultQuery("format", service.FormatText),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+file.Filename+"\"")
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
