package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hpsapps/daily/internal/service"
	appErrors "github.com/hpsapps/daily/pkg/errors"
	"github.com/hpsapps/daily/pkg/response"
)

// RosterHandler accepts roster workbook uploads and reports import status.
type RosterHandler struct {
	roster      *service.RosterService
	metrics     *service.MetricsService
	maxFileSize int64
}

// NewRosterHandler constructs a new RosterHandler.
func NewRosterHandler(roster *service.RosterService, metrics *service.MetricsService, maxFileSize int64) *RosterHandler {
	return &RosterHandler{roster: roster, metrics: metrics, maxFileSize: maxFileSize}
}

// Import godoc
// @Summary Import the roster workbook
// @Description Upload the .xlsx roster; replaces teachers, duty slots and the RFF grid wholesale
// @Tags Roster
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Roster workbook (.xlsx)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /roster/import [post]
func (h *RosterHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "multipart field \"file\" is required"))
		return
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		response.Error(c, appErrors.New("FILE_TOO_LARGE", http.StatusRequestEntityTooLarge, "workbook exceeds the upload size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "uploaded file could not be read"))
		return
	}
	defer file.Close()

	summary, err := h.roster.Import(file)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordImport()

	response.JSON(c, http.StatusOK, summary, nil)
}

// Status godoc
// @Summary Roster status
// @Description Reports whether a roster is loaded and how many rows each table holds
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/status [get]
func (h *RosterHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.Status(), nil)
}
