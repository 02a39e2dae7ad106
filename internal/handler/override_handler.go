package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hpsapps/daily/internal/models"
	"github.com/hpsapps/daily/internal/service"
	appErrors "github.com/hpsapps/daily/pkg/errors"
	"github.com/hpsapps/daily/pkg/response"
)

// ManualDutyRequest is the payload for adding a one-off duty.
type ManualDutyRequest struct {
	TeacherID   string `json:"teacher_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	TimeSlot    string `json:"time_slot" binding:"required"`
	Location    string `json:"location" binding:"required"`
	When        string `json:"when"`
	Description string `json:"description"`
}

// DutyUpdateRequest is the payload for editing a duty entry on the derived
// schedule, manual or inherited.
type DutyUpdateRequest struct {
	TimeSlot    string `json:"time_slot" binding:"required"`
	Location    string `json:"location" binding:"required"`
	When        string `json:"when"`
	Description string `json:"description"`
	TeacherID   string `json:"teacher_id"`
	Date        string `json:"date"`
}

// RFFUpdateRequest is the payload for editing a derived RFF entry.
type RFFUpdateRequest struct {
	Time        string `json:"time" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
	Class       string `json:"class"`
	Location    string `json:"location"`
	TeacherName string `json:"teacher_name"`
}

// OverrideHandler wires the schedule edit endpoints to the override service.
type OverrideHandler struct {
	overrides *service.OverrideService
}

// NewOverrideHandler constructs a new OverrideHandler.
func NewOverrideHandler(overrides *service.OverrideService) *OverrideHandler {
	return &OverrideHandler{overrides: overrides}
}

// AddManualDuty godoc
// @Summary Add a one-off duty
// @Description Adds a duty that exists only on the exact date given
// @Tags Overrides
// @Accept json
// @Produce json
// @Param payload body handler.ManualDutyRequest true "Manual duty payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /duties/manual [post]
func (h *OverrideHandler) AddManualDuty(c *gin.Context) {
	var req ManualDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid manual duty payload"))
		return
	}
	duty, err := h.overrides.AddManualDuty(req.TeacherID, req.Date, req.TimeSlot, req.Location, req.When, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, duty)
}

// UpdateDuty godoc
// @Summary Edit a duty entry
// @Description Edits the duty identified by id; inherited duties gain an override pairing, manual duties are updated in place
// @Tags Overrides
// @Accept json
// @Produce json
// @Param id path string true "Duty entry ID"
// @Param payload body handler.DutyUpdateRequest true "Duty payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /duties/{id} [put]
func (h *OverrideHandler) UpdateDuty(c *gin.Context) {
	var req DutyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid duty payload"))
		return
	}
	updated := models.DutyAssignment{
		TimeSlot:    req.TimeSlot,
		Location:    req.Location,
		When:        req.When,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		Date:        req.Date,
	}
	if updated.Description == "" {
		updated.Description = req.When + " Duty - " + req.Location
	}
	duty, err := h.overrides.UpdateDuty(c.Param("id"), updated)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, duty, nil)
}

// ResetDuty godoc
// @Summary Reset an edited duty
// @Description Removes the override pairing so the roster template re-derives
// @Tags Overrides
// @Param id path string true "Duty entry ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /duties/inherited/{id} [delete]
func (h *OverrideHandler) ResetDuty(c *gin.Context) {
	if err := h.overrides.ResetDuty(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteManualDuty godoc
// @Summary Remove a one-off duty
// @Tags Overrides
// @Param id path string true "Manual duty ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /duties/manual/{id} [delete]
func (h *OverrideHandler) DeleteManualDuty(c *gin.Context) {
	if err := h.overrides.DeleteManualDuty(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateRFF godoc
// @Summary Edit an RFF entry
// @Tags Overrides
// @Accept json
// @Produce json
// @Param id path string true "RFF entry ID"
// @Param payload body handler.RFFUpdateRequest true "RFF payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /rff/{id} [put]
func (h *OverrideHandler) UpdateRFF(c *gin.Context) {
	var req RFFUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rff payload"))
		return
	}
	entry, err := h.overrides.UpdateRFF(c.Param("id"), models.ScheduleEntry{
		Time:        req.Time,
		Type:        models.EntryType(req.Type),
		Description: req.Description,
		Class:       req.Class,
		Location:    req.Location,
		TeacherName: req.TeacherName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// ResetRFF godoc
// @Summary Reset an edited RFF entry
// @Tags Overrides
// @Param id path string true "RFF entry ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /rff/{id} [delete]
func (h *OverrideHandler) ResetRFF(c *gin.Context) {
	if err := h.overrides.ResetRFF(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
