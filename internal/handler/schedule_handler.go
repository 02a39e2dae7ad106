package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hpsapps/daily/internal/service"
	"github.com/hpsapps/daily/pkg/response"
)

// scheduleQuery validates the derivation query parameters.
type scheduleQuery struct {
	TeacherID string `validate:"required"`
	Date      string `validate:"required,datetime=2006-01-02"`
}

// ScheduleHandler serves derived daily schedules and term lookups.
type ScheduleHandler struct {
	schedules *service.ScheduleService
	terms     *service.TermService
}

// NewScheduleHandler constructs a new ScheduleHandler.
func NewScheduleHandler(schedules *service.ScheduleService, terms *service.TermService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, terms: terms}
}

// Get godoc
// @Summary Derive a daily schedule
// @Description Computes the cover schedule for an absent teacher on a date
// @Tags Schedule
// @Produce json
// @Param teacher_id query string true "Teacher ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	query := scheduleQuery{TeacherID: c.Query("teacher_id"), Date: c.Query("date")}
	if err := validate.Struct(query); err != nil {
		response.Error(c, invalidQueryError(err))
		return
	}

	schedule, err := h.schedules.Derive(c.Request.Context(), query.TeacherID, query.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// ResolveTerm godoc
// @Summary Resolve a date against the school calendar
// @Tags Schedule
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /terms/resolve [get]
func (h *ScheduleHandler) ResolveTerm(c *gin.Context) {
	date, err := time.Parse(service.DateLayout, c.Query("date"))
	if err != nil {
		response.Error(c, invalidDateError(err))
		return
	}
	response.JSON(c, http.StatusOK, h.terms.Resolve(date), nil)
}
