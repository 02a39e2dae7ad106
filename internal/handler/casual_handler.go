package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hpsapps/daily/internal/service"
	appErrors "github.com/hpsapps/daily/pkg/errors"
	"github.com/hpsapps/daily/pkg/response"
)

// CasualRequest is the payload for creating or updating a casual teacher.
type CasualRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
}

// CasualHandler manages the casual (relief) teacher directory.
type CasualHandler struct {
	casuals *service.CasualService
}

// NewCasualHandler constructs a new CasualHandler.
func NewCasualHandler(casuals *service.CasualService) *CasualHandler {
	return &CasualHandler{casuals: casuals}
}

// List godoc
// @Summary List casual teachers
// @Tags Casuals
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /casuals [get]
func (h *CasualHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.casuals.List(), nil)
}

// Create godoc
// @Summary Add a casual teacher
// @Tags Casuals
// @Accept json
// @Produce json
// @Param payload body handler.CasualRequest true "Casual payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /casuals [post]
func (h *CasualHandler) Create(c *gin.Context) {
	var req CasualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid casual payload"))
		return
	}
	casual, err := h.casuals.Create(req.Name, req.Email, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, casual)
}

// Update godoc
// @Summary Update a casual teacher
// @Tags Casuals
// @Accept json
// @Produce json
// @Param id path string true "Casual ID"
// @Param payload body handler.CasualRequest true "Casual payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /casuals/{id} [put]
func (h *CasualHandler) Update(c *gin.Context) {
	var req CasualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid casual payload"))
		return
	}
	casual, err := h.casuals.Update(c.Param("id"), req.Name, req.Email, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, casual, nil)
}

// Delete godoc
// @Summary Remove a casual teacher
// @Tags Casuals
// @Param id path string true "Casual ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /casuals/{id} [delete]
func (h *CasualHandler) Delete(c *gin.Context) {
	if err := h.casuals.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
