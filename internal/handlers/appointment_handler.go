package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/dto"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/page-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/page-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	upcoming     *ucAppointment.ListUpcoming
	byRange      *ucAppointment.ListByRange
	updateStatus *ucAppointment.UpdateStatus
}

func NewAppointmentHandler(
	upcoming *ucAppointment.ListUpcoming,
	byRange *ucAppointment.ListByRange,
	updateStatus *ucAppointment.UpdateStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		upcoming:     upcoming,
		byRange:      byRange,
		updateStatus: updateStatus,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	pageSlug := c.MustGet(middleware.ContextPageSlug).(string)

	aps, err := h.upcoming.Execute(c.Request.Context(), pageSlug)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentList(aps))
}

func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	pageSlug := c.MustGet(middleware.ContextPageSlug).(string)

	from := c.Query("from")
	if from == "" {
		httperr.BadRequest(c, "missing_from", "Data inicial obrigatória.")
		return
	}

	aps, err := h.byRange.Execute(c.Request.Context(), ucAppointment.ListByRangeInput{
		PageSlug: pageSlug,
		From:     from,
		To:       c.Query("to"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentList(aps))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	h.transition(c, req.Status)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, string(appointment.StatusConfirmed))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, string(appointment.StatusCancelled))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, string(appointment.StatusCompleted))
}

func (h *AppointmentHandler) transition(c *gin.Context, status string) {
	pageSlug := c.MustGet(middleware.ContextPageSlug).(string)

	ap, err := h.updateStatus.Execute(c.Request.Context(), pageSlug, c.Param("id"), status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}
