package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/page-scheduler/internal/dto"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/page-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/usecase/page"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	getPage      *page.GetPublicPage
	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
}

func NewPublicHandler(
	getPage *page.GetPublicPage,
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		getPage:      getPage,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	Services      []string `json:"services" binding:"required,min=1,dive,required"`
	Date          string   `json:"date" binding:"required,isodate"` // YYYY-MM-DD
	Time          string   `json:"time" binding:"required,hhmm"`    // HH:mm
	CustomerName  string   `json:"customer_name" binding:"required"`
	CustomerPhone string   `json:"customer_phone" binding:"required"`
	CustomerEmail string   `json:"customer_email"`
	CustomerID    string   `json:"customer_id"`
	CustomerPhoto string   `json:"customer_photo"`
	Notes         string   `json:"notes"`
}

////////////////////////////////////////////////////////
// PAGE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetPage(c *gin.Context) {
	out, err := h.getPage.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	services := c.QueryArray("service")

	if date == "" || len(services) == 0 {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	out, err := h.availability.Execute(
		c.Request.Context(),
		appointment.GetAvailabilityInput{
			PageSlug: c.Param("slug"),
			Date:     date,
			Services: services,
		},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		appointment.CreateAppointmentInput{
			PageSlug:      c.Param("slug"),
			Services:      req.Services,
			Date:          req.Date,
			Time:          req.Time,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			CustomerID:    req.CustomerID,
			CustomerPhoto: req.CustomerPhoto,
			Notes:         req.Notes,
		},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := dto.BookingConfirmationDTO{
		ID:          ap.ID,
		ServiceName: ap.ServiceName,
		TotalValue:  ap.TotalValue.StringFixed(2),
		StartAt:     ap.StartAt,
		EndAt:       ap.EndAt,
		Status:      ap.Status,
	}

	// pix key follows the same plan gating as the public page
	if pg, err := h.getPage.Execute(c.Request.Context(), ap.PageSlug); err == nil {
		out.PixKey = pg.PixKey
	}

	httpresp.Created(c, out)
}
