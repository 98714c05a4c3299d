package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/page-scheduler/internal/middleware"
	"github.com/BruksfildServices01/page-scheduler/internal/usecase/page"
)

type MeHandler struct {
	getPlan *page.GetPlan
}

func NewMeHandler(getPlan *page.GetPlan) *MeHandler {
	return &MeHandler{getPlan: getPlan}
}

// GetPlan reports the stored and effective plan of the caller's page.
func (h *MeHandler) GetPlan(c *gin.Context) {
	pageSlug := c.MustGet(middleware.ContextPageSlug).(string)

	out, err := h.getPlan.Execute(c.Request.Context(), pageSlug)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"page_slug": pageSlug,
		"plan":      out,
	})
}
