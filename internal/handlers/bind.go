package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/validators"
)

func respondBindError(c *gin.Context, err error) {
	httperr.Respond(c, validators.FromValidator(err))
}
