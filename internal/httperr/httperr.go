package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// Status maps a domain error to its HTTP status.
func Status(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case IsInvalidTransition(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err using the domain error taxonomy. Unknown errors become
// a generic 500 without leaking the underlying message.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	var field string
	var ve ValidationError
	if errors.As(err, &ve) {
		field = ve.Field
	}

	c.JSON(status, HTTPError{
		Code:    Code(err),
		Message: message(status),
		Field:   field,
	})
}

func message(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Dados inválidos."
	case http.StatusNotFound:
		return "Não encontrado."
	case http.StatusConflict:
		return "Horário não está mais disponível."
	case http.StatusUnprocessableEntity:
		return "Mudança de status não permitida."
	default:
		return "Erro interno."
	}
}
