package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
)

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SendSuccess envía una respuesta exitosa con un payload de datos.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"data": data,
	})
}

// SendMessage envía un mensaje informativo, ej. "Customer deleted successfully".
func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"message": message,
	})
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{
			Message: message,
		},
	})
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendConflict(c *gin.Context, message string) {
	SendError(c, http.StatusConflict, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}

// StatusFor traduce los errores de dominio a códigos HTTP.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, sharedDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sharedDomain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, sharedDomain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SendDomainError responde según el tipo de error. Los 500 no exponen el detalle.
func SendDomainError(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		SendInternalServerError(c, fallback)
		return
	}
	SendError(c, status, err.Error())
}
