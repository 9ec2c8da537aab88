package handler

import (
	"errors"
	"net/http"

	"recibos/internal/service"
	"recibos/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidReceiptID),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidCriteria):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrReceiptNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrReceiptAnnulled),
		errors.Is(err, service.ErrAlreadyAnnulled),
		errors.Is(err, service.ErrNotAnnulled),
		errors.Is(err, service.ErrDuplicateReference):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func importStatusFor(kind service.ImportErrorKind) int {
	switch kind {
	case service.ImportConflict:
		return http.StatusConflict
	case service.ImportUnknown:
		return http.StatusInternalServerError
	}
	return http.StatusUnprocessableEntity
}

func writeError(c *gin.Context, err error) {
	code := statusFor(err)
	c.JSON(code, response.Error(code, err.Error()))
}
