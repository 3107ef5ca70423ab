package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"balilove/internal/app/middleware"
	"balilove/internal/domain/catalog"
	domaincurrency "balilove/internal/domain/currency"
	"balilove/internal/domain/shared/money"
)

// errBadRequest marks request parsing failures inside this package.
var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, middleware.ErrValidation),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, money.ErrUnsupportedCurrency),
		errors.Is(err, domaincurrency.ErrUnsupportedCurrency),
		errors.Is(err, domaincurrency.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domaincurrency.ErrRateUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		body = gin.H{"error": "internal error", "request_id": c.GetString("request_id")}
	}
	c.AbortWithStatusJSON(status, body)
}
