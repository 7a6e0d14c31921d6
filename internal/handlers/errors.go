package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	"github.com/SscSPs/card_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps an application error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrSchema):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrStoreWrite):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes {"error": "<op>: <cause>"}. Causes of
// unclassified errors are not exposed.
func respondError(c *gin.Context, op string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("op", op), slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("op", op), slog.Int("status", status), slog.String("error", err.Error()))
	}

	msg := op + ": " + err.Error()
	if status == http.StatusInternalServerError {
		msg = op + ": internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}

// positionParam parses the :position path parameter.
func positionParam(c *gin.Context) (domain.PositionToken, bool) {
	raw := c.Param("position")
	n, err := strconv.Atoi(raw)
	if err != nil || !domain.PositionToken(n).Valid() {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid position parameter", slog.String("position", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "position must be a row number of at least 2"})
		return 0, false
	}
	return domain.PositionToken(n), true
}
