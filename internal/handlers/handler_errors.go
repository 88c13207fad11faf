package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/services"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondLifecycleError maps the engine's error taxonomy to HTTP statuses.
// Authority failures are 403, missing aggregates 404, state conflicts 409,
// evidence failures 422 and input failures 400.
func respondLifecycleError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInsufficientRole):
		logger.Warn("Caller lacks authority for operation", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrAlreadyDecided),
		errors.Is(err, services.ErrNotApproved),
		errors.Is(err, services.ErrPaymentIncomplete),
		errors.Is(err, services.ErrAlreadyInvoiced),
		errors.Is(err, services.ErrDeletionForbidden),
		errors.Is(err, services.ErrOverpaymentAttempt),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Operation rejected by document state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrMissingEvidence):
		logger.Warn("Evidence requirement not satisfied", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrRejectionRequiresNotes),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
