package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/services"
)

// respondWithError maps service errors onto HTTP statuses: validation
// failures are 400, missing resources 404, state and concurrency conflicts
// 409, everything else a generic 500. Internal details never leak to the
// client on 500s.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrUnbalancedEntry),
		errors.Is(err, services.ErrEmptyEntry),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrUnknownAccount),
		errors.Is(err, services.ErrPartialFx),
		errors.Is(err, services.ErrUnknownCurrency),
		errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrTemplateEmpty):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, services.ErrPostingState),
		errors.Is(err, services.ErrAlreadyReversed),
		errors.Is(err, services.ErrDuplicateAccount),
		errors.Is(err, services.ErrDuplicateCurrency),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrConcurrentModification):
		logger.Warn("State conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
