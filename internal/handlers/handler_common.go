package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requestIdentity pulls the entity scope from the path and the user from the
// auth context. A missing user aborts the request with 401.
func requestIdentity(c *gin.Context) (entityID string, userID string, ok bool) {
	entityID = c.Param("entityID")
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return entityID, userID, ok
}

// respondServiceError maps the error taxonomy onto HTTP statuses. Handlers
// with a more specific message for a sentinel check it before calling this.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalancedEntry),
		errors.Is(err, apperrors.ErrInactiveAccount),
		errors.Is(err, apperrors.ErrNotLeafAccount),
		errors.Is(err, apperrors.ErrInvalidRoutingNumber):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Operation forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrDuplicateCode),
		errors.Is(err, apperrors.ErrDuplicateCheckNumber),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrClosedPeriod),
		errors.Is(err, apperrors.ErrAlreadyReversed),
		errors.Is(err, apperrors.ErrAccountCycle),
		errors.Is(err, apperrors.ErrAccountInUse):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnreconciled),
		errors.Is(err, apperrors.ErrBalanceMismatch):
		logger.Warn("Reconciliation requirement not met", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrIntegrity):
		logger.Error("Ledger integrity violation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
