package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankRecHandler handles HTTP requests for bank statement reconciliation.
type bankRecHandler struct {
	bankRecService portssvc.BankRecSvcFacade
}

// registerBankRecRoutes registers routes related to bank reconciliation.
func registerBankRecRoutes(rg *gin.RouterGroup, bankRecService portssvc.BankRecSvcFacade) {
	h := &bankRecHandler{bankRecService: bankRecService}

	statements := rg.Group("/bank-statements")
	{
		statements.POST("", h.importStatement)
		statements.POST("/:id/match", h.runMatching)
		statements.POST("/:id/finish", h.finishReconciliation)
	}
}

func (h *bankRecHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.ImportStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	statement, err := h.bankRecService.ImportStatement(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Bank statement imported",
		slog.String("statement_id", statement.StatementID),
		slog.Int("transactions", len(req.Transactions)))
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement))
}

func (h *bankRecHandler) runMatching(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	result, err := h.bankRecService.RunMatching(c.Request.Context(), entityID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Statement matching complete",
		slog.String("statement_id", result.StatementID),
		slog.Int("matched", result.Matched),
		slog.Int("flagged", result.Flagged),
		slog.Int("unmatched", result.Unmatched))
	c.JSON(http.StatusOK, result)
}

func (h *bankRecHandler) finishReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	statement, err := h.bankRecService.FinishReconciliation(c.Request.Context(), entityID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Statement reconciled", slog.String("statement_id", statement.StatementID))
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}
