package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for payment instruments: printed
// checks and NACHA ACH batches.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// registerPaymentRoutes registers routes related to payment instruments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := &paymentHandler{paymentService: paymentService}

	checks := rg.Group("/checks")
	{
		checks.POST("", h.printCheck)
		checks.POST("/:id/void", h.voidCheck)
	}
	batches := rg.Group("/ach-batches")
	{
		batches.POST("", h.generateACHBatch)
		batches.GET("/:id", h.getACHBatch)
		batches.GET("/:id/file", h.downloadACHFile)
	}
}

func (h *paymentHandler) printCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.PrintCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PrintCheck", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	check, err := h.paymentService.PrintCheck(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Check printed",
		slog.String("check_id", check.CheckID),
		slog.Int64("check_number", check.CheckNumber))
	c.JSON(http.StatusCreated, dto.ToCheckResponse(check))
}

func (h *paymentHandler) voidCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	checkID := c.Param("id")
	if err := h.paymentService.VoidCheck(c.Request.Context(), entityID, checkID, userID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Check voided", slog.String("check_id", checkID))
	c.Status(http.StatusNoContent)
}

func (h *paymentHandler) generateACHBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.GenerateACHRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateACHBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	batch, err := h.paymentService.GenerateACHBatch(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("ACH batch generated",
		slog.String("batch_id", batch.BatchID),
		slog.Int64("batch_number", batch.BatchNumber),
		slog.Int("entries", batch.EntryCount))
	c.JSON(http.StatusCreated, dto.ToACHBatchResponse(batch))
}

func (h *paymentHandler) getACHBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	batch, err := h.paymentService.GetBatchByID(c.Request.Context(), entityID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToACHBatchResponse(batch))
}

// downloadACHFile streams the generated NACHA file bytes.
func (h *paymentHandler) downloadACHFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	batch, err := h.paymentService.GetBatchByID(c.Request.Context(), entityID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	filename := fmt.Sprintf("ach-batch-%d.ach", batch.BatchNumber)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/plain", batch.FileContents)
}
