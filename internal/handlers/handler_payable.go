package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// payableHandler handles HTTP requests for AP bills, AR invoices and their
// payments. Payments post through the posting facade so the subsidiary
// documents and the control accounts move together.
type payableHandler struct {
	subledgerService portssvc.SubledgerSvcFacade
	postingService   portssvc.PostingSvcFacade
}

// registerPayableRoutes registers routes related to bills and invoices.
func registerPayableRoutes(rg *gin.RouterGroup, subledgerService portssvc.SubledgerSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := &payableHandler{subledgerService: subledgerService, postingService: postingService}

	bills := rg.Group("/bills")
	{
		bills.POST("", h.recordBill)
		bills.GET("/:id", h.getBill)
		bills.POST("/:id/payments", h.payBill)
	}
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.recordInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/payments", h.payInvoice)
	}
	rg.GET("/reconciliation/:control", h.reconcileControl)
}

func (h *payableHandler) recordBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.RecordBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.subledgerService.RecordBill(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Bill recorded", slog.String("bill_id", bill.BillID), slog.String("vendor_id", bill.VendorID))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

func (h *payableHandler) getBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	bill, err := h.subledgerService.GetBillByID(c.Request.Context(), entityID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

func (h *payableHandler) payBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.BillPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.BillID = c.Param("id")

	result, err := h.postingService.PostBillPayment(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Bill payment posted",
		slog.String("bill_id", req.BillID),
		slog.String("entry_id", result.Entry.EntryID))
	c.JSON(http.StatusCreated, result)
}

func (h *payableHandler) recordInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.RecordInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.subledgerService.RecordInvoice(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Invoice recorded", slog.String("invoice_id", invoice.InvoiceID), slog.String("customer_id", invoice.CustomerID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *payableHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	invoice, err := h.subledgerService.GetInvoiceByID(c.Request.Context(), entityID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *payableHandler) payInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.InvoicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.InvoiceID = c.Param("id")

	entry, err := h.postingService.PostInvoicePayment(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Invoice payment posted",
		slog.String("invoice_id", req.InvoiceID),
		slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *payableHandler) reconcileControl(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	recon, err := h.subledgerService.ReconcileControl(c.Request.Context(), entityID, domain.ControlType(c.Param("control")), asOf)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, recon)
}
