package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests against the journal engine. Mutations
// go through the posting facade so every entry takes the same validated path.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	postingService portssvc.PostingSvcFacade
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := &journalHandler{journalService: journalService, postingService: postingService}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postManualEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
	rg.GET("/accounts/:id/lines", h.listLinesByAccount)
	rg.POST("/payroll-runs", h.postPayrollRun)
}

func (h *journalHandler) postManualEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostManualEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.postingService.PostManualJournalEntry(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entityID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), entityID, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), entityID, c.Param("id"), req.ReversalDate, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Journal entry reversed",
		slog.String("entry_id", c.Param("id")),
		slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

func (h *journalHandler) listLinesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListLinesByAccount(c.Request.Context(), entityID, c.Param("id"), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) postPayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.PayrollRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostPayrollRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.postingService.PostPayrollRun(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Payroll run posted",
		slog.String("run_id", req.RunID),
		slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
