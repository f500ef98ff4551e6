package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to fiscal periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// registerPeriodRoutes registers routes related to fiscal periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.POST("/monthly", h.createMonthlyPeriods)
		periods.GET("", h.listPeriods)
		periods.GET("/for-date", h.getPeriodForDate)
		periods.POST("/:id/close", h.closePeriod)
		periods.POST("/:id/reopen", h.reopenPeriod)
		periods.POST("/:id/lock", h.lockPeriod)
	}
}

func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

func (h *periodHandler) createMonthlyPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateMonthlyPeriodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMonthlyPeriods", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	periods, err := h.periodService.CreateMonthlyPeriods(c.Request.Context(), entityID, req.Year, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	resp := make([]dto.PeriodResponse, 0, len(periods))
	for i := range periods {
		resp = append(resp, dto.ToPeriodResponse(&periods[i]))
	}
	logger.Info("Monthly fiscal periods created", slog.Int("year", req.Year), slog.Int("count", len(resp)))
	c.JSON(http.StatusCreated, gin.H{"periods": resp})
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), entityID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	resp := make([]dto.PeriodResponse, 0, len(periods))
	for i := range periods {
		resp = append(resp, dto.ToPeriodResponse(&periods[i]))
	}
	c.JSON(http.StatusOK, gin.H{"periods": resp})
}

func (h *periodHandler) getPeriodForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	period, err := h.periodService.GetPeriodForDate(c.Request.Context(), entityID, date)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	h.transition(c, "close", h.periodService.ClosePeriod)
}

func (h *periodHandler) reopenPeriod(c *gin.Context) {
	h.transition(c, "reopen", h.periodService.ReopenPeriod)
}

func (h *periodHandler) lockPeriod(c *gin.Context) {
	h.transition(c, "lock", h.periodService.LockPeriod)
}

func (h *periodHandler) transition(c *gin.Context, action string, fn func(ctx context.Context, entityID, periodID, userID string) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	periodID := c.Param("id")
	if err := fn(c.Request.Context(), entityID, periodID, userID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Fiscal period transition applied",
		slog.String("period_id", periodID),
		slog.String("action", action))
	c.Status(http.StatusNoContent)
}
