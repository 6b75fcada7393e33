package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// InsightHandler handles rule-based analysis requests.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GetInsights runs the analysis over the trailing 30-day window.
func (h *InsightHandler) GetInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.insightService.Analyze(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
