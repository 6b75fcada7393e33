package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aungaung101025-ux/adupayment/internal/report"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// ReportHandler handles summary and export requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary returns the current month's totals.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.Summary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetReport assembles the rows and totals for a date range without rendering
// a document.
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, err := parseDateQuery(c, "start")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.reportService.AssembleReport(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// ExportReport renders the range as a downloadable document. format defaults
// to xlsx.
func (h *ReportHandler) ExportReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, err := parseDateQuery(c, "start")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		respondWithError(c, err)
		return
	}

	format := c.DefaultQuery("format", report.FormatExcel)
	title := c.Query("title")

	result, err := h.reportService.Export(userID, title, start, end, format)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
