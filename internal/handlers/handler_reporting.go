package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	portssvc "github.com/staffbook/staff_ledger_app/internal/core/ports/services"
	"github.com/staffbook/staff_ledger_app/internal/dto"
	"github.com/staffbook/staff_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for aggregation and stats.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// aggregate godoc
// @Summary Aggregate a collaborator's ledger per calendar day
// @Description Buckets entries into per-day totals in the reference timezone and totals the pending payable amount
// @Tags reporting
// @Produce  json
// @Param   collaboratorID path string true "Collaborator ID"
// @Param   from query string false "Start of date range (RFC3339 or YYYY-MM-DD)"
// @Param   to query string false "End of date range (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.AggregateResponse "Per-day totals and global rollup"
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 500 {object} map[string]string "Failed to aggregate"
// @Router /collaborators/{collaboratorID}/aggregate [get]
func (h *reportingHandler) aggregate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collaboratorID := c.Param("collaboratorID")

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days, total, err := h.reportingService.Aggregate(c.Request.Context(), collaboratorID, from, to)
	if err != nil {
		logger.Error("Failed to aggregate ledger", slog.String("error", err.Error()), slog.String("collaborator_id", collaboratorID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAggregateResponse(days, total))
}

// stats godoc
// @Summary Bulk stats per collaborator
// @Description Returns pending, historical paid and automatic-origin totals for the requested collaborators
// @Tags reporting
// @Produce  json
// @Param   collaboratorIDs query string true "Comma separated collaborator IDs"
// @Success 200 {object} dto.StatsResponse "Per-collaborator summaries"
// @Failure 400 {object} map[string]string "Missing collaboratorIDs"
// @Failure 500 {object} map[string]string "Failed to compute stats"
// @Router /stats [get]
func (h *reportingHandler) stats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	collaboratorIDs := splitIDs(c.Query("collaboratorIDs"))
	if len(collaboratorIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "collaboratorIDs query parameter is required"})
		return
	}

	summaries, err := h.reportingService.Stats(c.Request.Context(), collaboratorIDs)
	if err != nil {
		logger.Error("Failed to compute stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsResponse(summaries))
}

// exportStats godoc
// @Summary Export stats as an xlsx workbook
// @Description Generates a spreadsheet with one row per collaborator
// @Tags reporting
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   collaboratorIDs query string true "Comma separated collaborator IDs"
// @Success 200 {file} file "The xlsx report"
// @Failure 400 {object} map[string]string "Missing collaboratorIDs"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /stats/export [get]
func (h *reportingHandler) exportStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	collaboratorIDs := splitIDs(c.Query("collaboratorIDs"))
	if len(collaboratorIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "collaboratorIDs query parameter is required"})
		return
	}

	summaries, err := h.reportingService.Stats(c.Request.Context(), collaboratorIDs)
	if err != nil {
		logger.Error("Failed to compute stats for export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Stats"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		logger.Error("Failed to create report sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Collaborator ID", "Pending", "Paid (historical)", "Automatic shortage", "Automatic expense"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, s := range summaries {
		rowIndex := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), s.CollaboratorID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), s.TotalPending.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), s.TotalPaidHistorical.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), s.Automatic.Shortage.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), s.Automatic.Expense.InexactFloat64())
	}

	fileName := "staff_ledger_stats_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write report to response", slog.String("error", err.Error()))
	}
}

func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// registerReportingRoutes registers aggregation and stats routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	group.GET("/collaborators/:collaboratorID/aggregate", h.aggregate)
	group.GET("/stats", h.stats)
	group.GET("/stats/export", h.exportStats)
}
