package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/frontdesk-api/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// @Summary Bill Statement PDF
// @Description Download the statement of a bill's lineage as PDF
// @Tags Reports
// @Produce application/pdf
// @Param bill_no path string true "Bill number"
// @Success 200 {file} file "statement.pdf"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /bills/{bill_no}/statement.pdf [get]
func (h *ReportHandler) Statement(c *gin.Context) {
	data, filename, err := h.reportService.BillStatementPDF(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary Export Pending Settlements
// @Description Download open bills as XLSX (default) or CSV
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} file "pending_settlements.xlsx"
// @Security BearerAuth
// @Router /settlements/pending/export [get]
func (h *ReportHandler) PendingExport(c *gin.Context) {
	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)

	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		data, filename, err = h.reportService.PendingSettlementsCSV(c.Request.Context())
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.reportService.PendingSettlementsXLSX(c.Request.Context())
		contentType = xlsxContentType
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be xlsx or csv"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
