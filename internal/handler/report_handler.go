package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"recibos/internal/export"
	"recibos/internal/middleware"
	"recibos/internal/service"
	"recibos/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
	excel         *export.ExcelWriter
	pdf           *export.PDFWriter
	guard         middleware.Guard
}

func NewReportHandler(reportService service.ReportService, excel *export.ExcelWriter, pdf *export.PDFWriter, guard middleware.Guard) *ReportHandler {
	return &ReportHandler{reportService: reportService, excel: excel, pdf: pdf, guard: guard}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	reports.Use(h.guard(middleware.RoleAdmin, middleware.RoleOperator))
	{
		reports.GET("/receipts", h.ExportReceipts)
	}
}

// ExportReceipts renders the filtered receipt set as a workbook or PDF
// @Summary      Export receipts
// @Description  Accepts the same filters as the receipt list.
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format      query  string  false  "xlsx (default) or pdf"
// @Param        q           query  string  false  "Search term"
// @Param        field       query  string  false  "Search field"
// @Param        from        query  string  false  "From date"
// @Param        to          query  string  false  "To date"
// @Param        status      query  string  false  "Status filter"
// @Param        categories  query  string  false  "Category indexes"
// @Success      200  {file}  file
// @Failure      400  {object}  response.Response
// @Router       /api/reports/receipts [get]
func (h *ReportHandler) ExportReceipts(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "pdf" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "format must be xlsx or pdf"))
		return
	}

	var params service.CriteriaParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid query: "+err.Error()))
		return
	}
	criteria, err := service.ParseCriteria(params)
	if err != nil {
		writeError(c, err)
		return
	}

	report, err := h.reportService.BuildReport(c.Request.Context(), criteria, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := export.ContentTypeXLSX
	if format == "pdf" {
		contentType = export.ContentTypePDF
		err = h.pdf.WriteReport(&buf, report)
	} else {
		err = h.excel.Write(&buf, report)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to render report: "+err.Error()))
		return
	}

	filename := fmt.Sprintf("reporte_recibos_%s.%s", report.GeneratedAt.Format("20060102_1504"), format)
	attachment(c, filename, contentType, buf.Bytes())
}
